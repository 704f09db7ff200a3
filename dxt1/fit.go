package dxt1

// covariance6 is a symmetric 3x3 covariance matrix stored as
// [xx, xy, xz, yy, yz, zz].
type covariance6 [6]float32

// blockCovariance computes the weighted covariance of the block colors in
// color-weighted space around centroid (also expected in color-weighted
// space).
func blockCovariance(block *ColorBlock, colorWeights Vector3, centroid Vector3) covariance6 {
	var cov covariance6
	for i := 0; i < BlockTexels; i++ {
		w := block.Weights[i]
		if w <= 0 {
			continue
		}
		d := block.Colors[i].Vector3().Mul(colorWeights).Sub(centroid)
		cov[0] += w * d.X * d.X
		cov[1] += w * d.X * d.Y
		cov[2] += w * d.X * d.Z
		cov[3] += w * d.Y * d.Y
		cov[4] += w * d.Y * d.Z
		cov[5] += w * d.Z * d.Z
	}
	return cov
}

func (c covariance6) apply(v Vector3) Vector3 {
	return Vector3{
		X: c[0]*v.X + c[1]*v.Y + c[2]*v.Z,
		Y: c[1]*v.X + c[3]*v.Y + c[4]*v.Z,
		Z: c[2]*v.X + c[4]*v.Y + c[5]*v.Z,
	}
}

// principalAxis estimates the dominant eigenvector of cov by power
// iteration. It returns ok=false when the colors have no variance along
// any axis, in which case callers fall back to the single-color path.
func principalAxis(cov covariance6) (Vector3, bool) {
	v := Vector3{1, 1, 1}
	for iter := 0; iter < 8; iter++ {
		next := cov.apply(v)
		// Rescale by the largest component to keep the iteration stable
		// without a square root per step.
		m := maxAbs3(next)
		if m == 0 {
			return Vector3{}, false
		}
		v = next.Scale(1 / m)
	}
	return v, true
}

func maxAbs3(v Vector3) float32 {
	m := absF32(v.X)
	if a := absF32(v.Y); a > m {
		m = a
	}
	if a := absF32(v.Z); a > m {
		m = a
	}
	return m
}

// interpBasis holds the endpoint mixing factor for each of the four
// evenly spaced positions along the fit axis: position k mixes
// alpha[k]*e0 + (1-alpha[k])*e1.
var interpBasis = [4]float32{1, 2.0 / 3.0, 1.0 / 3.0, 0}

// stepIndexToPalette maps an axis step (0 = e0 end, 3 = e1 end) to the
// DXT1 palette index with the same mixing factor.
var stepIndexToPalette = [4]uint32{0, 2, 3, 1}

// normalEquations accumulates the 2-unknown least-squares system for
// endpoints under a fixed step assignment.
type normalEquations struct {
	aa, ab, bb float32 // weighted sums of alpha^2, alpha*beta, beta^2
	ax, bx     Vector3 // weighted sums of alpha*color, beta*color
}

func (n *normalEquations) add(w, alpha float32, color Vector3) {
	beta := 1 - alpha
	n.aa += w * alpha * alpha
	n.ab += w * alpha * beta
	n.bb += w * beta * beta
	n.ax = n.ax.Add(color.Scale(w * alpha))
	n.bx = n.bx.Add(color.Scale(w * beta))
}

// solve returns the endpoint pair minimizing the weighted error under the
// accumulated assignment, clamped to the representable color range.
// ok=false means the system is singular (all samples on one endpoint).
func (n *normalEquations) solve() (e0, e1 Vector3, ok bool) {
	det := n.aa*n.bb - n.ab*n.ab
	if det == 0 {
		return Vector3{}, Vector3{}, false
	}
	inv := 1 / det
	e0 = n.ax.Scale(n.bb).Sub(n.bx.Scale(n.ab)).Scale(inv)
	e1 = n.bx.Scale(n.aa).Sub(n.ax.Scale(n.ab)).Scale(inv)
	return clamp255(e0), clamp255(e1), true
}

func clamp255(v Vector3) Vector3 {
	return Vector3{clampF32(v.X, 0, 255), clampF32(v.Y, 0, 255), clampF32(v.Z, 0, 255)}
}

func clampF32(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
