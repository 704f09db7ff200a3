package dxt1

// Color32 is an 8-bit-per-channel RGBA color sample.
type Color32 struct {
	R, G, B, A uint8
}

// Vector3 is a float RGB point. It is the canonical representation used
// for all geometric computation; channels are in [0, 255].
type Vector3 struct {
	X, Y, Z float32
}

// DefaultColorWeights weighs all channels equally.
var DefaultColorWeights = Vector3{1, 1, 1}

func (v Vector3) Add(u Vector3) Vector3 { return Vector3{v.X + u.X, v.Y + u.Y, v.Z + u.Z} }
func (v Vector3) Sub(u Vector3) Vector3 { return Vector3{v.X - u.X, v.Y - u.Y, v.Z - u.Z} }

// Mul returns the component-wise product of v and u.
func (v Vector3) Mul(u Vector3) Vector3 { return Vector3{v.X * u.X, v.Y * u.Y, v.Z * u.Z} }

func (v Vector3) Scale(s float32) Vector3 { return Vector3{v.X * s, v.Y * s, v.Z * s} }

func (v Vector3) Dot(u Vector3) float32 { return v.X*u.X + v.Y*u.Y + v.Z*u.Z }

func (v Vector3) LengthSquared() float32 { return v.Dot(v) }

// Vector3 converts c to the canonical float representation, dropping alpha.
func (c Color32) Vector3() Vector3 {
	return Vector3{float32(c.R), float32(c.G), float32(c.B)}
}

// Color32 rounds v to the nearest 8-bit color, clamping each channel.
func (v Vector3) Color32() Color32 {
	return Color32{
		R: roundU8(v.X),
		G: roundU8(v.Y),
		B: roundU8(v.Z),
		A: 255,
	}
}

func roundU8(x float32) uint8 {
	if x <= 0 {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return uint8(x + 0.5)
}

// BlockTexels is the number of color samples in one block (a 4x4 tile).
const BlockTexels = 16

// ColorBlock is a 4x4 tile of 16 color samples in row-major order, with a
// per-pixel weight for each sample. It is a read-only input to every
// compression strategy; strategies never mutate it.
//
// A weight of zero excludes a sample; weights need not sum to any
// particular value. A block whose total weight is non-positive is
// degenerate and compresses to the canonical zero block (see
// UndefinedMSE).
type ColorBlock struct {
	Colors  [BlockTexels]Color32
	Weights [BlockTexels]float32
}

// NewColorBlock returns a block holding colors with uniform unit weights.
func NewColorBlock(colors [BlockTexels]Color32) *ColorBlock {
	b := &ColorBlock{Colors: colors}
	for i := range b.Weights {
		b.Weights[i] = 1
	}
	return b
}

// totalWeight returns the sum of the per-pixel weights.
func (b *ColorBlock) totalWeight() float32 {
	var sum float32
	for _, w := range b.Weights {
		sum += w
	}
	return sum
}

// countDistinctColors returns the number of distinct RGB values among
// samples with positive weight. Alpha is ignored.
func (b *ColorBlock) countDistinctColors() int {
	var seen [BlockTexels]uint32
	n := 0
	for i := 0; i < BlockTexels; i++ {
		if b.Weights[i] <= 0 {
			continue
		}
		c := b.Colors[i]
		key := uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
		dup := false
		for j := 0; j < n; j++ {
			if seen[j] == key {
				dup = true
				break
			}
		}
		if !dup {
			seen[n] = key
			n++
		}
	}
	return n
}

// weightedCentroid returns the weight-averaged color of the block, or the
// zero vector when the total weight is non-positive.
func (b *ColorBlock) weightedCentroid() (Vector3, float32) {
	var sum Vector3
	var total float32
	for i := 0; i < BlockTexels; i++ {
		w := b.Weights[i]
		if w <= 0 {
			continue
		}
		sum = sum.Add(b.Colors[i].Vector3().Scale(w))
		total += w
	}
	if total <= 0 {
		return Vector3{}, total
	}
	return sum.Scale(1 / total), total
}
