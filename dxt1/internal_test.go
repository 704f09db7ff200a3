package dxt1

import "testing"

// The optimal-match tables must reach the true per-channel minimum: for
// every target the tabulated pair's interpolant error equals the best
// achievable over all code pairs.
func TestOptimalTablesAreOptimal(t *testing.T) {
	match5, match6 := optimalTables()

	check := func(name string, table *[256][2]uint8, expand []uint8) {
		for target := 0; target < 256; target++ {
			best := 1 << 30
			for a := 0; a < len(expand); a++ {
				for b := 0; b < len(expand); b++ {
					err := 2*int(expand[a]) + int(expand[b]) - 3*target
					if err < 0 {
						err = -err
					}
					if err < best {
						best = err
					}
				}
			}
			pair := table[target]
			got := 2*int(expand[pair[0]]) + int(expand[pair[1]]) - 3*target
			if got < 0 {
				got = -got
			}
			if got != best {
				t.Fatalf("%s[%d]: pair (%d,%d) error %d, optimum %d", name, target, pair[0], pair[1], got, best)
			}
		}
	}
	check("match5", match5, expand5[:])
	check("match6", match6, expand6[:])
}

// quantize5/quantize6 must pick the nearest expanded value, not merely the
// nearest code.
func TestQuantizeNearest(t *testing.T) {
	for v := 0; v < 256; v++ {
		x := float32(v)

		got := expand5[quantize5(x)]
		best := expand5[0]
		for _, e := range expand5 {
			if absF32(float32(e)-x) < absF32(float32(best)-x) {
				best = e
			}
		}
		if got != best {
			t.Fatalf("quantize5(%d): expanded %d, nearest %d", v, got, best)
		}

		got6 := expand6[quantize6(x)]
		best6 := expand6[0]
		for _, e := range expand6 {
			if absF32(float32(e)-x) < absF32(float32(best6)-x) {
				best6 = e
			}
		}
		if got6 != best6 {
			t.Fatalf("quantize6(%d): expanded %d, nearest %d", v, got6, best6)
		}
	}
}

// An endpoint swap in packBlock must not change any decoded pixel.
func TestPackBlockSwapPreservesDecode(t *testing.T) {
	const c0, c1 = 0x1234, 0xABCD // c0 < c1 forces a swap
	indices := uint32(0xE4E4E4E4)

	palette := makePalette(expand565(c0), expand565(c1))
	blk := packBlock(c0, c1, indices)
	if blk.Color0 < blk.Color1 {
		t.Fatalf("packBlock did not canonicalize endpoint order")
	}

	swapped := blk.Palette()
	for i := 0; i < BlockTexels; i++ {
		want := palette[(indices>>(2*uint(i)))&3]
		if got := swapped[blk.Index(i)]; got != want {
			t.Fatalf("pixel %d decodes to %v after swap, want %v", i, got, want)
		}
	}
}

// Power iteration recovers the dominant axis of an elongated cloud.
func TestPrincipalAxisDirection(t *testing.T) {
	var cb ColorBlock
	for i := 0; i < BlockTexels; i++ {
		v := uint8(i * 17)
		cb.Colors[i] = Color32{R: v, G: v / 2, B: 0, A: 255}
		cb.Weights[i] = 1
	}
	centroid, _ := cb.weightedCentroid()
	axis, ok := principalAxis(blockCovariance(&cb, DefaultColorWeights, centroid))
	if !ok {
		t.Fatal("principalAxis failed on a non-degenerate cloud")
	}

	// The cloud lies along (2,1,0); the axis must be parallel to it.
	want := Vector3{2, 1, 0}
	cosSq := axis.Dot(want) * axis.Dot(want) / (axis.LengthSquared() * want.LengthSquared())
	if cosSq < 0.999 {
		t.Fatalf("axis %v not parallel to %v (cos^2 = %g)", axis, want, cosSq)
	}

	if _, ok := principalAxis(covariance6{}); ok {
		t.Fatal("principalAxis accepted a zero covariance")
	}
}

// The degenerate zero-weight input hits the documented sentinel on every
// strategy.
func TestZeroWeightSentinelAllStrategies(t *testing.T) {
	var cb ColorBlock
	for _, run := range []struct {
		name string
		fn   func() (BlockDXT1, float32)
	}{
		{"single", func() (BlockDXT1, float32) { return CompressSingleColor(&cb, DefaultColorWeights) }},
		{"leastsquares", func() (BlockDXT1, float32) { return CompressLeastSquaresFit(&cb, DefaultColorWeights) }},
		{"boundingbox", func() (BlockDXT1, float32) { return CompressBoundingBoxExhaustive(&cb, DefaultColorWeights, 100) }},
		{"cluster", func() (BlockDXT1, float32) { return CompressClusterFit(&cb, DefaultColorWeights) }},
	} {
		blk, mse := run.fn()
		if blk != zeroBlock {
			t.Errorf("%s: got %+v, want the zero block", run.name, blk)
		}
		if mse != UndefinedMSE {
			t.Errorf("%s: got MSE %g, want UndefinedMSE", run.name, mse)
		}
	}
}
