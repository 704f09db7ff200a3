package dxt1

import "math"

// UndefinedMSE is the sentinel returned for degenerate inputs whose error
// is undefined, such as a block with non-positive total weight. Callers
// are expected to filter zero-weight blocks upstream.
var UndefinedMSE = float32(math.Inf(1))

// zeroBlock is the canonical degenerate result.
var zeroBlock = BlockDXT1{}

// CompressSingleColorOptimal returns the block with provably minimal MSE
// for a tile holding 16 copies of c, together with that MSE (unweighted,
// per pixel). The MSE is 0 exactly when c is representable under 5:6:5
// quantization and the interpolation identities.
//
// Channels are independent under linear interpolation, so each channel's
// optimal endpoint code pair comes from a small lookup table built by
// exhaustive search over its discrete domain.
func CompressSingleColorOptimal(c Color32) (BlockDXT1, float32) {
	match5, match6 := optimalTables()

	r := match5[c.R]
	g := match6[c.G]
	b := match5[c.B]

	c0 := uint16(r[0])<<11 | uint16(g[0])<<5 | uint16(b[0])
	c1 := uint16(r[1])<<11 | uint16(g[1])<<5 | uint16(b[1])

	// Every pixel selects palette entry 2, the 2/3:1/3 interpolant the
	// tables were built for.
	blk := packBlock(c0, c1, 0xAAAAAAAA)

	palette := blk.Palette()
	mse := paletteDistance(c.Vector3(), palette[blk.Index(0)], DefaultColorWeights)
	return blk, mse
}

// CompressSingleColorOptimalVector is the float-color adapter for
// CompressSingleColorOptimal; v is rounded to the nearest 8-bit color
// first.
func CompressSingleColorOptimalVector(v Vector3) (BlockDXT1, float32) {
	return CompressSingleColorOptimal(v.Color32())
}

// CompressSingleColor approximates the block by a single representative
// color: it computes the weighted centroid in color-weighted space,
// encodes it with the single-color optimal path, and reports the MSE of
// that block against the actual (possibly non-uniform) input.
//
// This is the cheap baseline for near-flat blocks.
func CompressSingleColor(block *ColorBlock, colorWeights Vector3) (BlockDXT1, float32) {
	centroid, total := block.weightedCentroid()
	if total <= 0 {
		return zeroBlock, UndefinedMSE
	}
	blk, _ := CompressSingleColorOptimalVector(centroid)
	return blk, EvaluateMSE(block, colorWeights, blk)
}
