package dxt1

// DefaultErrorThreshold is the dispatcher's default "good enough" MSE for
// the cheap single-color path, in squared 8-bit units per pixel. Roughly
// the floor set by 5:6:5 quantization alone.
const DefaultErrorThreshold = 1.0

// Options configures the dispatcher. The zero value selects defaults.
type Options struct {
	// ErrorThreshold is the MSE below which the weighted single-color fit
	// is accepted without running cluster fit. Zero selects
	// DefaultErrorThreshold; a negative value disables the early exit.
	ErrorThreshold float32
}

func (o *Options) errorThreshold() float32 {
	if o == nil || o.ErrorThreshold == 0 {
		return DefaultErrorThreshold
	}
	return o.ErrorThreshold
}

// Compress packs the block with the dispatch policy: try the cheap
// weighted single-color fit first and accept it below the configured
// threshold; otherwise run cluster fit and return whichever candidate has
// the lower MSE. The result never regresses below the cheap path.
//
// Compress always returns a valid block and its MSE; it is pure, never
// fails, and is safe for unsynchronized concurrent use across independent
// blocks.
func Compress(block *ColorBlock, colorWeights Vector3, opts *Options) (BlockDXT1, float32) {
	blk, mse := CompressSingleColor(block, colorWeights)
	if mse == UndefinedMSE {
		// Non-positive total weight; callers filter these upstream.
		return blk, mse
	}
	if mse < opts.errorThreshold() {
		return blk, mse
	}

	clusterBlk, clusterMSE := CompressClusterFit(block, colorWeights)
	if better(clusterBlk, clusterMSE, blk, mse) {
		return clusterBlk, clusterMSE
	}
	return blk, mse
}
