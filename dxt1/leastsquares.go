package dxt1

// CompressLeastSquaresFit compresses the block with a one-shot heuristic:
// project every sample onto the principal axis of the weighted color
// cloud, freeze each sample's assignment to the nearest of four evenly
// spaced positions between the projection extrema, then solve the
// 2-unknown normal equations for the endpoints minimizing weighted error
// under that assignment.
//
// The result never regresses below the weighted single-color fit on the
// same input, but carries no global-optimality guarantee since indices are
// frozen before endpoints are solved.
func CompressLeastSquaresFit(block *ColorBlock, colorWeights Vector3) (BlockDXT1, float32) {
	baseBlk, baseMSE := CompressSingleColor(block, colorWeights)
	if baseMSE == UndefinedMSE {
		return baseBlk, baseMSE
	}

	centroid, total := block.weightedCentroid()
	scaledCentroid := centroid.Mul(colorWeights)

	axis, ok := principalAxis(blockCovariance(block, colorWeights, scaledCentroid))
	if !ok {
		// Zero variance: the centroid already captures the block.
		return baseBlk, baseMSE
	}

	// Projection extrema along the axis, in color-weighted space.
	var tMin, tMax float32
	first := true
	var proj [BlockTexels]float32
	for i := 0; i < BlockTexels; i++ {
		if block.Weights[i] <= 0 {
			continue
		}
		t := block.Colors[i].Vector3().Mul(colorWeights).Sub(scaledCentroid).Dot(axis)
		proj[i] = t
		if first {
			tMin, tMax = t, t
			first = false
		} else {
			if t < tMin {
				tMin = t
			}
			if t > tMax {
				tMax = t
			}
		}
	}
	if tMax <= tMin {
		return baseBlk, baseMSE
	}

	// Fixed assignment: nearest of 4 evenly spaced positions, then the
	// per-channel least-squares solve for the endpoints.
	invRange := 1 / (tMax - tMin)
	var eq normalEquations
	for i := 0; i < BlockTexels; i++ {
		w := block.Weights[i]
		if w <= 0 {
			continue
		}
		step := int((tMax-proj[i])*invRange*3 + 0.5)
		if step < 0 {
			step = 0
		} else if step > 3 {
			step = 3
		}
		eq.add(w, interpBasis[step], block.Colors[i].Vector3())
	}

	e0, e1, ok := eq.solve()
	if !ok {
		return baseBlk, baseMSE
	}

	blk, mse := finishCandidate(block, colorWeights, e0, e1, total)
	if better(blk, mse, baseBlk, baseMSE) {
		return blk, mse
	}
	return baseBlk, baseMSE
}

// finishCandidate quantizes a float endpoint pair, derives the palette and
// nearest-entry indices, and returns the packed block with its weighted
// MSE. Quantization error is part of the score.
func finishCandidate(block *ColorBlock, colorWeights Vector3, e0, e1 Vector3, totalWeight float32) (BlockDXT1, float32) {
	q0 := pack565(e0)
	q1 := pack565(e1)
	palette := makePalette(expand565(q0), expand565(q1))
	indices, sumErr := computeIndices(block, colorWeights, palette)
	return packBlock(q0, q1, indices), sumErr / totalWeight
}
