package dxt1

// CompressBoundingBoxExhaustive probes quantized endpoint pairs drawn from
// the neighborhood of the color bounding box and keeps the lowest-MSE
// candidate. searchLimit caps the number of endpoint pairs evaluated,
// trading quality for cost.
//
// The candidate ordering is fixed, so for a given input the result is
// deterministic and increasing searchLimit never increases the returned
// MSE. There is no optimality guarantee beyond the probed set.
func CompressBoundingBoxExhaustive(block *ColorBlock, colorWeights Vector3, searchLimit int) (BlockDXT1, float32) {
	bestBlk, bestMSE := CompressSingleColor(block, colorWeights)
	if bestMSE == UndefinedMSE || searchLimit <= 0 {
		return bestBlk, bestMSE
	}
	total := block.totalWeight()

	// Color bounding box over the positive-weight samples.
	var minC, maxC Vector3
	first := true
	for i := 0; i < BlockTexels; i++ {
		if block.Weights[i] <= 0 {
			continue
		}
		c := block.Colors[i].Vector3()
		if first {
			minC, maxC = c, c
			first = false
			continue
		}
		minC = minVec3(minC, c)
		maxC = maxVec3(maxC, c)
	}

	// Quantized channel ranges, widened by one step on each side.
	r0, r1 := channelRange5(minC.X, maxC.X)
	g0, g1 := channelRange6(minC.Y, maxC.Y)
	b0, b1 := channelRange5(minC.Z, maxC.Z)

	// Flatten the neighborhood into a fixed candidate order.
	var candidates []uint16
	for r := r0; r <= r1; r++ {
		for g := g0; g <= g1; g++ {
			for b := b0; b <= b1; b++ {
				candidates = append(candidates, uint16(r)<<11|uint16(g)<<5|uint16(b))
			}
		}
	}

	// Probe unordered endpoint pairs in order until the budget runs out.
	// The palette is symmetric under an endpoint swap, so i <= j suffices.
	probes := 0
	for i := 0; i < len(candidates); i++ {
		for j := i; j < len(candidates); j++ {
			if probes >= searchLimit {
				return bestBlk, bestMSE
			}
			probes++

			q0, q1 := candidates[i], candidates[j]
			palette := makePalette(expand565(q0), expand565(q1))
			indices, sumErr := computeIndices(block, colorWeights, palette)
			mse := sumErr / total
			if blk := packBlock(q0, q1, indices); better(blk, mse, bestBlk, bestMSE) {
				bestBlk, bestMSE = blk, mse
			}
		}
	}
	return bestBlk, bestMSE
}

func channelRange5(lo, hi float32) (int, int) {
	a := quantize5(lo) - 1
	b := quantize5(hi) + 1
	if a < 0 {
		a = 0
	}
	if b > 31 {
		b = 31
	}
	return a, b
}

func channelRange6(lo, hi float32) (int, int) {
	a := quantize6(lo) - 1
	b := quantize6(hi) + 1
	if a < 0 {
		a = 0
	}
	if b > 63 {
		b = 63
	}
	return a, b
}

func minVec3(a, b Vector3) Vector3 {
	return Vector3{minF32(a.X, b.X), minF32(a.Y, b.Y), minF32(a.Z, b.Z)}
}

func maxVec3(a, b Vector3) Vector3 {
	return Vector3{maxF32(a.X, b.X), maxF32(a.Y, b.Y), maxF32(a.Z, b.Z)}
}

func minF32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxF32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
