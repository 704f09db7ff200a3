package dxt1

// CompressClusterFit is the highest-quality strategy. It sorts the samples
// by their projection onto the principal axis and enumerates every index
// assignment that is non-decreasing along that order, which bounds the
// search to O(n^3) boundary placements instead of 4^16 assignments.
// Prefix sums of weight, weighted color and weighted squared color make
// the per-placement least-squares endpoint solve and score O(1).
//
// Each placement's endpoints are quantized before scoring, so quantization
// error is part of the selection, and the candidate search is seeded with
// the least-squares fit so the result never regresses below it (nor below
// the single-color fit, which least-squares itself floors on).
//
// Degenerate inputs: fewer than two distinct colors delegates to the
// single-color paths; a non-positive total weight returns the canonical
// zero block with UndefinedMSE.
func CompressClusterFit(block *ColorBlock, colorWeights Vector3) (BlockDXT1, float32) {
	total := block.totalWeight()
	if total <= 0 {
		return zeroBlock, UndefinedMSE
	}
	if block.countDistinctColors() < 2 {
		return CompressSingleColor(block, colorWeights)
	}

	bestBlk, bestMSE := CompressLeastSquaresFit(block, colorWeights)

	centroid, _ := block.weightedCentroid()
	scaledCentroid := centroid.Mul(colorWeights)
	axis, ok := principalAxis(blockCovariance(block, colorWeights, scaledCentroid))
	if !ok {
		return bestBlk, bestMSE
	}

	// Collect the positive-weight samples and sort them by projected
	// position along the axis. Fixed-size arrays keep the hot path free
	// of heap allocation.
	var (
		order  [BlockTexels]int // original pixel position per sorted rank
		proj   [BlockTexels]float32
		n      int
		sorted [BlockTexels]struct {
			color  Vector3
			weight float32
		}
	)
	for i := 0; i < BlockTexels; i++ {
		w := block.Weights[i]
		if w <= 0 {
			continue
		}
		t := block.Colors[i].Vector3().Mul(colorWeights).Sub(scaledCentroid).Dot(axis)
		// Insertion sort by projection; stable for equal projections.
		j := n
		for j > 0 && proj[j-1] > t {
			proj[j] = proj[j-1]
			order[j] = order[j-1]
			sorted[j] = sorted[j-1]
			j--
		}
		proj[j] = t
		order[j] = i
		sorted[j].color = block.Colors[i].Vector3()
		sorted[j].weight = w
		n++
	}
	if n < 2 {
		return bestBlk, bestMSE
	}

	// Prefix sums along the sorted order.
	cw2 := colorWeights.Mul(colorWeights)
	var (
		sumW  [BlockTexels + 1]float32
		sumC  [BlockTexels + 1]Vector3
		sumSq [BlockTexels + 1]float32
	)
	for r := 0; r < n; r++ {
		w := sorted[r].weight
		c := sorted[r].color
		sumW[r+1] = sumW[r] + w
		sumC[r+1] = sumC[r].Add(c.Scale(w))
		sumSq[r+1] = sumSq[r] + w*c.Mul(colorWeights).LengthSquared()
	}

	// Enumerate monotone boundary placements (i, j, k): sorted ranks
	// [0,i) take step 0, [i,j) step 1, [j,k) step 2, [k,n) step 3.
	bestScore := float32(-1)
	bestI, bestJ, bestK := -1, -1, -1
	var bestQ0, bestQ1 uint16
	for i := 0; i <= n; i++ {
		for j := i; j <= n; j++ {
			for k := j; k <= n; k++ {
				var eq normalEquations
				addSegment(&eq, &sumW, &sumC, 0, i, interpBasis[0])
				addSegment(&eq, &sumW, &sumC, i, j, interpBasis[1])
				addSegment(&eq, &sumW, &sumC, j, k, interpBasis[2])
				addSegment(&eq, &sumW, &sumC, k, n, interpBasis[3])

				e0, e1, ok := eq.solve()
				if !ok {
					continue
				}
				q0 := pack565(e0)
				q1 := pack565(e1)
				ex0 := expand565(q0)
				ex1 := expand565(q1)

				score := segmentError(&sumW, &sumC, &sumSq, cw2, 0, i, mix(ex0, ex1, interpBasis[0]))
				score += segmentError(&sumW, &sumC, &sumSq, cw2, i, j, mix(ex0, ex1, interpBasis[1]))
				score += segmentError(&sumW, &sumC, &sumSq, cw2, j, k, mix(ex0, ex1, interpBasis[2]))
				score += segmentError(&sumW, &sumC, &sumSq, cw2, k, n, mix(ex0, ex1, interpBasis[3]))
				if score < 0 {
					score = 0
				}

				if bestScore < 0 || score < bestScore {
					bestScore = score
					bestI, bestJ, bestK = i, j, k
					bestQ0, bestQ1 = q0, q1
				}
			}
		}
	}
	if bestI < 0 {
		return bestBlk, bestMSE
	}

	// Rebuild the winning assignment per original pixel position.
	// Zero-weight pixels do not contribute to the score; give them their
	// nearest palette entry.
	palette := makePalette(expand565(bestQ0), expand565(bestQ1))
	var indices uint32
	var assigned [BlockTexels]bool
	for r := 0; r < n; r++ {
		step := 3
		switch {
		case r < bestI:
			step = 0
		case r < bestJ:
			step = 1
		case r < bestK:
			step = 2
		}
		indices |= stepIndexToPalette[step] << (2 * uint(order[r]))
		assigned[order[r]] = true
	}
	for i := 0; i < BlockTexels; i++ {
		if assigned[i] {
			continue
		}
		c := block.Colors[i].Vector3()
		best := 0
		bestDist := paletteDistance(c, palette[0], colorWeights)
		for j := 1; j < 4; j++ {
			if d := paletteDistance(c, palette[j], colorWeights); d < bestDist {
				bestDist = d
				best = j
			}
		}
		indices |= uint32(best) << (2 * uint(i))
	}

	blk := packBlock(bestQ0, bestQ1, indices)
	mse := EvaluateMSE(block, colorWeights, blk)
	if better(blk, mse, bestBlk, bestMSE) {
		return blk, mse
	}
	return bestBlk, bestMSE
}

// addSegment folds the sorted ranks [a, b) into the normal equations with
// endpoint mixing factor alpha, using the prefix sums.
func addSegment(eq *normalEquations, sumW *[BlockTexels + 1]float32, sumC *[BlockTexels + 1]Vector3, a, b int, alpha float32) {
	if a >= b {
		return
	}
	w := sumW[b] - sumW[a]
	c := sumC[b].Sub(sumC[a])
	beta := 1 - alpha
	eq.aa += w * alpha * alpha
	eq.ab += w * alpha * beta
	eq.bb += w * beta * beta
	eq.ax = eq.ax.Add(c.Scale(alpha))
	eq.bx = eq.bx.Add(c.Scale(beta))
}

// segmentError is the weighted squared error of assigning every sample in
// sorted ranks [a, b) to palette value p, expanded from the prefix sums:
// sum w|c-p|^2 = sum w|c|^2 - 2 p . sum w c + |p|^2 sum w, all in
// color-weighted space.
func segmentError(sumW *[BlockTexels + 1]float32, sumC *[BlockTexels + 1]Vector3, sumSq *[BlockTexels + 1]float32, cw2 Vector3, a, b int, p Vector3) float32 {
	if a >= b {
		return 0
	}
	w := sumW[b] - sumW[a]
	c := sumC[b].Sub(sumC[a])
	sq := sumSq[b] - sumSq[a]
	return sq - 2*p.Mul(cw2).Dot(c) + w*p.Mul(cw2).Dot(p)
}

// mix returns alpha*e0 + (1-alpha)*e1.
func mix(e0, e1 Vector3, alpha float32) Vector3 {
	return e0.Scale(alpha).Add(e1.Scale(1 - alpha))
}
