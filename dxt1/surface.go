package dxt1

// BlockCount returns the number of 4x4 blocks covering an image of the
// given size. Partial edge tiles round up.
func BlockCount(width, height int) int {
	return ((width + 3) / 4) * ((height + 3) / 4)
}

// ExtractBlock copies the 4x4 tile at block coordinates (bx, by) out of a
// tightly packed RGBA8 pixel buffer into dst with uniform unit weights.
// Texels past the right or bottom image edge replicate the nearest edge
// texel, so partial tiles compress without contaminating the palette.
func ExtractBlock(rgba []byte, width, height, bx, by int, dst *ColorBlock) {
	x0 := bx * 4
	y0 := by * 4
	for dy := 0; dy < 4; dy++ {
		y := y0 + dy
		if y >= height {
			y = height - 1
		}
		for dx := 0; dx < 4; dx++ {
			x := x0 + dx
			if x >= width {
				x = width - 1
			}
			off := (y*width + x) * 4
			i := dy*4 + dx
			dst.Colors[i] = Color32{
				R: rgba[off+0],
				G: rgba[off+1],
				B: rgba[off+2],
				A: rgba[off+3],
			}
			dst.Weights[i] = 1
		}
	}
}

// CompressSurface compresses a tightly packed RGBA8 image into a BC1
// payload of 8 bytes per 4x4 block, blocks in row-major order. Alpha is
// ignored (handled upstream, per the input contract).
//
// The work is synchronous and single-goroutine; callers wanting
// parallelism drive independent blocks concurrently themselves.
func CompressSurface(rgba []byte, width, height int, colorWeights Vector3, opts *Options) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, newError(ErrBadImageSize, "dxt1: invalid image dimensions")
	}
	if len(rgba) != width*height*4 {
		return nil, newError(ErrBadImageSize, "dxt1: RGBA8 buffer length does not match dimensions")
	}

	blocksX := (width + 3) / 4
	blocksY := (height + 3) / 4
	out := make([]byte, blocksX*blocksY*BlockBytes)

	var cb ColorBlock
	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			ExtractBlock(rgba, width, height, bx, by, &cb)
			blk, _ := Compress(&cb, colorWeights, opts)
			raw := blk.Marshal()
			copy(out[(by*blocksX+bx)*BlockBytes:], raw[:])
		}
	}
	return out, nil
}
