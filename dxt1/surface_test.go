package dxt1_test

import (
	"testing"

	"github.com/texturetools/dxt1-encoder/dxt1"
)

func solidRGBA(w, h int, c dxt1.Color32) []byte {
	buf := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		buf[i*4+0] = c.R
		buf[i*4+1] = c.G
		buf[i*4+2] = c.B
		buf[i*4+3] = c.A
	}
	return buf
}

func TestCompressSurfaceSize(t *testing.T) {
	for _, tc := range []struct {
		w, h   int
		blocks int
	}{
		{4, 4, 1},
		{8, 4, 2},
		{16, 16, 16},
		{5, 3, 2},  // partial edge tiles round up
		{1, 1, 1},
		{13, 9, 12},
	} {
		payload, err := dxt1.CompressSurface(solidRGBA(tc.w, tc.h, dxt1.Color32{R: 200, G: 100, B: 50, A: 255}), tc.w, tc.h, dxt1.DefaultColorWeights, nil)
		if err != nil {
			t.Fatalf("%dx%d: %v", tc.w, tc.h, err)
		}
		if len(payload) != tc.blocks*dxt1.BlockBytes {
			t.Fatalf("%dx%d: payload %d bytes, want %d blocks", tc.w, tc.h, len(payload), tc.blocks)
		}
	}
}

func TestCompressSurfaceValidation(t *testing.T) {
	if _, err := dxt1.CompressSurface(nil, 0, 4, dxt1.DefaultColorWeights, nil); dxt1.ErrorCodeOf(err) != dxt1.ErrBadImageSize {
		t.Fatalf("zero width: got %v", err)
	}
	if _, err := dxt1.CompressSurface(make([]byte, 10), 4, 4, dxt1.DefaultColorWeights, nil); dxt1.ErrorCodeOf(err) != dxt1.ErrBadImageSize {
		t.Fatalf("short buffer: got %v", err)
	}
}

// Edge replication must not contaminate the palette of partial tiles: a
// solid image of any size stays solid after compression.
func TestCompressSurfacePartialTileReplication(t *testing.T) {
	const w, h = 5, 3
	c := dxt1.Color32{R: 255, G: 0, B: 0, A: 255} // exactly representable
	payload, err := dxt1.CompressSurface(solidRGBA(w, h, c), w, h, dxt1.DefaultColorWeights, nil)
	if err != nil {
		t.Fatal(err)
	}
	for off := 0; off < len(payload); off += dxt1.BlockBytes {
		blk, err := dxt1.ParseBlock(payload[off:])
		if err != nil {
			t.Fatal(err)
		}
		if got := dxt1.EvaluateMSE(uniformBlock(c), dxt1.DefaultColorWeights, blk); got != 0 {
			t.Fatalf("block at %d: MSE %g, want 0", off, got)
		}
	}
}

func TestExtractBlockClampsEdges(t *testing.T) {
	// 2x2 image: every clamped texel must equal one of the four corners.
	rgba := []byte{
		1, 0, 0, 255, 2, 0, 0, 255,
		3, 0, 0, 255, 4, 0, 0, 255,
	}
	var cb dxt1.ColorBlock
	dxt1.ExtractBlock(rgba, 2, 2, 0, 0, &cb)

	want := [dxt1.BlockTexels]uint8{
		1, 2, 2, 2,
		3, 4, 4, 4,
		3, 4, 4, 4,
		3, 4, 4, 4,
	}
	for i, r := range want {
		if cb.Colors[i].R != r {
			t.Fatalf("texel %d: R=%d, want %d", i, cb.Colors[i].R, r)
		}
		if cb.Weights[i] != 1 {
			t.Fatalf("texel %d: weight %g, want 1", i, cb.Weights[i])
		}
	}
}
