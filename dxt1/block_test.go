package dxt1_test

import (
	"testing"

	"github.com/texturetools/dxt1-encoder/dxt1"
)

func TestBlockWireLayout(t *testing.T) {
	blk := dxt1.BlockDXT1{Color0: 0xF800, Color1: 0x001F, Indices: 0x000000E4}

	raw := blk.Marshal()
	want := [dxt1.BlockBytes]byte{0x00, 0xF8, 0x1F, 0x00, 0xE4, 0x00, 0x00, 0x00}
	if raw != want {
		t.Fatalf("Marshal: got % x want % x", raw, want)
	}

	got, err := dxt1.ParseBlock(raw[:])
	if err != nil {
		t.Fatalf("ParseBlock: %v", err)
	}
	if got != blk {
		t.Fatalf("ParseBlock round trip: got %+v want %+v", got, blk)
	}
}

func TestParseBlockShort(t *testing.T) {
	if _, err := dxt1.ParseBlock(make([]byte, dxt1.BlockBytes-1)); err == nil {
		t.Fatal("ParseBlock accepted a short buffer")
	}
}

func TestBlockIndexOrder(t *testing.T) {
	// First pixel lives in the low bits.
	blk := dxt1.BlockDXT1{Indices: 0b11_10_01_00}
	for i, want := range []int{0, 1, 2, 3} {
		if got := blk.Index(i); got != want {
			t.Fatalf("Index(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestPaletteDerivation(t *testing.T) {
	// White and black expand exactly and their thirds are integral.
	blk := dxt1.BlockDXT1{Color0: 0xFFFF, Color1: 0x0000}
	pal := blk.Palette()

	want := [4]dxt1.Vector3{
		{255, 255, 255},
		{0, 0, 0},
		{170, 170, 170},
		{85, 85, 85},
	}
	if pal != want {
		t.Fatalf("Palette: got %v want %v", pal, want)
	}
}

func TestCompressedBlocksStayInFourColorMode(t *testing.T) {
	blocks := []*dxt1.ColorBlock{
		gradientBlock(),
		twoColorBlock(dxt1.Color32{R: 16, G: 32, B: 48, A: 255}, dxt1.Color32{R: 240, G: 200, B: 160, A: 255}),
		uniformBlock(dxt1.Color32{R: 128, G: 64, B: 32, A: 255}),
	}
	for i, cb := range blocks {
		blk, _ := dxt1.Compress(cb, dxt1.DefaultColorWeights, nil)
		if blk.Color0 < blk.Color1 {
			t.Fatalf("block %d: color0 %#04x < color1 %#04x", i, blk.Color0, blk.Color1)
		}
	}
}
