package dds_test

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/texturetools/dxt1-encoder/dds"
	"github.com/texturetools/dxt1-encoder/dxt1"
)

func TestHeaderRoundTrip(t *testing.T) {
	for _, h := range []dds.Header{
		{Width: 1024, Height: 768, Depth: 1, MipMapCount: 1, Kind: dds.Texture2D},
		{Width: 256, Height: 256, Depth: 1, MipMapCount: 9, Kind: dds.TextureCube},
		{Width: 64, Height: 64, Depth: 32, MipMapCount: 1, Kind: dds.Texture3D},
	} {
		enc, err := dds.MarshalHeader(h)
		if err != nil {
			t.Fatalf("%s: MarshalHeader: %v", h, err)
		}
		got, err := dds.ParseHeader(enc[:])
		if err != nil {
			t.Fatalf("%s: ParseHeader: %v", h, err)
		}
		if got != h {
			t.Fatalf("round-trip mismatch: got %+v, want %+v", got, h)
		}
		if !bytes.Equal(enc[0:4], []byte("DDS ")) {
			t.Fatalf("unexpected magic: %x", enc[0:4])
		}
	}
}

func TestParseHeaderRejects(t *testing.T) {
	good, err := dds.MarshalHeader(dds.Header{Width: 16, Height: 16, Depth: 1, MipMapCount: 1})
	if err != nil {
		t.Fatal(err)
	}

	for name, mutate := range map[string]func(b []byte){
		"magic":       func(b []byte) { b[0] = 'X' },
		"header size": func(b []byte) { b[4] = 100 },
		"fourcc":      func(b []byte) { b[87] = '5' }, // DXT5
		"zero width":  func(b []byte) { b[16], b[17] = 0, 0 },
	} {
		bad := append([]byte(nil), good[:]...)
		mutate(bad)
		if _, err := dds.ParseHeader(bad); err == nil {
			t.Errorf("%s: corrupted header accepted", name)
		}
	}

	if _, err := dds.ParseHeader(good[:dds.HeaderSize-1]); err == nil {
		t.Error("short header accepted")
	}
}

func TestMipSizes(t *testing.T) {
	h := dds.Header{Width: 16, Height: 8, Depth: 1, MipMapCount: 5, Kind: dds.Texture2D}

	// 16x8 -> 8 blocks, then 4x2 tiles clamp to whole blocks: 2, 1, 1, 1.
	want := []int{8 * 8, 2 * 8, 1 * 8, 1 * 8, 1 * 8}
	total := 0
	for level, w := range want {
		got, err := h.MipSize(level)
		if err != nil {
			t.Fatalf("MipSize(%d): %v", level, err)
		}
		if got != w {
			t.Fatalf("MipSize(%d) = %d, want %d", level, got, w)
		}
		total += w
	}
	if got, _ := h.DataSize(); got != total {
		t.Fatalf("DataSize = %d, want %d", got, total)
	}

	// Cubemaps multiply by six faces.
	h.Kind = dds.TextureCube
	if got, _ := h.DataSize(); got != 6*total {
		t.Fatalf("cubemap DataSize = %d, want %d", got, 6*total)
	}
}

func TestVolumeDataSizeShrinksDepth(t *testing.T) {
	h := dds.Header{Width: 8, Height: 8, Depth: 4, MipMapCount: 3, Kind: dds.Texture3D}

	// Level 0: 4 blocks x 4 slices; level 1: 1 block x 2 slices;
	// level 2: 1 block x 1 slice.
	want := (4*4 + 1*2 + 1*1) * dxt1.BlockBytes
	if got, _ := h.DataSize(); got != want {
		t.Fatalf("DataSize = %d, want %d", got, want)
	}
}

func solidImage(w, h int, c color.NRGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	img := solidImage(12, 8, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	if err := dds.EncodeDXT1(&buf, img, dxt1.DefaultColorWeights, nil); err != nil {
		t.Fatalf("EncodeDXT1: %v", err)
	}

	h, payload, err := dds.ParseFile(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if h.Width != 12 || h.Height != 8 || h.Kind != dds.Texture2D || h.MipMapCount != 1 {
		t.Fatalf("unexpected header: %s", h)
	}
	if want := dxt1.BlockCount(12, 8) * dxt1.BlockBytes; len(payload) != want {
		t.Fatalf("payload %d bytes, want %d", len(payload), want)
	}

	// Solid white is exactly representable.
	blk, err := dxt1.ParseBlock(payload)
	if err != nil {
		t.Fatal(err)
	}
	if e := blk.Palette()[blk.Index(0)]; e.X != 255 || e.Y != 255 || e.Z != 255 {
		t.Fatalf("first pixel decodes to %v, want white", e)
	}
}

func TestParseFileRejectsTrailingBytes(t *testing.T) {
	var buf bytes.Buffer
	img := solidImage(4, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	if err := dds.EncodeDXT1(&buf, img, dxt1.DefaultColorWeights, nil); err != nil {
		t.Fatal(err)
	}
	buf.WriteByte(0)
	if _, _, err := dds.ParseFile(buf.Bytes()); err == nil {
		t.Fatal("trailing byte accepted")
	}
}
