package dds

import (
	"fmt"
	"image"
	"image/draw"
	"io"

	"github.com/texturetools/dxt1-encoder/dxt1"
)

// WriteTexture writes a complete DDS file: header followed by the
// compressed payload, which must match h.DataSize exactly.
func WriteTexture(w io.Writer, h Header, payload []byte) error {
	size, err := h.DataSize()
	if err != nil {
		return err
	}
	if len(payload) != size {
		return fmt.Errorf("dds: payload is %d bytes, header describes %d", len(payload), size)
	}
	raw, err := MarshalHeader(h)
	if err != nil {
		return err
	}
	if _, err := w.Write(raw[:]); err != nil {
		return fmt.Errorf("dds: write header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("dds: write payload: %w", err)
	}
	return nil
}

// CompressImage compresses img into a DXT1 payload.
func CompressImage(img image.Image, colorWeights dxt1.Vector3, opts *dxt1.Options) ([]byte, error) {
	rgba := ToRGBA(img)
	b := rgba.Bounds()
	return dxt1.CompressSurface(rgba.Pix, b.Dx(), b.Dy(), colorWeights, opts)
}

// EncodeDXT1 compresses img and writes it as a single-mip 2D DXT1 DDS
// file.
func EncodeDXT1(w io.Writer, img image.Image, colorWeights dxt1.Vector3, opts *dxt1.Options) error {
	b := img.Bounds()
	payload, err := CompressImage(img, colorWeights, opts)
	if err != nil {
		return err
	}
	h := Header{
		Width:       uint32(b.Dx()),
		Height:      uint32(b.Dy()),
		Depth:       1,
		MipMapCount: 1,
		Kind:        Texture2D,
	}
	return WriteTexture(w, h, payload)
}

// ToRGBA returns img as a tightly packed *image.RGBA with a zero origin,
// converting only when necessary.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		b := rgba.Bounds()
		if b.Min.X == 0 && b.Min.Y == 0 && rgba.Stride == b.Dx()*4 {
			return rgba
		}
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
