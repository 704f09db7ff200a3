package dds

import (
	"errors"
	"fmt"
	"io"
)

// Assemble combines several 2D DXT1 DDS files into one cubemap or volume
// texture and writes the result to w.
//
// Cubemaps take exactly six inputs (+X, -X, +Y, -Y, +Z, -Z order) and
// keep their common mip chain. Volume textures take one input per depth
// slice; slice inputs must be single-mip because slice count halves per
// level while the inputs cannot. All inputs must agree on dimensions and
// mip count.
func Assemble(w io.Writer, kind TextureKind, inputs [][]byte) error {
	if len(inputs) == 0 {
		return errors.New("dds: no input files")
	}

	headers := make([]Header, len(inputs))
	payloads := make([][]byte, len(inputs))
	for i, data := range inputs {
		h, payload, err := ParseFile(data)
		if err != nil {
			return fmt.Errorf("dds: input %d: %w", i, err)
		}
		if h.Kind != Texture2D {
			return fmt.Errorf("dds: input %d is a %s texture, want 2D", i, h.Kind)
		}
		if i > 0 && (h.Width != headers[0].Width || h.Height != headers[0].Height || h.MipMapCount != headers[0].MipMapCount) {
			return fmt.Errorf("dds: input %d is %s, does not match input 0 (%s)", i, h, headers[0])
		}
		headers[i] = h
		payloads[i] = payload
	}

	out := Header{
		Width:       headers[0].Width,
		Height:      headers[0].Height,
		Depth:       1,
		MipMapCount: headers[0].MipMapCount,
		Kind:        kind,
	}
	switch kind {
	case TextureCube:
		if len(inputs) != 6 {
			return fmt.Errorf("dds: cubemap needs 6 faces, got %d", len(inputs))
		}
	case Texture3D:
		if headers[0].MipMapCount != 1 {
			return errors.New("dds: volume slices must be single-mip")
		}
		out.Depth = uint32(len(inputs))
	default:
		return fmt.Errorf("dds: cannot assemble a %s texture", kind)
	}

	// Face-major for cubemaps, slice order for volumes; both reduce to
	// concatenating the input payloads.
	size, err := out.DataSize()
	if err != nil {
		return err
	}
	payload := make([]byte, 0, size)
	for _, p := range payloads {
		payload = append(payload, p...)
	}
	return WriteTexture(w, out, payload)
}
