// Package dds reads and writes DirectDraw Surface containers holding
// DXT1 compressed payloads.
//
// Only the legacy 124-byte header with a FourCC pixel format is
// supported; DX10 extension headers are not emitted or accepted.
package dds

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/texturetools/dxt1-encoder/dxt1"
)

var ddsMagic = [4]byte{'D', 'D', 'S', ' '}

const (
	// HeaderSize covers the magic plus the 124-byte header block.
	HeaderSize = 128

	headerStructSize  = 124
	pixelFormatSize   = 32
	fourCCDXT1        = 0x31545844 // "DXT1", little-endian
	maxMipLevels      = 16
	maxImageDimension = 1 << 15
)

// Header flag and caps bits, per the DirectDraw surface description.
const (
	flagCaps        = 0x00000001
	flagHeight      = 0x00000002
	flagWidth       = 0x00000004
	flagPixelFormat = 0x00001000
	flagMipMapCount = 0x00020000
	flagLinearSize  = 0x00080000
	flagDepth       = 0x00800000

	pfFlagFourCC = 0x00000004

	capsComplex = 0x00000008
	capsTexture = 0x00001000
	capsMipMap  = 0x00400000

	caps2Cubemap      = 0x00000200
	caps2CubemapFaces = 0x0000FC00 // all six +/-X, +/-Y, +/-Z bits
	caps2Volume       = 0x00200000
)

// TextureKind selects the surface layout of a DDS file.
type TextureKind int

const (
	Texture2D TextureKind = iota
	TextureCube
	Texture3D
)

func (k TextureKind) String() string {
	switch k {
	case Texture2D:
		return "2D"
	case TextureCube:
		return "cubemap"
	case Texture3D:
		return "volume"
	}
	return fmt.Sprintf("TextureKind(%d)", int(k))
}

// Header describes a DXT1 DDS file.
//
// Depth is 1 for 2D and cubemap textures. MipMapCount is at least 1; a
// value of 1 means only the top-level surface is stored.
type Header struct {
	Width       uint32
	Height      uint32
	Depth       uint32
	MipMapCount uint32
	Kind        TextureKind
}

func (h Header) String() string {
	return fmt.Sprintf("DXT1 %s %dx%dx%d, %d mip level(s)",
		h.Kind, h.Width, h.Height, h.Depth, h.MipMapCount)
}

func (h Header) validate() error {
	if h.Width == 0 || h.Height == 0 {
		return errors.New("dds: invalid header: zero image dimension")
	}
	if h.Width > maxImageDimension || h.Height > maxImageDimension {
		return fmt.Errorf("dds: invalid header: dimension exceeds %d", maxImageDimension)
	}
	switch h.Kind {
	case Texture2D, TextureCube:
		if h.Depth != 1 {
			return fmt.Errorf("dds: invalid header: %s texture with depth %d", h.Kind, h.Depth)
		}
	case Texture3D:
		if h.Depth == 0 || h.Depth > maxImageDimension {
			return fmt.Errorf("dds: invalid header: volume depth %d", h.Depth)
		}
	default:
		return fmt.Errorf("dds: invalid header: unknown texture kind %d", int(h.Kind))
	}
	if h.MipMapCount == 0 || h.MipMapCount > maxMipLevels {
		return fmt.Errorf("dds: invalid header: mipmap count %d", h.MipMapCount)
	}
	return nil
}

// faceCount returns the number of stored faces.
func (h Header) faceCount() int {
	if h.Kind == TextureCube {
		return 6
	}
	return 1
}

func mipDim(d uint32, level int) int {
	v := int(d) >> uint(level)
	if v < 1 {
		v = 1
	}
	return v
}

// MipSize returns the compressed byte size of one face at the given mip
// level. Volume textures include every depth slice of the level.
func (h Header) MipSize(level int) (int, error) {
	if err := h.validate(); err != nil {
		return 0, err
	}
	if level < 0 || level >= int(h.MipMapCount) {
		return 0, fmt.Errorf("dds: mip level %d out of range [0,%d)", level, h.MipMapCount)
	}
	w := mipDim(h.Width, level)
	ht := mipDim(h.Height, level)
	size := dxt1.BlockCount(w, ht) * dxt1.BlockBytes
	if h.Kind == Texture3D {
		size *= mipDim(h.Depth, level)
	}
	return size, nil
}

// DataSize returns the total compressed payload size of the file: every
// face, every mip level.
func (h Header) DataSize() (int, error) {
	if err := h.validate(); err != nil {
		return 0, err
	}
	var total int
	for level := 0; level < int(h.MipMapCount); level++ {
		size, err := h.MipSize(level)
		if err != nil {
			return 0, err
		}
		total += size
	}
	return total * h.faceCount(), nil
}

// ParseHeader parses the 128-byte magic-plus-header prefix of a DXT1 DDS
// file.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("dds: short header: want %d bytes, got %d", HeaderSize, len(data))
	}
	if data[0] != ddsMagic[0] || data[1] != ddsMagic[1] || data[2] != ddsMagic[2] || data[3] != ddsMagic[3] {
		return Header{}, errors.New("dds: invalid magic")
	}

	le := binary.LittleEndian
	if size := le.Uint32(data[4:8]); size != headerStructSize {
		return Header{}, fmt.Errorf("dds: invalid header size %d", size)
	}
	flags := le.Uint32(data[8:12])
	if flags&(flagCaps|flagHeight|flagWidth|flagPixelFormat) != flagCaps|flagHeight|flagWidth|flagPixelFormat {
		return Header{}, errors.New("dds: required header flags missing")
	}

	if size := le.Uint32(data[76:80]); size != pixelFormatSize {
		return Header{}, fmt.Errorf("dds: invalid pixel format size %d", size)
	}
	if le.Uint32(data[80:84])&pfFlagFourCC == 0 {
		return Header{}, errors.New("dds: pixel format is not FourCC")
	}
	if fourCC := le.Uint32(data[84:88]); fourCC != fourCCDXT1 {
		return Header{}, fmt.Errorf("dds: unsupported FourCC %#08x, want DXT1", fourCC)
	}

	h := Header{
		Height:      le.Uint32(data[12:16]),
		Width:       le.Uint32(data[16:20]),
		Depth:       1,
		MipMapCount: 1,
	}
	if flags&flagMipMapCount != 0 {
		h.MipMapCount = le.Uint32(data[28:32])
	}

	caps2 := le.Uint32(data[112:116])
	switch {
	case caps2&caps2Cubemap != 0:
		if caps2&caps2CubemapFaces != caps2CubemapFaces {
			return Header{}, errors.New("dds: partial cubemaps are not supported")
		}
		h.Kind = TextureCube
	case caps2&caps2Volume != 0:
		h.Kind = Texture3D
		if flags&flagDepth == 0 {
			return Header{}, errors.New("dds: volume texture without a depth flag")
		}
		h.Depth = le.Uint32(data[24:28])
	}

	if err := h.validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// MarshalHeader returns the 128-byte magic-plus-header encoding of h.
func MarshalHeader(h Header) ([HeaderSize]byte, error) {
	var out [HeaderSize]byte
	if err := h.validate(); err != nil {
		return out, err
	}

	le := binary.LittleEndian
	copy(out[0:4], ddsMagic[:])
	le.PutUint32(out[4:8], headerStructSize)

	flags := uint32(flagCaps | flagHeight | flagWidth | flagPixelFormat | flagLinearSize)
	caps := uint32(capsTexture)
	var caps2 uint32
	if h.MipMapCount > 1 {
		flags |= flagMipMapCount
		caps |= capsComplex | capsMipMap
	}
	switch h.Kind {
	case TextureCube:
		caps |= capsComplex
		caps2 = caps2Cubemap | caps2CubemapFaces
	case Texture3D:
		flags |= flagDepth
		caps |= capsComplex
		caps2 = caps2Volume
	}

	le.PutUint32(out[8:12], flags)
	le.PutUint32(out[12:16], h.Height)
	le.PutUint32(out[16:20], h.Width)
	le.PutUint32(out[20:24], uint32(dxt1.BlockCount(int(h.Width), int(h.Height))*dxt1.BlockBytes))
	if h.Kind == Texture3D {
		le.PutUint32(out[24:28], h.Depth)
	}
	le.PutUint32(out[28:32], h.MipMapCount)

	le.PutUint32(out[76:80], pixelFormatSize)
	le.PutUint32(out[80:84], pfFlagFourCC)
	le.PutUint32(out[84:88], fourCCDXT1)

	le.PutUint32(out[108:112], caps)
	le.PutUint32(out[112:116], caps2)
	return out, nil
}

// ParseFile parses a full DXT1 DDS file.
//
// It returns the header and the compressed payload (the slice aliases
// data). Trailing bytes after the payload are rejected.
func ParseFile(data []byte) (Header, []byte, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return Header{}, nil, err
	}
	size, err := h.DataSize()
	if err != nil {
		return Header{}, nil, err
	}
	need := HeaderSize + size
	if len(data) < need {
		return Header{}, nil, fmt.Errorf("dds: truncated payload: want %d bytes, got %d", need, len(data))
	}
	if len(data) > need {
		return Header{}, nil, fmt.Errorf("dds: %d trailing bytes after payload", len(data)-need)
	}
	return h, data[HeaderSize:need], nil
}
