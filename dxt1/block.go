package dxt1

import (
	"encoding/binary"
	"fmt"
)

// BlockBytes is the size in bytes of one packed DXT1 block.
const BlockBytes = 8

// BlockDXT1 is a packed 8-byte DXT1 block: two R5G6B5 endpoint colors and
// sixteen 2-bit palette indices, one per pixel in row-major order with the
// first pixel in the low bits.
//
// Packed blocks always satisfy Color0 >= Color1 so that hardware decoders
// stay in 4-color mode; the 3-color punch-through variant is never
// emitted.
type BlockDXT1 struct {
	Color0  uint16
	Color1  uint16
	Indices uint32
}

// Marshal returns the standard BC1 wire encoding of the block:
// 2 bytes Color0, 2 bytes Color1, 4 bytes of indices, all little-endian.
func (b BlockDXT1) Marshal() [BlockBytes]byte {
	var out [BlockBytes]byte
	binary.LittleEndian.PutUint16(out[0:2], b.Color0)
	binary.LittleEndian.PutUint16(out[2:4], b.Color1)
	binary.LittleEndian.PutUint32(out[4:8], b.Indices)
	return out
}

// ParseBlock parses the first 8 bytes of data as a DXT1 block.
func ParseBlock(data []byte) (BlockDXT1, error) {
	if len(data) < BlockBytes {
		return BlockDXT1{}, fmt.Errorf("dxt1: short block: need %d bytes, have %d", BlockBytes, len(data))
	}
	return BlockDXT1{
		Color0:  binary.LittleEndian.Uint16(data[0:2]),
		Color1:  binary.LittleEndian.Uint16(data[2:4]),
		Indices: binary.LittleEndian.Uint32(data[4:8]),
	}, nil
}

// Index returns the 2-bit palette index of pixel i (0..15, row-major).
func (b BlockDXT1) Index(i int) int {
	return int(b.Indices>>(2*uint(i))) & 3
}

// Palette returns the 4-entry palette decoded from the block endpoints:
// {e0, e1, lerp(e0,e1,1/3), lerp(e0,e1,2/3)} on the 8-bit-expanded
// endpoint colors. This is the sole decoding rule for blocks produced by
// this package.
func (b BlockDXT1) Palette() [4]Vector3 {
	return makePalette(expand565(b.Color0), expand565(b.Color1))
}

func makePalette(e0, e1 Vector3) [4]Vector3 {
	// True division keeps thirds of integer endpoints exact when the
	// numerator is divisible by 3, which the representability and
	// round-trip guarantees rely on.
	return [4]Vector3{
		e0,
		e1,
		{(2*e0.X + e1.X) / 3, (2*e0.Y + e1.Y) / 3, (2*e0.Z + e1.Z) / 3},
		{(e0.X + 2*e1.X) / 3, (e0.Y + 2*e1.Y) / 3, (e0.Z + 2*e1.Z) / 3},
	}
}

// pack565 quantizes a color to R5G6B5 by nearest-value rounding per
// channel.
func pack565(v Vector3) uint16 {
	r := quantize5(v.X)
	g := quantize6(v.Y)
	b := quantize5(v.Z)
	return uint16(r)<<11 | uint16(g)<<5 | uint16(b)
}

func quantize5(x float32) int {
	if x <= 0 {
		return 0
	}
	if x >= 255 {
		return 31
	}
	// Nearest value under the (c<<3 | c>>2) expansion.
	q := int(x*(31.0/255.0) + 0.5)
	if q > 0 && absF32(float32(expand5[q-1])-x) < absF32(float32(expand5[q])-x) {
		q--
	}
	if q < 31 && absF32(float32(expand5[q+1])-x) < absF32(float32(expand5[q])-x) {
		q++
	}
	return q
}

func quantize6(x float32) int {
	if x <= 0 {
		return 0
	}
	if x >= 255 {
		return 63
	}
	q := int(x*(63.0/255.0) + 0.5)
	if q > 0 && absF32(float32(expand6[q-1])-x) < absF32(float32(expand6[q])-x) {
		q--
	}
	if q < 63 && absF32(float32(expand6[q+1])-x) < absF32(float32(expand6[q])-x) {
		q++
	}
	return q
}

// expand565 expands a packed R5G6B5 color to the canonical float
// representation using the standard bit-replication rule.
func expand565(c uint16) Vector3 {
	return Vector3{
		X: float32(expand5[(c>>11)&31]),
		Y: float32(expand6[(c>>5)&63]),
		Z: float32(expand5[c&31]),
	}
}

func absF32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// packBlock assembles a block from two packed endpoints and per-pixel
// indices, swapping endpoints if needed so that Color0 >= Color1. A swap
// remaps indices 0<->1 and 2<->3, which preserves every decoded pixel.
func packBlock(c0, c1 uint16, indices uint32) BlockDXT1 {
	if c0 < c1 {
		c0, c1 = c1, c0
		indices ^= 0x55555555
	}
	if c0 == c1 {
		// All palette entries coincide; use the canonical assignment.
		indices = 0
	}
	return BlockDXT1{Color0: c0, Color1: c1, Indices: indices}
}

// packedKey is the deterministic tie-break order for candidates with equal
// MSE: the candidate with the numerically lower endpoint pair wins.
func (b BlockDXT1) packedKey() uint64 {
	return uint64(b.Color0)<<48 | uint64(b.Color1)<<32 | uint64(b.Indices)
}

// better reports whether candidate (blkA, mseA) should replace
// (blkB, mseB).
func better(blkA BlockDXT1, mseA float32, blkB BlockDXT1, mseB float32) bool {
	if mseA != mseB {
		return mseA < mseB
	}
	return blkA.packedKey() < blkB.packedKey()
}

// computeIndices assigns every sample to its nearest palette entry and
// returns the packed indices together with the total weighted squared
// error (not yet normalized by total weight). Ties go to the lower index.
func computeIndices(block *ColorBlock, colorWeights Vector3, palette [4]Vector3) (uint32, float32) {
	var indices uint32
	var totalErr float32
	for i := 0; i < BlockTexels; i++ {
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
		if w := block.Weights[i]; w > 0 {
			totalErr += w * bestDist
		}
	}
	return indices, totalErr
}

func paletteDistance(c, p, colorWeights Vector3) float32 {
	return c.Sub(p).Mul(colorWeights).LengthSquared()
}

// EvaluateMSE decodes b using its assigned indices and returns the
// weighted, channel-scaled mean squared error against block. This is the
// metric every compression strategy reports; recomputing it for a
// returned block reproduces the strategy's result exactly.
//
// A block with non-positive total weight yields UndefinedMSE.
func EvaluateMSE(block *ColorBlock, colorWeights Vector3, b BlockDXT1) float32 {
	total := block.totalWeight()
	if total <= 0 {
		return UndefinedMSE
	}
	palette := b.Palette()
	var sum float32
	for i := 0; i < BlockTexels; i++ {
		w := block.Weights[i]
		if w <= 0 {
			continue
		}
		sum += w * paletteDistance(block.Colors[i].Vector3(), palette[b.Index(i)], colorWeights)
	}
	return sum / total
}
