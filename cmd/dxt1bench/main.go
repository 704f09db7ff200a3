// Command dxt1bench measures per-strategy compression throughput and
// quality on synthetic tiles.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/texturetools/dxt1-encoder/dxt1"
)

func main() {
	var (
		width    int
		height   int
		strategy string
		pattern  string
		iters    int
		limit    int
	)
	flag.IntVar(&width, "w", 256, "surface width")
	flag.IntVar(&height, "h", 256, "surface height")
	flag.StringVar(&strategy, "strategy", "all", "strategy: single|leastsquares|boundingbox|cluster|dispatch|all")
	flag.StringVar(&pattern, "pattern", "gradient", "test pattern: gradient|noise")
	flag.IntVar(&iters, "iters", 20, "iterations")
	flag.IntVar(&limit, "search-limit", 992, "probe budget for the boundingbox strategy")
	flag.Parse()

	if width <= 0 || height <= 0 || iters <= 0 {
		fmt.Fprintln(os.Stderr, "invalid dimensions or iteration count")
		os.Exit(2)
	}

	blocks, err := makeBlocks(width, height, pattern)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	names := []string{"single", "leastsquares", "boundingbox", "cluster", "dispatch"}
	if strategy != "all" {
		names = []string{strategy}
	}
	for _, name := range names {
		fn, err := strategyFunc(name, limit)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		runOne(name, pattern, blocks, fn, iters)
	}
}

func strategyFunc(name string, limit int) (func(*dxt1.ColorBlock) (dxt1.BlockDXT1, float32), error) {
	cw := dxt1.DefaultColorWeights
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "single":
		return func(cb *dxt1.ColorBlock) (dxt1.BlockDXT1, float32) {
			return dxt1.CompressSingleColor(cb, cw)
		}, nil
	case "leastsquares":
		return func(cb *dxt1.ColorBlock) (dxt1.BlockDXT1, float32) {
			return dxt1.CompressLeastSquaresFit(cb, cw)
		}, nil
	case "boundingbox":
		return func(cb *dxt1.ColorBlock) (dxt1.BlockDXT1, float32) {
			return dxt1.CompressBoundingBoxExhaustive(cb, cw, limit)
		}, nil
	case "cluster":
		return func(cb *dxt1.ColorBlock) (dxt1.BlockDXT1, float32) {
			return dxt1.CompressClusterFit(cb, cw)
		}, nil
	case "dispatch":
		return func(cb *dxt1.ColorBlock) (dxt1.BlockDXT1, float32) {
			return dxt1.Compress(cb, cw, nil)
		}, nil
	default:
		return nil, fmt.Errorf("invalid -strategy %q (want single|leastsquares|boundingbox|cluster|dispatch|all)", name)
	}
}

func runOne(name, pattern string, blocks []dxt1.ColorBlock, fn func(*dxt1.ColorBlock) (dxt1.BlockDXT1, float32), iters int) {
	start := time.Now()
	var sumMSE float64
	for i := 0; i < iters; i++ {
		sumMSE = 0
		for b := range blocks {
			_, mse := fn(&blocks[b])
			sumMSE += float64(mse)
		}
	}
	dur := time.Since(start)

	total := float64(len(blocks)) * float64(iters)
	rmse := math.Sqrt(sumMSE / float64(len(blocks)))
	fmt.Printf("RESULT strategy=%s pattern=%s blocks=%d iters=%d seconds=%.6f blocks/s=%.0f rmse=%.4f\n",
		name, pattern, len(blocks), iters, dur.Seconds(), total/dur.Seconds(), rmse)
}

func makeBlocks(width, height int, pattern string) ([]dxt1.ColorBlock, error) {
	rgba := make([]byte, width*height*4)
	switch strings.ToLower(strings.TrimSpace(pattern)) {
	case "gradient":
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				off := (y*width + x) * 4
				rgba[off+0] = uint8(x * 255 / max(width-1, 1))
				rgba[off+1] = uint8(y * 255 / max(height-1, 1))
				rgba[off+2] = uint8((x + y) & 0xFF)
				rgba[off+3] = 255
			}
		}
	case "noise":
		state := uint32(0x9E3779B9)
		for i := 0; i < len(rgba); i += 4 {
			state ^= state << 13
			state ^= state >> 17
			state ^= state << 5
			rgba[i+0] = uint8(state)
			rgba[i+1] = uint8(state >> 8)
			rgba[i+2] = uint8(state >> 16)
			rgba[i+3] = 255
		}
	default:
		return nil, fmt.Errorf("invalid -pattern %q (want gradient|noise)", pattern)
	}

	blocksX := (width + 3) / 4
	blocksY := (height + 3) / 4
	blocks := make([]dxt1.ColorBlock, blocksX*blocksY)
	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			dxt1.ExtractBlock(rgba, width, height, bx, by, &blocks[by*blocksX+bx])
		}
	}
	return blocks, nil
}
