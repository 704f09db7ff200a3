package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/texturetools/dxt1-encoder/dds"
	"github.com/texturetools/dxt1-encoder/dxt1"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

func newCompressCmd() *cobra.Command {
	var (
		outPath     string
		quality     string
		searchLimit int
		mips        bool
		linear      bool
		weightsSpec string
		jobs        int
	)

	cmd := &cobra.Command{
		Use:   "compress <image>",
		Short: "Compress an image into a DXT1 DDS file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inPath := args[0]
			if outPath == "" {
				outPath = strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".dds"
			}

			opts, err := qualityOptions(quality)
			if err != nil {
				return err
			}
			colorWeights, err := parseWeights(weightsSpec)
			if err != nil {
				return err
			}
			if jobs <= 0 {
				jobs = runtime.NumCPU()
			}

			f, err := os.Open(inPath)
			if err != nil {
				return err
			}
			img, _, err := image.Decode(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("decode %s: %w", inPath, err)
			}

			levels := buildMipChain(img, mips, linear)
			totalBlocks := 0
			for _, level := range levels {
				b := level.Bounds()
				totalBlocks += dxt1.BlockCount(b.Dx(), b.Dy())
			}
			bar := progressbar.Default(int64(totalBlocks), "compressing")

			var payload []byte
			for _, level := range levels {
				rgba := dds.ToRGBA(level)
				b := rgba.Bounds()
				data, err := compressParallel(rgba.Pix, b.Dx(), b.Dy(), colorWeights, opts, searchLimit, jobs, bar)
				if err != nil {
					return err
				}
				payload = append(payload, data...)
			}

			b := img.Bounds()
			h := dds.Header{
				Width:       uint32(b.Dx()),
				Height:      uint32(b.Dy()),
				Depth:       1,
				MipMapCount: uint32(len(levels)),
				Kind:        dds.Texture2D,
			}
			out, err := os.Create(outPath)
			if err != nil {
				return err
			}
			if err := dds.WriteTexture(out, h, payload); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
			fmt.Printf("%s: %s, %d bytes\n", outPath, h, len(payload))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output .dds path (default: input with .dds extension)")
	cmd.Flags().StringVar(&quality, "quality", "production", "quality preset: fast|production")
	cmd.Flags().IntVar(&searchLimit, "search-limit", 0, "use the endpoint probe search with this probe budget instead of the default strategies")
	cmd.Flags().BoolVar(&mips, "mips", false, "generate a full mip chain")
	cmd.Flags().BoolVar(&linear, "linear", false, "downscale mips in linear light instead of storage space")
	cmd.Flags().StringVar(&weightsSpec, "weights", "1,1,1", "per-channel error weights r,g,b")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "parallel workers (default: number of CPUs)")
	return cmd
}

func qualityOptions(quality string) (*dxt1.Options, error) {
	switch quality {
	case "fast":
		// Accept the cheap single-color path whenever it is nearly exact.
		return &dxt1.Options{ErrorThreshold: dxt1.DefaultErrorThreshold}, nil
	case "production":
		// Always run the full cluster search.
		return &dxt1.Options{ErrorThreshold: -1}, nil
	}
	return nil, fmt.Errorf("unknown quality %q, want fast or production", quality)
}

func parseWeights(s string) (dxt1.Vector3, error) {
	var w dxt1.Vector3
	if n, err := fmt.Sscanf(s, "%g,%g,%g", &w.X, &w.Y, &w.Z); n != 3 || err != nil {
		return dxt1.Vector3{}, fmt.Errorf("invalid --weights %q, want r,g,b", s)
	}
	if w.X <= 0 || w.Y <= 0 || w.Z <= 0 {
		return dxt1.Vector3{}, fmt.Errorf("invalid --weights %q, channels must be positive", s)
	}
	return w, nil
}

// buildMipChain returns the surface chain to compress, starting with img
// itself. With linear set, downscaling happens in linear light so that
// averaged texels keep their perceived brightness.
func buildMipChain(img image.Image, mips, linear bool) []image.Image {
	if !mips {
		return []image.Image{img}
	}

	work := img
	if linear {
		work = srgbToLinear(img)
	}

	levels := []image.Image{img}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	for w > 1 || h > 1 {
		w = max(1, w/2)
		h = max(1, h/2)
		work = imaging.Resize(work, w, h, imaging.Lanczos)
		level := work
		if linear {
			level = linearToSRGB(work)
		}
		levels = append(levels, level)
	}
	return levels
}

func srgbToLinear(img image.Image) image.Image {
	return mapColors(img, func(c colorful.Color) colorful.Color {
		r, g, b := c.LinearRgb()
		return colorful.Color{R: r, G: g, B: b}
	})
}

func linearToSRGB(img image.Image) image.Image {
	return mapColors(img, func(c colorful.Color) colorful.Color {
		return colorful.LinearRgb(c.R, c.G, c.B).Clamped()
	})
}

func mapColors(img image.Image, fn func(colorful.Color) colorful.Color) image.Image {
	src := dds.ToRGBA(img)
	b := src.Bounds()
	dst := image.NewRGBA(b)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			i := y*src.Stride + x*4
			c := fn(colorful.Color{
				R: float64(src.Pix[i+0]) / 255,
				G: float64(src.Pix[i+1]) / 255,
				B: float64(src.Pix[i+2]) / 255,
			})
			r8, g8, b8 := c.RGB255()
			dst.Pix[i+0] = r8
			dst.Pix[i+1] = g8
			dst.Pix[i+2] = b8
			dst.Pix[i+3] = src.Pix[i+3]
		}
	}
	return dst
}

// compressParallel compresses one surface, splitting work by block row.
func compressParallel(rgba []byte, width, height int, colorWeights dxt1.Vector3, opts *dxt1.Options, searchLimit, jobs int, bar *progressbar.ProgressBar) ([]byte, error) {
	blocksX := (width + 3) / 4
	blocksY := (height + 3) / 4
	payload := make([]byte, blocksX*blocksY*dxt1.BlockBytes)

	var g errgroup.Group
	g.SetLimit(jobs)
	for by := 0; by < blocksY; by++ {
		by := by
		g.Go(func() error {
			var cb dxt1.ColorBlock
			for bx := 0; bx < blocksX; bx++ {
				dxt1.ExtractBlock(rgba, width, height, bx, by, &cb)

				var blk dxt1.BlockDXT1
				if searchLimit > 0 {
					blk, _ = dxt1.CompressBoundingBoxExhaustive(&cb, colorWeights, searchLimit)
				} else {
					blk, _ = dxt1.Compress(&cb, colorWeights, opts)
				}

				raw := blk.Marshal()
				copy(payload[(by*blocksX+bx)*dxt1.BlockBytes:], raw[:])
				if bar != nil {
					bar.Add(1)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return payload, nil
}
