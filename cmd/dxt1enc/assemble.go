package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/texturetools/dxt1-encoder/dds"
)

func newAssembleCmd() *cobra.Command {
	var (
		outPath string
		cube    bool
		volume  bool
	)

	cmd := &cobra.Command{
		Use:   "assemble <face0.dds> [face1.dds ...]",
		Short: "Assemble 2D DXT1 DDS files into a cubemap or volume",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind dds.TextureKind
			switch {
			case cube == volume:
				return errors.New("specify exactly one of --cube or --volume")
			case cube:
				kind = dds.TextureCube
			case volume:
				kind = dds.Texture3D
			}

			inputs := make([][]byte, len(args))
			for i, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				inputs[i] = data
			}

			out, err := os.Create(outPath)
			if err != nil {
				return err
			}
			if err := dds.Assemble(out, kind, inputs); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
			fmt.Printf("%s: %s from %d input(s)\n", outPath, kind, len(args))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "out.dds", "output .dds path")
	cmd.Flags().BoolVar(&cube, "cube", false, "assemble a cubemap (exactly 6 faces, +X -X +Y -Y +Z -Z)")
	cmd.Flags().BoolVar(&volume, "volume", false, "assemble a volume texture, one input per depth slice")
	return cmd
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.dds>",
		Short: "Print the parsed DDS header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			h, payload, err := dds.ParseFile(data)
			if err != nil {
				return err
			}
			fmt.Println(h)
			fmt.Printf("payload: %d bytes\n", len(payload))
			return nil
		},
	}
}
