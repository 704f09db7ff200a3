// Command dxt1enc compresses images into DXT1 DDS textures and
// assembles cubemaps and volumes from compressed slices.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "dxt1enc",
		Short:         "DXT1 texture compressor",
		Long:          "dxt1enc compresses PNG/JPEG/BMP/TIFF images into DXT1 (BC1) DDS textures,\nassembles cubemaps and volumes, and inspects DDS headers.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCompressCmd(), newAssembleCmd(), newInfoCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dxt1enc:", err)
		os.Exit(1)
	}
}
