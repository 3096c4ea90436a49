package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "imagestudio",
		Short:         "Batch image transformation tool",
		Long:          "imagestudio applies geometric, color, filter, and transparency\ntransformations to raster images (PNG, JPEG, BMP, GIF, TIFF, WebP, ICO),\nwith identical results to the interactive editor.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
	}

	root.AddCommand(newProcessCmd())
	root.AddCommand(newBatchCmd())
	root.AddCommand(newInfoCmd())
	return root
}
