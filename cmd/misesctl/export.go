package main

import (
	"fmt"

	export "Mises/internal/calc/export"
	mises "Mises/internal/calc/mises"
	report "Mises/internal/calc/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportDir     string
	exportSigmaY  float64
	exportProject string
	exportAuthor  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write figure.json, snapshot.svg, mesh.xlsx, report.pdf and section.png",
	Example: `  misesctl export --sigma-y 35 --out ./out`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sigmaY := cfg.Slider.Default
		if cmd.Flags().Changed("sigma-y") {
			v, err := cfg.Slider.Snap(exportSigmaY)
			if err != nil {
				return err
			}
			sigmaY = v
		}
		in := mises.Input{SigmaY: sigmaY, ZRange: cfg.ZRange, Resolution: cfg.Resolution}
		logger.Info("Exporting", zap.Float64("sigma_y", sigmaY), zap.String("dir", exportDir))

		paths, err := export.WriteBundle(cmd.Context(), exportDir, in, report.Input{Project: exportProject, Author: exportAuthor})
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", "out", "output directory")
	exportCmd.Flags().Float64Var(&exportSigmaY, "sigma-y", 0, "yield stress (default from slider)")
	exportCmd.Flags().StringVar(&exportProject, "project", "", "project name for the report")
	exportCmd.Flags().StringVar(&exportAuthor, "author", "", "author for the report")
}
