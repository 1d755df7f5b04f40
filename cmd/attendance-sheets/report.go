package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/username/attendance-sheets/internal/attendance"
	"github.com/username/attendance-sheets/internal/report"
	"go.uber.org/zap"
)

func reportCmd() *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "report <file.xlsx>",
		Short: "Export the last run to an XLSX workbook",
		Long:  "Read the run manifest left in the output directory by the last generation run and export it as an XLSX workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if manifestPath == "" {
				manifestPath = filepath.Join(cfg.OutputDir, attendance.ManifestFile)
			}

			result, err := attendance.LoadManifest(manifestPath)
			if err != nil {
				return err
			}

			if err := report.WriteRunReport(args[0], result); err != nil {
				return err
			}

			logger.Info("Run report exported",
				zap.String("manifest", manifestPath),
				zap.String("report", args[0]))
			outPrintf("📊 Report for %s %d written to %s\n", result.MonthName, result.Year, args[0])

			return nil
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Run manifest to export (default: <output_dir>/run-manifest.json)")

	return cmd
}
