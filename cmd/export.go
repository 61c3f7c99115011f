package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/export"
)

var (
	exportInput string
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run an assessment and write an Excel workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := initEngine()
		if err != nil {
			return err
		}

		report, err := runAssessFile(engine, exportInput)
		if err != nil {
			return err
		}

		if err := export.WriteWorkbook(report, exportOut); err != nil {
			return err
		}
		zap.L().Info("workbook written",
			zap.String("path", exportOut),
			zap.Int("gaps", len(report.Gaps)),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "input", "i", "", "answers file (yaml or json)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "assessment.xlsx", "workbook output path")
	_ = exportCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(exportCmd)
}
