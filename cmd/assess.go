package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/assessment"
	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/model"
)

var (
	assessInput  string
	assessOutput string
	assessSave   bool

	batchDir    string
	batchOutDir string
)

// assessInputDoc is the on-disk shape of an assessment input file.
type assessInputDoc struct {
	Profile model.OrgProfile                `json:"profile" yaml:"profile"`
	Answers map[string]model.QuestionAnswer `json:"answers" yaml:"answers"`
}

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Run a compliance assessment from an answers file",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := initEngine()
		if err != nil {
			return err
		}

		report, err := runAssessFile(engine, assessInput)
		if err != nil {
			return err
		}

		if assessSave {
			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			if err := st.SaveAssessment(cmd.Context(), report); err != nil {
				return err
			}
			zap.L().Info("assessment saved", zap.String("id", report.ID))
		}

		return writeReport(report, assessOutput)
	},
}

var assessBatchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Assess every answers file in a directory concurrently",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := initEngine()
		if err != nil {
			return err
		}

		entries, err := os.ReadDir(batchDir)
		if err != nil {
			return eris.Wrapf(err, "read batch dir %s", batchDir)
		}

		if batchOutDir != "" {
			if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
				return eris.Wrapf(err, "create output dir %s", batchOutDir)
			}
		}

		g, _ := errgroup.WithContext(cmd.Context())
		g.SetLimit(cfg.Assess.BatchConcurrency)

		processed := 0
		for _, entry := range entries {
			if entry.IsDir() || !isAnswerFile(entry.Name()) {
				continue
			}
			processed++
			entry := entry
			path := filepath.Join(batchDir, entry.Name())

			g.Go(func() error {
				report, err := runAssessFile(engine, path)
				if err != nil {
					return err
				}

				out := ""
				if batchOutDir != "" {
					base := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
					out = filepath.Join(batchOutDir, base+".report.json")
				}
				return writeReport(report, out)
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}
		zap.L().Info("batch assessment complete", zap.Int("organizations", processed))
		return nil
	},
}

// runAssessFile loads one input file and runs the full pipeline.
func runAssessFile(engine *assessment.Engine, path string) (*assessment.Report, error) {
	doc, err := loadAssessInput(path)
	if err != nil {
		return nil, err
	}

	answers := model.AnswerSet{}
	for id, a := range doc.Answers {
		a.QuestionID = id
		answers[id] = a
	}

	report, err := engine.Run(&doc.Profile, answers)
	if err != nil {
		return nil, err
	}

	zap.L().Info("assessment complete",
		zap.String("org", doc.Profile.Name),
		zap.Int("overall", report.Scores.Overall),
		zap.Int("gaps", len(report.Gaps)),
		zap.Int("recommendations", len(report.Recommendations)),
	)
	return report, nil
}

func loadAssessInput(path string) (*assessInputDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read answers file %s", path)
	}

	var doc assessInputDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(err, "parse answers file %s", path)
	}
	if doc.Profile.Jurisdiction == "" || doc.Profile.ListingStatus == "" {
		return nil, eris.Errorf("%s: profile.jurisdiction and profile.listing_status are required", path)
	}
	return &doc, nil
}

// writeReport writes the report as indented JSON to path, or stdout when
// path is empty.
func writeReport(report *assessment.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return eris.Wrap(err, "marshal report")
	}
	data = append(data, '\n')

	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return eris.Wrapf(os.WriteFile(path, data, 0o644), "write report %s", path)
}

func isAnswerFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

func init() {
	assessCmd.Flags().StringVarP(&assessInput, "input", "i", "", "answers file (yaml or json)")
	assessCmd.Flags().StringVarP(&assessOutput, "output", "o", "", "report output path (default stdout)")
	assessCmd.Flags().BoolVar(&assessSave, "save", false, "persist the assessment to the store")
	_ = assessCmd.MarkFlagRequired("input")

	assessBatchCmd.Flags().StringVar(&batchDir, "dir", "", "directory of answers files")
	assessBatchCmd.Flags().StringVar(&batchOutDir, "out-dir", "", "directory for report files (default stdout)")
	_ = assessBatchCmd.MarkFlagRequired("dir")

	assessCmd.AddCommand(assessBatchCmd)
	rootCmd.AddCommand(assessCmd)
}
