// Package export writes assessment reports as Excel workbooks for
// compliance teams: one sheet each for scores, gaps, and recommendations.
package export

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/assessment"
)

// WriteWorkbook writes the report to path as an .xlsx workbook.
func WriteWorkbook(report *assessment.Report, path string) error {
	f := xlsx.NewFile()

	if err := addScoresSheet(f, report); err != nil {
		return err
	}
	if err := addGapsSheet(f, report); err != nil {
		return err
	}
	if err := addRecommendationsSheet(f, report); err != nil {
		return err
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save workbook %s", path)
	}
	return nil
}

func addScoresSheet(f *xlsx.File, report *assessment.Report) error {
	sheet, err := f.AddSheet("Scores")
	if err != nil {
		return eris.Wrap(err, "export: add scores sheet")
	}

	writeRow(sheet, "Organization", report.Profile.Name)
	writeRow(sheet, "Jurisdiction", report.Profile.Jurisdiction)
	writeRow(sheet, "Template", report.TemplateVersion)
	writeRow(sheet, "Generated", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	writeRow(sheet, "Overall score", fmt.Sprintf("%d", report.Scores.Overall))
	writeRow(sheet, "Completion", fmt.Sprintf("%.0f%%", report.Scores.Completion*100))
	sheet.AddRow()

	writeRow(sheet, "Pillar", "Score", "Weight", "Answered", "Total")
	for _, p := range report.Scores.Pillars {
		writeRow(sheet,
			string(p.Pillar),
			fmt.Sprintf("%d", p.Score),
			fmt.Sprintf("%d", p.Weight),
			fmt.Sprintf("%d", p.Answered),
			fmt.Sprintf("%d", p.Total),
		)
	}
	return nil
}

func addGapsSheet(f *xlsx.File, report *assessment.Report) error {
	sheet, err := f.AddSheet("Gaps")
	if err != nil {
		return eris.Wrap(err, "export: add gaps sheet")
	}

	writeRow(sheet, "Code", "Pillar", "Severity", "Reason", "Score", "Target", "Rationale", "Required action")
	for _, g := range report.Gaps {
		writeRow(sheet,
			g.QuestionCode,
			string(g.Pillar),
			string(g.Severity),
			string(g.Reason),
			fmt.Sprintf("%d", g.CurrentScore),
			fmt.Sprintf("%d", g.TargetScore),
			g.Rationale,
			g.RequiredAction,
		)
	}
	return nil
}

func addRecommendationsSheet(f *xlsx.File, report *assessment.Report) error {
	sheet, err := f.AddSheet("Recommendations")
	if err != nil {
		return eris.Wrap(err, "export: add recommendations sheet")
	}

	writeRow(sheet, "Priority", "Title", "Description", "Addresses")
	for _, rec := range report.Recommendations {
		writeRow(sheet,
			fmt.Sprintf("%d", rec.Priority),
			rec.Title,
			rec.Description,
			strings.Join(rec.Addresses, ", "),
		)
	}
	return nil
}

func writeRow(sheet *xlsx.Sheet, cells ...string) {
	row := sheet.AddRow()
	for _, c := range cells {
		cell := row.AddCell()
		cell.Value = c
	}
}
