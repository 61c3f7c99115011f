package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/model"
)

var (
	tplJurisdiction  string
	tplListingStatus string
	tplLocale        string
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Build and print the questionnaire template for a profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := initEngine()
		if err != nil {
			return err
		}

		profile := model.OrgProfile{
			Jurisdiction:  tplJurisdiction,
			ListingStatus: tplListingStatus,
		}
		t := engine.BuildTemplate(&profile)
		if t.QuestionCount() == 0 {
			return eris.Errorf("no applicable questions for jurisdiction %q, listing status %q",
				tplJurisdiction, tplListingStatus)
		}

		// Apply the requested locale to prompts before printing.
		if tplLocale != "" {
			for si := range t.Sections {
				for qi := range t.Sections[si].Questions {
					q := &t.Sections[si].Questions[qi]
					q.Prompt = q.PromptIn(tplLocale)
				}
			}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	},
}

func init() {
	templateCmd.Flags().StringVarP(&tplJurisdiction, "jurisdiction", "j", "", "jurisdiction code")
	templateCmd.Flags().StringVarP(&tplListingStatus, "listing-status", "l", "", "listing status code")
	templateCmd.Flags().StringVar(&tplLocale, "locale", "", "prompt locale (BCP-47)")
	_ = templateCmd.MarkFlagRequired("jurisdiction")
	_ = templateCmd.MarkFlagRequired("listing-status")

	rootCmd.AddCommand(templateCmd)
}
