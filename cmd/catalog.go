package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the question catalog",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate catalog integrity and report findings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.LoadCatalog(cfg.Catalog.Path)
		if err != nil {
			return err
		}

		findings := cat.Validate()
		if len(findings) == 0 {
			fmt.Printf("catalog %s: %d questions, no findings\n", cat.Version, len(cat.Questions))
			return nil
		}

		for _, f := range findings {
			fmt.Println(f.String())
		}
		return eris.Errorf("catalog %s: %d findings", cat.Version, len(findings))
	},
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
	rootCmd.AddCommand(catalogCmd)
}
