// cmd/pricectl/cmd_import.go
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phonemarket/backend/internal/database"
	"github.com/phonemarket/backend/internal/models"
	"github.com/phonemarket/backend/internal/pricelist"
	"github.com/phonemarket/backend/internal/repository"
)

var (
	importFile   string
	importSource string
)

// pricectl import --file prices.xlsx --source standard
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace a catalog source with the contents of a price list",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := models.ParseSource(importSource)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(importFile)
		if err != nil {
			return err
		}

		cfg, db, err := bootDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		table, err := pricelist.Open(filepath.Base(importFile), data, cfg.Upload.CSVCharset)
		if err != nil {
			return err
		}

		result, err := pricelist.NewLoader(repository.NewGormStore(db)).Load(cmd.Context(), source, table)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: loaded %d, skipped %d, replaced %d (%s layout)\n",
			result.Source, result.Loaded, result.Skipped, result.Deleted, result.Format)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "price list (.xlsx or .csv)")
	importCmd.Flags().StringVarP(&importSource, "source", "s", string(models.SourceStandard), "catalog source")
	_ = importCmd.MarkFlagRequired("file")
}
