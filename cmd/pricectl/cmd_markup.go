// cmd/pricectl/cmd_markup.go
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/phonemarket/backend/internal/database"
	"github.com/phonemarket/backend/internal/markup"
	"github.com/phonemarket/backend/internal/models"
	"github.com/phonemarket/backend/internal/repository"
)

var (
	rebaselineSource string
	rebaselineBefore string
	rebaselineDryRun bool
)

// pricectl rebaseline --source standard --before 2025-01-01 --dry-run
var rebaselineCmd = &cobra.Command{
	Use:   "rebaseline",
	Short: "Strip the standard markup from legacy stored prices",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := models.ParseSource(rebaselineSource)
		if err != nil {
			return err
		}

		before := time.Now()
		if rebaselineBefore != "" {
			if before, err = time.Parse(time.DateOnly, rebaselineBefore); err != nil {
				return fmt.Errorf("--before must be YYYY-MM-DD: %w", err)
			}
		}

		cfg, db, err := bootDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		policy, err := markup.NewPolicy(cfg.Markup)
		if err != nil {
			return err
		}

		report, err := markup.Rebaseline(cmd.Context(), repository.NewGormStore(db), policy, source, before, rebaselineDryRun)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, change := range report.Changes {
			fmt.Fprintf(out, "#%d %s: %d -> %d\n", change.ProductID, change.Name, change.OldPrice, change.NewPrice)
		}
		verb := "rewrote"
		if report.DryRun {
			verb = "would rewrite"
		}
		fmt.Fprintf(out, "scanned %d, %s %d\n", report.Scanned, verb, len(report.Changes))
		return nil
	},
}

func init() {
	rebaselineCmd.Flags().StringVarP(&rebaselineSource, "source", "s", string(models.SourceStandard), "catalog source")
	rebaselineCmd.Flags().StringVar(&rebaselineBefore, "before", "", "only records created before this date (YYYY-MM-DD)")
	rebaselineCmd.Flags().BoolVar(&rebaselineDryRun, "dry-run", false, "report without writing")
}
