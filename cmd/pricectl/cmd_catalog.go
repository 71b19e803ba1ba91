// cmd/pricectl/cmd_catalog.go
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phonemarket/backend/internal/catalog"
	"github.com/phonemarket/backend/internal/database"
	"github.com/phonemarket/backend/internal/models"
	"github.com/phonemarket/backend/internal/repository"
)

// pricectl classify iPhone 17 Pro 256GB Silver
var classifyCmd = &cobra.Command{
	Use:   "classify <name...>",
	Short: "Show how a product name is categorised",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		category := catalog.Classify(name)
		memory, _ := catalog.ExtractMemory(name)
		color, _ := catalog.ExtractColor(name)
		country, _ := catalog.ExtractCountryFlag(name)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "category: %s\n", category)
		fmt.Fprintf(out, "parent:   %s\n", catalog.Parent(category))
		fmt.Fprintf(out, "memory:   %s\n", memory)
		fmt.Fprintf(out, "color:    %s\n", color)
		fmt.Fprintf(out, "country:  %s\n", country)
		return nil
	},
}

var treeSource string

// pricectl tree --source preorder
var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the category tree of a catalog source",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := models.ParseSource(treeSource)
		if err != nil {
			return err
		}

		_, db, err := bootDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		categories, err := repository.NewGormStore(db).ListDistinctCategories(cmd.Context(), source)
		if err != nil {
			return err
		}

		tree := catalog.BuildTree(categories)
		out := cmd.OutOrStdout()
		if len(tree.Parents) == 0 {
			fmt.Fprintf(out, "%s: empty\n", source)
			return nil
		}
		for _, parent := range tree.Parents {
			fmt.Fprintln(out, parent)
			for _, leaf := range tree.Children[parent] {
				fmt.Fprintf(out, "  %s\n", leaf)
			}
		}
		return nil
	},
}

func init() {
	treeCmd.Flags().StringVarP(&treeSource, "source", "s", string(models.SourceStandard), "catalog source")
}
