// cmd/pricectl/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/phonemarket/backend/internal/config"
	"github.com/phonemarket/backend/internal/database"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "pricectl",
	Short:         "Operate the phonemarket catalog from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(rebaselineCmd)
}

// bootDB loads config and opens a migrated database connection.
func bootDB() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logrus.SetLevel(logrus.WarnLevel)
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := database.RunMigrations(db); err != nil {
		database.Close(db)
		return nil, nil, err
	}
	return cfg, db, nil
}
