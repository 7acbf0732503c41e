/*
Copyright © 2025 Your Name

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package handlers

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"interlink/internal/catalog"
	"interlink/internal/config"
	"interlink/internal/linker"
	"interlink/internal/logger"
)

var (
	cfgFile      string
	productPath  string
	learningPath string
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "interlink",
		Short: "Interlink suggests and places internal links in Markdown content.",
		Long: `Interlink indexes a catalog of product and learning pages, scores them
against a piece of content, and links the best matches into the prose.

Catalog sources default to data/sitemap.csv and data/learning_topics.txt and
can be changed in .interlink.yaml or with --products and --learning.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.interlink.yaml)")
	rootCmd.PersistentFlags().StringVar(&productPath, "products", "", "product sitemap CSV (overrides catalog.product_source)")
	rootCmd.PersistentFlags().StringVar(&learningPath, "learning", "", "learning topics list (overrides catalog.learning_source)")

	rootCmd.AddCommand(NewStatsCmd())
	rootCmd.AddCommand(NewSuggestCmd())
	rootCmd.AddCommand(NewPlaceCmd())
	rootCmd.AddCommand(NewValidateCmd())
	rootCmd.AddCommand(NewLinkCmd())
	rootCmd.AddCommand(NewReviewCmd())
	rootCmd.AddCommand(NewRenderCmd())
	rootCmd.AddCommand(NewFetchCmd())
	rootCmd.AddCommand(NewServeCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set, then configures
// the logger from the result.
func initConfig(stderr io.Writer) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.InitWithOptions(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	if cfg.App.ConfigFile != "" {
		fmt.Fprintf(stderr, "Using config file: %s\n", cfg.App.ConfigFile)
	}
	return nil
}

// newLinker loads the catalog named by the configuration and flags.
func newLinker(opts linker.Options) *linker.Linker {
	cfg := config.Get()

	product := cfg.Catalog.ProductSource
	if productPath != "" {
		product = productPath
	}
	learning := cfg.Catalog.LearningSource
	if learningPath != "" {
		learning = learningPath
	}

	c := catalog.Load(product, learning, catalog.Options{
		HostPrefix:      cfg.Catalog.HostPrefix,
		SitemapFallback: cfg.Catalog.SitemapFallback,
		CuratedSource:   cfg.Catalog.CuratedSource,
	})
	return linker.New(c, opts)
}

// linkerOptions returns the configured linking options.
func linkerOptions() linker.Options {
	return linker.OptionsFromConfig(config.GetLinking())
}

// readInput reads a file, or stdin when path is empty or "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// writeOutput writes content to path, or to stdout when path is empty.
func writeOutput(cmd *cobra.Command, path, content string) error {
	if path == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}
