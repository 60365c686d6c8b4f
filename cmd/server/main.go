package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"showcase/internal/config"
)

var version = "dev"

var variant string

var rootCmd = &cobra.Command{
	Use:   "showcase",
	Short: "Server-rendered image gallery and video-game catalogue",
	Long: `showcase serves one of two small account-based web apps:

  gallery    random image explorer with saved images per user
  catalogue  video-game catalogue with per-user game profiles

The variant comes from app.variant in the config file, APP_VARIANT, or --variant.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&variant, "variant", "", "app variant to run: gallery or catalogue")
}

// loadConfig reads the config and applies the --variant flag on top of it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if variant != "" {
		cfg.App.Variant = variant
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
