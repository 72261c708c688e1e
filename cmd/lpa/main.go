// Copyright Younes Elhjouji, 2026. All rights reserved.

// Package main is the entry point for the lpa CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the lpa CLI.
var rootCmd = &cobra.Command{
	Use:   "lpa",
	Short: "Build and analyze period corpora of Arabic texts",
	Long: `lpa (language period analysis) builds corpora of Arabic texts grouped by
period and measures how usage differs between them. The pipeline acquires
Shamela book exports, converts legacy encodings to UTF-8, extracts text and
metadata from book HTML, assembles a pre-1214 AH corpus, and runs n-gram
frequency analysis over it.

Each pipeline stage is a subcommand: acquire, convert, extract, report,
corpus, ngrams, and index.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./lpa.yaml or ~/.config/lpa/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lpa")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lpa"))
		}
	}

	viper.SetEnvPrefix("LPA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
