// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the transcript-extract CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/transcript-extract/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the transcript-extract CLI.
var rootCmd = &cobra.Command{
	Use:   "transcript-extract",
	Short: "Extract transcript text from docx, txt, pdf, srt, and vtt files",
	Long: `transcript-extract pulls plain text out of transcript documents and
writes it as grouped JSON together with per-file character counts.

Files are grouped by a YAML groups file (see "groups init"). Without one,
every supported file in the source directory forms a single group. Run
"run" to extract, "scan" to preview which files would be picked up, and
"formats" to list supported extensions.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./transcript-extract.yaml or ~/.config/transcript-extract/transcript-extract.yaml)")
	rootCmd.PersistentFlags().String("source-dir", types.DefaultSourceDir, "directory holding transcript files")
	rootCmd.PersistentFlags().String("output-dir", types.DefaultOutputDir, "directory for the JSON output and run log")

	bindFlags(rootCmd.PersistentFlags(), map[string]string{
		"source-dir": "source_dir",
		"output-dir": "output_dir",
	})
}

// bindFlags binds each named flag in fs to its viper key so that flags
// override env and config file values.
func bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for flag, key := range keys {
		if err := viper.BindPFlag(key, fs.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}
}

func initConfig() {
	// A missing .env is not an error.
	_ = godotenv.Load()

	def := types.DefaultExtractConfig()
	viper.SetDefault("source_dir", def.SourceDir)
	viper.SetDefault("output_dir", def.OutputDir)
	viper.SetDefault("output_file", def.OutputFile)
	viper.SetDefault("workers", def.Workers)
	viper.SetDefault("pdf_backend", string(def.PDFBackend))
	viper.SetDefault("log_level", def.LogLevel)
	viper.SetDefault("fail_on_error", def.FailOnError)
	viper.SetDefault("groups_file", "")

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("transcript-extract")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "transcript-extract"))
		}
	}

	viper.SetEnvPrefix("TRANSCRIPT_EXTRACT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig reads the effective configuration from flags, env, and the
// config file.
func loadConfig() (types.ExtractConfig, error) {
	var cfg types.ExtractConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
