// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/transcript-extract/internal/scan"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List supported files in the source directory",
	Long: `Scan lists the files directly under the source directory whose
extension is supported, sorted by name. Subdirectories are not searched.`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	dir := viper.GetString("source_dir")
	paths, err := scan.Dir(dir)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, p := range paths {
		fmt.Fprintln(out, filepath.Base(p))
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%d supported file(s) in %s\n", len(paths), dir)
	return nil
}
