// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/transcript-extract/internal/extract"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported file extensions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, ext := range extract.SupportedExtensions() {
			fmt.Fprintln(cmd.OutOrStdout(), ext)
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
