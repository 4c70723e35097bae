// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/transcript-extract/internal/groups"
	"github.com/pdiddy/transcript-extract/internal/scan"
)

const defaultGroupsFile = "groups.yaml"

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Manage the groups file",
}

var groupsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a groups file from the source directory",
	Long: `Init scans the source directory and writes a groups file with a single
group holding every supported file. Edit the file to split it into
labelled groups and reorder files, then pass it to "run --groups-file".`,
	Args: cobra.NoArgs,
	RunE: runGroupsInit,
}

var groupsCheckCmd = &cobra.Command{
	Use:   "check [groups-file]",
	Short: "Validate a groups file and report files missing from the source directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGroupsCheck,
}

func init() {
	groupsInitCmd.Flags().String("output", defaultGroupsFile, "path of the groups file to write")
	groupsInitCmd.Flags().String("label", "", "label of the generated group (default: source directory name)")
	groupsInitCmd.Flags().Bool("force", false, "overwrite an existing file")

	groupsCmd.AddCommand(groupsInitCmd)
	groupsCmd.AddCommand(groupsCheckCmd)
	rootCmd.AddCommand(groupsCmd)
}

func runGroupsInit(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	label, _ := cmd.Flags().GetString("label")
	force, _ := cmd.Flags().GetBool("force")

	if !force {
		if _, err := os.Stat(output); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", output)
		}
	}

	dir := viper.GetString("source_dir")
	paths, err := scan.Dir(dir)
	if err != nil {
		return err
	}
	if label == "" {
		label = defaultLabel(dir)
	}

	if err := groups.Write(output, groups.FromPaths(label, paths)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d file(s) in group %q\n", output, len(paths), label)
	return nil
}

func runGroupsCheck(cmd *cobra.Command, args []string) error {
	path := viper.GetString("groups_file")
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		path = defaultGroupsFile
	}

	cfg, err := groups.Load(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	missing := 0
	for _, t := range cfg.Tasks(viper.GetString("source_dir")) {
		if _, err := os.Stat(t.Path); err != nil {
			missing++
			fmt.Fprintf(out, "missing: %s / %s\n", t.Group, t.Filename)
		}
	}
	fmt.Fprintf(out, "%d group(s), %d file(s) missing\n", len(cfg.Groups), missing)
	return nil
}

// defaultLabel names the scan-based group after the source directory.
func defaultLabel(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return filepath.Base(dir)
	}
	return filepath.Base(abs)
}
