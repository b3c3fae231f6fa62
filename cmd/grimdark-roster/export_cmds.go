package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MarshallMM/GrimDarkRoster/internal/export"
	"github.com/MarshallMM/GrimDarkRoster/internal/reference"
)

func newExportCmd(e *env) *cobra.Command {
	var xlsxPath, yamlDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current roster as a spreadsheet and/or unit library files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if xlsxPath == "" && yamlDir == "" {
				return errors.New("export: set --xlsx and/or --yaml-dir")
			}
			svc, done, err := e.openService()
			if err != nil {
				return err
			}
			defer done()

			r, err := svc.Current(cmd.Context())
			if err != nil {
				return err
			}
			if xlsxPath != "" {
				if err := export.WriteXLSX(r, xlsxPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", xlsxPath)
			}
			if yamlDir != "" {
				files, err := export.WriteLibrary(r, yamlDir)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d unit files to %s\n", len(files), yamlDir)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Spreadsheet output path")
	cmd.Flags().StringVar(&yamlDir, "yaml-dir", "", "Directory for per-unit YAML files")
	return cmd
}

func newBuildReferenceCmd(e *env) *cobra.Command {
	var catalogues, out string

	cmd := &cobra.Command{
		Use:   "build-reference",
		Short: "Build reference tables from BattleScribe catalogue files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := reference.FindCatalogueFiles(catalogues)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no .cat files under %s", catalogues)
			}
			l, err := reference.FromCatalogues(paths)
			if err != nil {
				return err
			}
			if err := reference.WriteDir(out, l); err != nil {
				return err
			}
			e.log.Info("reference tables written",
				zap.Int("catalogues", len(paths)),
				zap.Int("records", l.Len()),
				zap.String("dir", out),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records from %d catalogues to %s\n", l.Len(), len(paths), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&catalogues, "catalogues", "", "Directory holding .cat files (required)")
	cmd.Flags().StringVar(&out, "out", "", "Output directory for the YAML tables (required)")
	_ = cmd.MarkFlagRequired("catalogues")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
