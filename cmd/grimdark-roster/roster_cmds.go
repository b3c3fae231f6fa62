package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/MarshallMM/GrimDarkRoster/internal/parser"
)

func newImportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "import <roster.json>",
		Short: "Import a roster export and make it the current roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done, err := e.openService()
			if err != nil {
				return err
			}
			defer done()

			r, err := svc.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %q (%s): %d units, %d/%d pts\n",
				r.Meta.Name, r.Meta.Faction, len(r.Units), r.Meta.PointsUsed, r.Meta.PointsLimit)
			return nil
		},
	}
}

func newShowCmd(e *env) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done, err := e.openService()
			if err != nil {
				return err
			}
			defer done()

			r, err := svc.Current(cmd.Context())
			if err != nil {
				return err
			}
			return writeRoster(cmd.OutOrStdout(), r, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json or yaml")
	return cmd
}

func newClearCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the current roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done, err := e.openService()
			if err != nil {
				return err
			}
			defer done()
			return svc.Clear(cmd.Context())
		},
	}
}

func writeRoster(w io.Writer, r *parser.Roster, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		data, err := yaml.Marshal(r)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "text", "":
		printRoster(w, r)
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func printRoster(w io.Writer, r *parser.Roster) {
	fmt.Fprintf(w, "%s | %s | %d/%d pts\n", r.Meta.Name, r.Meta.Faction, r.Meta.PointsUsed, r.Meta.PointsLimit)
	if r.Detachment != nil {
		fmt.Fprintf(w, "Detachment: %s\n", r.Detachment.Name)
	}
	for _, ar := range r.ArmyRules {
		fmt.Fprintf(w, "Army rule: %s\n", ar.Name)
	}
	for _, g := range parser.GroupByCategory(r.Units) {
		fmt.Fprintf(w, "\n== %s ==\n", g.Category)
		for _, u := range g.Units {
			warlord := ""
			if u.IsWarlord {
				warlord = " [Warlord]"
			}
			fmt.Fprintf(w, "%s (%d pts)%s\n", u.Name, u.Points, warlord)
			for _, m := range u.Models {
				fmt.Fprintf(w, "  %dx %s\n", m.Count, m.Name)
				for _, wpn := range m.Weapons {
					fmt.Fprintf(w, "    %dx %s\n", wpn.Count, wpn.Name)
				}
				for _, wg := range m.Wargear {
					fmt.Fprintf(w, "    %dx %s\n", wg.Count, wg.Name)
				}
				for _, en := range m.Enhancements {
					fmt.Fprintf(w, "    Enhancement: %s (+%d pts)\n", en.Name, en.Points)
				}
			}
		}
	}
}
