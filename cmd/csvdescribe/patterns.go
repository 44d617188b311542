package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Veraticus/csvdescribe/internal/cli"
	"github.com/Veraticus/csvdescribe/internal/describer"
	"github.com/spf13/cobra"
)

func patternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "patterns",
		Aliases: []string{"pattern"},
		Short:   "List the header patterns",
		Long: `List the built-in header patterns in matching order.

A header whose canonical form equals a trigger gets that description. Otherwise
the first trigger contained in the header wins, so earlier entries take
precedence over later ones. Triggers shorter than three characters only match
exactly.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			check, _ := cmd.Flags().GetBool("check")
			category, _ := cmd.Flags().GetString("category")
			patterns := describer.DefaultPatterns()

			if check {
				return checkPatterns(cmd, patterns)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "#\tTRIGGER\tCATEGORY\tDESCRIPTION")
			_, _ = fmt.Fprintln(w, "─\t───────\t────────\t───────────")

			for i, p := range patterns {
				if category != "" && string(p.Category) != category {
					continue
				}
				trigger := p.Trigger
				if len(trigger) < describer.MinSubstringTriggerLen {
					trigger += " (exact)"
				}
				_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, trigger, p.Category, p.Description)
			}

			return w.Flush()
		},
	}

	cmd.Flags().Bool("check", false, "Validate the table and report unreachable substring triggers")
	cmd.Flags().StringP("category", "c", "", "Filter by category")
	return cmd
}

func checkPatterns(cmd *cobra.Command, patterns []describer.Pattern) error {
	out := cmd.OutOrStdout()

	if err := describer.Validate(patterns); err != nil {
		_, _ = fmt.Fprintln(out, cli.FormatError("Pattern table is invalid"))
		return err
	}
	_, _ = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%d patterns, table version %s", len(patterns), describer.PatternTableVersion)))

	shadowed := describer.Shadowed(patterns)
	if len(shadowed) == 0 {
		return nil
	}

	_, _ = fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d triggers are reachable by exact match only:", len(shadowed))))
	for _, s := range shadowed {
		_, _ = fmt.Fprintf(out, "  %s (#%d) contains %s (#%d)\n",
			s.Pattern.Trigger, s.Index+1, s.ShadowBy.Trigger, s.ByIndex+1)
	}
	return nil
}
