package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/Veraticus/csvdescribe/internal/cli"
	"github.com/Veraticus/csvdescribe/internal/common"
	"github.com/Veraticus/csvdescribe/internal/describer"
	"github.com/Veraticus/csvdescribe/internal/report"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous runs",
		Long:  `List the runs recorded by "describe", most recent first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			limit, _ := cmd.Flags().GetInt("limit")

			settings, err := loadSettings()
			if err != nil {
				return err
			}
			store, cleanup, err := openHistory(ctx, settings)
			if err != nil {
				return err
			}
			defer cleanup()

			runs, err := store.ListRuns(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			if len(runs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No runs recorded yet."))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tANALYZED\tSOURCE\tHEADERS\tFALLBACKS\tTABLE")
			_, _ = fmt.Fprintln(w, "──\t────────\t──────\t───────\t─────────\t─────")
			for _, run := range runs {
				table := run.TableVersion
				if table != describer.PatternTableVersion {
					table += " (old)"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
					shortID(run.ID),
					run.AnalyzedAt.Local().Format("2006-01-02 15:04"),
					run.Source,
					run.HeaderCount,
					run.Fallbacks,
					table)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntP("limit", "n", 20, "Number of runs to show (0 for all)")

	cmd.AddCommand(historyShowCmd())
	cmd.AddCommand(historyClearCmd())

	return cmd
}

func historyShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the results of a previous run",
		Long:  `Show the results of a recorded run. A unique prefix of the run id is enough.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			name, _ := cmd.Flags().GetString("format")
			format, err := report.ParseFormat(name)
			if err != nil {
				return err
			}

			settings, err := loadSettings()
			if err != nil {
				return err
			}
			store, cleanup, err := openHistory(ctx, settings)
			if err != nil {
				return err
			}
			defer cleanup()

			run, err := store.GetRun(ctx, args[0])
			if errors.Is(err, common.ErrNotFound) {
				return common.NewUserError(fmt.Sprintf("run '%s' not found", args[0]), err)
			}
			if err != nil {
				return err
			}

			writer, err := report.NewWriter(format, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return writer.Write(ctx, report.Report{Source: run.Source, Results: run.Results})
		},
	}

	cmd.Flags().StringP("format", "f", "table", "Output format (table, text, json, yaml)")
	return cmd
}

func historyClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			force, _ := cmd.Flags().GetBool("force")

			if !force {
				ok, err := cli.Confirm(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), "This will delete every recorded run. Continue?")
				if err != nil {
					return err
				}
				if !ok {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			settings, err := loadSettings()
			if err != nil {
				return err
			}
			store, cleanup, err := openHistory(ctx, settings)
			if err != nil {
				return err
			}
			defer cleanup()

			n, err := store.ClearRuns(ctx)
			if err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted %d runs", n)))
			return nil
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
