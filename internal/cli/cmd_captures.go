package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"reprise/internal/capstore"
)

func newCapturesCmd(opts *Options) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "captures",
		Short: "Manage stored capture records",
	}

	cmd.PersistentFlags().StringVar(&dir, "dir", capstore.ResolveDir(os.Environ()), "capture store directory")

	cmd.AddCommand(
		newCapturesListCmd(&dir),
		newCapturesShowCmd(&dir),
		newCapturesRenderCmd(opts, &dir),
		newCapturesVerifyCmd(&dir),
		newCapturesRmCmd(&dir),
		newCapturesPruneCmd(opts, &dir),
	)

	return cmd
}

func newCapturesListCmd(dir *string) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored captures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := capstore.NewStore(*dir)
			summaries, err := store.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				data, err := json.MarshalIndent(summaries, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			if len(summaries) == 0 {
				fmt.Fprintln(out, "no captures stored")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTIME\tERROR")
			for _, s := range summaries {
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Time.Format(time.RFC3339), s.Error)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	return cmd
}

func newCapturesShowCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a stored capture record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := capstore.NewStore(*dir)
			rec, err := store.Load(args[0])
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(rec, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newCapturesRenderCmd(opts *Options, dir *string) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "render <id>",
		Short: "Render a stored capture as a regression test",
		Long: `Render a stored capture record into a generated Go test function. The
output goes to stdout, or is appended to a test file with --out. Records
whose fingerprint no longer matches their content are refused.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := resolveLogger(opts)
			defer func() { _ = logger.Sync() }()

			store := capstore.NewStore(*dir)
			rec, err := store.Load(args[0])
			if err != nil {
				return err
			}

			if !rec.Verify() {
				return fmt.Errorf("capture %s: fingerprint mismatch, record was modified after capture", rec.ID)
			}

			if outFile == "" {
				text, err := rec.Render()
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			}

			if err := rec.AppendToFile(outFile); err != nil {
				return fmt.Errorf("append generated test: %w", err)
			}
			logger.Info("rendered capture",
				zap.String("id", rec.ID),
				zap.String("out", outFile),
			)
			fmt.Fprintln(cmd.OutOrStdout(), "appended generated test to", outFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&outFile, "out", "", "test file to append to instead of stdout")

	return cmd
}

func newCapturesVerifyCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <id>",
		Short: "Verify a stored capture's fingerprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := capstore.NewStore(*dir)
			rec, err := store.Load(args[0])
			if err != nil {
				return err
			}

			if !rec.Verify() {
				return fmt.Errorf("capture %s: fingerprint mismatch, record was modified after capture", rec.ID)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func newCapturesRmCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a stored capture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := capstore.NewStore(*dir)
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
			return nil
		},
	}
}

func newCapturesPruneCmd(opts *Options, dir *string) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete captures older than a given age",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := resolveLogger(opts)
			defer func() { _ = logger.Sync() }()

			store := capstore.NewStore(*dir)
			deleted, err := store.Prune(olderThan)
			if err != nil {
				return err
			}

			logger.Info("pruned captures",
				zap.Int("deleted", deleted),
				zap.Duration("older_than", olderThan),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d capture(s)\n", deleted)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "delete captures older than this duration")

	return cmd
}
