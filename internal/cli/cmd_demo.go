package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"reprise"
	"reprise/demo"
	"reprise/internal/capstore"
	"reprise/internal/sweep"
)

func newDemoCmd(opts *Options) *cobra.Command {
	var outFile string
	var codecName string
	var save bool
	var storeDir string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Sweep the demo action until it fails and capture the failure",
		Long: `Run demo.ImportantAction across a grid of initial states and arguments,
stopping at the first failure. The capture is appended to the output file as
a generated regression test and can additionally be saved to the capture
store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := resolveLogger(opts)
			defer func() { _ = logger.Sync() }()

			enc, err := codecByFlag(codecName)
			if err != nil {
				return err
			}

			c := demoSweep()
			if c == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "every candidate passed, nothing to capture")
				return nil
			}

			logger.Info("captured failure",
				zap.String("operation", c.Snapshot.FullPath()),
				zap.String("error", c.Err.Error()),
				zap.Time("at", c.Time),
			)

			rec, err := c.Record(enc)
			if err != nil {
				return err
			}

			if save {
				store := capstore.NewStore(storeDir)
				path, err := store.Save(rec)
				if err != nil {
					return fmt.Errorf("save capture: %w", err)
				}
				logger.Info("capture saved", zap.String("path", path))
				fmt.Fprintln(cmd.OutOrStdout(), "capture saved to", path)
			}

			if err := rec.AppendToFile(outFile); err != nil {
				return fmt.Errorf("append generated test: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"oh no we failed! Check %s for the newly generated regression test\n", outFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&outFile, "out", "regression_test.go", "test file to append the generated test to")
	cmd.Flags().StringVar(&codecName, "codec", "json", "payload codec: json or yaml")
	cmd.Flags().BoolVar(&save, "save", false, "also save the capture record to the store")
	cmd.Flags().StringVar(&storeDir, "dir", capstore.ResolveDir(os.Environ()), "capture store directory")

	return cmd
}

// demoSweep mirrors the original demo driver: every combination of initial
// state and arguments in a 10x10x10x10 grid, first failure wins.
func demoSweep() *reprise.Capture[demo.Args, struct{}] {
	candidates := make([]demo.Args, 0, 100)
	for i3 := uint32(0); i3 < 10; i3++ {
		for i4 := uint32(0); i4 < 10; i4++ {
			candidates = append(candidates, demo.Args{i3, i4})
		}
	}

	for i1 := uint32(0); i1 < 10; i1++ {
		for i2 := uint32(0); i2 < 10; i2++ {
			fresh := func() reprise.Executable[demo.Args, struct{}] {
				return &demo.ImportantAction{Var1: i1, Var2: i2}
			}
			if c := sweep.First(fresh, candidates); c != nil {
				return c
			}
		}
	}
	return nil
}

func codecByFlag(name string) (reprise.Codec, error) {
	switch name {
	case "json":
		return reprise.JSON, nil
	case "yaml":
		return reprise.YAML, nil
	default:
		return nil, fmt.Errorf("unknown codec %q, expected json or yaml", name)
	}
}
