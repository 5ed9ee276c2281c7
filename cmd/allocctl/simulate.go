package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/allockit/alloc"
	"github.com/joshuapare/allockit/internal/logger"
	"github.com/joshuapare/allockit/internal/pages"
)

var simCfg traceConfig

func init() {
	cmd := newSimulateCmd()
	cmd.Flags().IntVar(&simCfg.capacity, "capacity", 1024, "Arena capacity in bytes (multiple of 8, at least 32)")
	cmd.Flags().StringVar(&simCfg.backing, "backing", "heap", "Arena buffer source: heap or pages")
	cmd.Flags().IntSliceVar(&simCfg.sizes, "sizes", defaultSizes, "Allocation sizes, in order")
	cmd.Flags().BoolVar(&simCfg.fallback, "fallback", false, "Put the arena behind a fallback with a heap secondary")
	cmd.Flags().BoolVar(&simCfg.free, "free", false, "Deallocate every block after the trace")
	rootCmd.AddCommand(cmd)
}

func newSimulateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate",
		Short: "Replay allocation sizes against an arena",
		Long: `The simulate command creates an arena and allocates each size in turn,
printing where every request landed and the arena statistics afterwards.

Example:
  allocctl simulate --capacity 64 --sizes 8,8,8
  allocctl simulate --capacity 256 --sizes 64,64,64,64 --fallback
  allocctl simulate --sizes 8,16 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(simCfg)
		},
	}
}

type simulateResult struct {
	Capacity int                  `json:"capacity"`
	Backing  string               `json:"backing"`
	Steps    []step               `json:"steps"`
	Arena    alloc.ArenaStats     `json:"arena"`
	Fallback *alloc.FallbackStats `json:"fallback,omitempty"`
}

func runSimulate(cfg traceConfig) error {
	tr, err := newTrace(cfg)
	if err != nil {
		return err
	}
	defer tr.close()

	printVerbose("Arena: %d bytes, %s backing\n", cfg.capacity, tr.arena.Backing())
	if tr.arena.Backing() == alloc.BackingPages {
		printVerbose("Pages: %d bytes each, mapped outside the Go heap: %t\n", pages.Size(), pages.Mapped())
	}
	tr.run(cfg.sizes)
	if cfg.free {
		if err := tr.deallocateAll(); err != nil {
			return err
		}
	}

	logger.Info("simulate finished", "steps", len(tr.steps), "failures", tr.failures())

	res := simulateResult{
		Capacity: cfg.capacity,
		Backing:  tr.arena.Backing().String(),
		Steps:    tr.steps,
		Arena:    tr.arena.Stats(),
	}
	if tr.fallback != nil {
		fs := tr.fallback.Stats()
		res.Fallback = &fs
	}

	if jsonOut {
		return printJSON(res)
	}

	for _, st := range res.Steps {
		switch {
		case !st.OK:
			printInfo("#%d  %d bytes  FAILED (%s)\n", st.Index, st.Size, st.Error)
		case st.Offset < 0:
			printInfo("#%d  %d bytes  %s\n", st.Index, st.Size, st.Source)
		default:
			printInfo("#%d  %d bytes  %s  offset %d\n", st.Index, st.Size, st.Source, st.Offset)
		}
	}

	s := res.Arena
	printInfo("\nArena:\n")
	printInfo("  Capacity:     %d bytes\n", s.Capacity)
	printInfo("  Free:         %d bytes in %d block(s)\n", s.FreeBytes, s.FreeBlocks)
	printInfo("  In use:       %d bytes (%.1f%%)\n", s.InUse, s.Utilization*100)
	printInfo("  Allocations:  %d ok, %d failed, %d split(s)\n", s.Allocs, s.Failures, s.Splits)
	printVerbose("  Headers:      %d bytes\n", s.HeaderBytes)
	printVerbose("  Deallocs:     %d\n", s.Deallocs)
	if f := res.Fallback; f != nil {
		printInfo("\nFallback:\n")
		printInfo("  Primary:      %d\n", f.PrimaryHits)
		printInfo("  Secondary:    %d\n", f.SecondaryHits)
		printInfo("  Failed:       %d\n", f.Failures)
		printInfo("  Outstanding:  %d\n", f.Outstanding)
	}
	return nil
}
