package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/allockit/alloc"
	"github.com/joshuapare/allockit/internal/logger"
)

var layoutCfg traceConfig

func init() {
	cmd := newLayoutCmd()
	cmd.Flags().IntVar(&layoutCfg.capacity, "capacity", 1024, "Arena capacity in bytes (multiple of 8, at least 32)")
	cmd.Flags().StringVar(&layoutCfg.backing, "backing", "heap", "Arena buffer source: heap or pages")
	cmd.Flags().IntSliceVar(&layoutCfg.sizes, "sizes", nil, "Allocation sizes to apply before dumping")
	rootCmd.AddCommand(cmd)
}

func newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Show the arena free list",
		Long: `The layout command allocates the given sizes from a fresh arena and
prints every free-list header left in the buffer.

Example:
  allocctl layout --capacity 64
  allocctl layout --capacity 64 --sizes 8
  allocctl layout --capacity 1024 --sizes 100,200 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(layoutCfg)
		},
	}
}

type layoutResult struct {
	Capacity  int           `json:"capacity"`
	Allocated int           `json:"allocated"`
	Failed    int           `json:"failed"`
	Blocks    []alloc.Block `json:"blocks"`
	Valid     bool          `json:"valid"`
	Problem   string        `json:"problem,omitempty"`
}

func runLayout(cfg traceConfig) error {
	tr, err := newTrace(cfg)
	if err != nil {
		return err
	}
	defer tr.close()

	tr.run(cfg.sizes)
	tr.arena.LogFreeList(logger.L)

	res := layoutResult{
		Capacity:  cfg.capacity,
		Allocated: len(tr.live),
		Failed:    tr.failures(),
		Blocks:    tr.arena.Blocks(),
		Valid:     true,
	}
	if res.Blocks == nil {
		res.Blocks = []alloc.Block{}
	}
	if err := tr.arena.Validate(); err != nil {
		res.Valid = false
		res.Problem = err.Error()
	}

	if jsonOut {
		return printJSON(res)
	}

	printInfo("Arena: %d bytes, %d allocated, %d failed\n", res.Capacity, res.Allocated, res.Failed)
	if len(res.Blocks) == 0 {
		printInfo("Free list: empty\n")
	}
	for i, b := range res.Blocks {
		next := "end"
		if b.Next >= 0 {
			next = numbers.Sprintf("%d", b.Next)
		}
		printInfo("  [%d] header %d  data %d  size %d  next %s\n", i, b.Offset, b.Data, b.Size, next)
	}
	if !res.Valid {
		printInfo("Free list invalid: %s\n", res.Problem)
	}
	return nil
}
