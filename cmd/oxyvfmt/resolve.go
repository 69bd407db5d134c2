package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/oxy-vertex/engine/binding"
	"github.com/Carmen-Shannon/oxy-vertex/engine/manifest"
	"github.com/Carmen-Shannon/oxy-vertex/engine/profiler"
)

func newResolveCmd() *cobra.Command {
	var profile bool

	cmd := &cobra.Command{
		Use:   "resolve <manifest>...",
		Short: "Resolve the bindings and vertex count of layout manifests",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requests := make([]binding.BatchRequest, len(args))
			for i, path := range args {
				m, err := manifest.Load(path)
				if err != nil {
					return err
				}
				program, err := m.Program()
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if requests[i], err = m.BatchRequest(program); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}

			pool := binding.NewBatchPool()
			defer pool.Stop()

			p := profiler.NewProfiler()
			p.Start()
			results := binding.ResolveBatch(binding.NewResolver(binding.WithRequireAttributes(true)), pool, requests)
			stats := p.Stop(len(requests))

			out := cmd.OutOrStdout()
			var errs []error
			for i, res := range results {
				fmt.Fprintf(out, "%s:\n", args[i])
				if res.Err != nil {
					fmt.Fprintf(out, "  error: %v\n", res.Err)
					errs = append(errs, fmt.Errorf("%s: %w", args[i], res.Err))
					continue
				}
				for _, b := range res.Bindings {
					fmt.Fprintf(out, "  location %d: %d x %s stride %d offset %d divisor %s call %s\n",
						b.Location, b.Components, b.Kind, b.Stride, b.Offset, b.Divisor, b.Call)
				}
				if res.Count.Known {
					fmt.Fprintf(out, "  vertices: %d\n", res.Count.Value)
				} else {
					fmt.Fprintln(out, "  vertices: unknown")
				}
			}
			if profile {
				fmt.Fprintf(out, "profile: %s\n", stats)
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().BoolVar(&profile, "profile", false, "print resolution throughput and memory statistics")
	return cmd
}
