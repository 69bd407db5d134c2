package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/oxy-vertex/engine/format"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <format>...",
		Short: "Print the nodes, stride and step rate of format strings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, src := range args {
				if i > 0 {
					fmt.Fprintln(out)
				}
				nodes, info, err := format.Nodes(src)
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "format %q\n", src)
				for j, n := range nodes {
					if n.IsPadding() {
						fmt.Fprintf(out, "  %d: padding, %d bytes\n", j, n.ByteSize)
						continue
					}
					fmt.Fprintf(out, "  %d: %s\n", j, n)
				}
				fmt.Fprintf(out, "  stride: %d\n  attributes: %d\n  divisor: %s\n", info.Size, info.Nodes, info.Divisor)
			}
			return nil
		},
	}
}
