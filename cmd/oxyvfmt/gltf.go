package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/oxy-vertex/engine/binding"
	"github.com/Carmen-Shannon/oxy-vertex/engine/loader"
)

func newGLTFCmd() *cobra.Command {
	var names map[string]string

	cmd := &cobra.Command{
		Use:   "gltf <model>",
		Short: "Print the vertex streams a glTF or GLB model translates to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l := loader.NewLoader(loader.BackendTypeGLTF, loader.WithAttributeNames(names))
			prims, err := l.Load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range prims {
				fmt.Fprintf(out, "mesh %d %q primitive %d:\n", p.MeshIndex, p.Mesh, p.Index)
				entries := make([]binding.BindingEntry, len(p.Streams))
				for i, s := range p.Streams {
					fmt.Fprintf(out, "  view %d @%d: %q [%s]\n", s.BufferView, s.ByteOffset, s.Format, strings.Join(s.Attributes, ", "))
					entries[i] = binding.BindingEntry{Buffer: s.Buffer, Format: s.Format}
				}
				if p.Indices != nil {
					fmt.Fprintf(out, "  indices: u%d x %d\n", p.Indices.ElementSize*8, p.Indices.Buffer.Size()/p.Indices.ElementSize)
				}
				count, err := binding.InferVertexCount(p.Indices, entries)
				if err != nil {
					return err
				}
				n, err := count.Require()
				if err != nil {
					fmt.Fprintln(out, "  draw count: unknown")
					continue
				}
				fmt.Fprintf(out, "  draw count: %d\n", n)
			}
			return nil
		},
	}
	cmd.Flags().StringToStringVar(&names, "name", nil, "map a glTF semantic to a program attribute, e.g. TEXCOORD_0=in_uv")
	return cmd
}
