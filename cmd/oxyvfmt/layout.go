package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/oxy-vertex/engine/manifest"
	"github.com/Carmen-Shannon/oxy-vertex/engine/renderer"
	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex_array"
)

func newLayoutCmd() *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "layout <manifest>",
		Short: "Print the vertex buffer layouts a manifest assembles to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}

			backendType := m.BackendType()
			if backend != "" {
				if backendType, err = renderer.ParseRendererBackendType(backend); err != nil {
					return err
				}
			}

			program, err := m.Program()
			if err != nil {
				return err
			}
			r := renderer.NewRenderer(backendType)
			va, err := m.VertexArray(program, vertex_array.WithBackend(r))
			if err != nil {
				return err
			}
			if err := r.Validate(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "backend: %s\n", r.BackendType())
			for i, l := range r.BufferLayouts() {
				fmt.Fprintf(out, "buffer %d (handle %d): stride %d step %s\n", i, l.Buffer.Handle(), l.ArrayStride, l.StepMode)
				for _, a := range l.Attributes {
					fmt.Fprintf(out, "  @location(%d) %s offset %d\n", a.ShaderLocation, a.Format, a.Offset)
				}
			}
			if n := va.Vertices(); n.Known {
				fmt.Fprintf(out, "vertices: %d\n", n.Value)
			} else {
				fmt.Fprintln(out, "vertices: unknown")
			}
			fmt.Fprintf(out, "instances: %d\n", va.Instances())
			return nil
		},
	}
	cmd.Flags().StringVar(&backend, "backend", "", "override the manifest backend: wgpu or gputypes")
	return cmd
}
