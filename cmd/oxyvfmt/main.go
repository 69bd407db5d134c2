// Command oxyvfmt inspects vertex format strings and resolves layout manifests.
//
// Usage:
//
//	oxyvfmt inspect <format>...
//	oxyvfmt resolve <manifest>...
//	oxyvfmt layout [--backend wgpu|gputypes] <manifest>
//	oxyvfmt gltf [--name SEMANTIC=attribute]... <model>
//
// Examples:
//
//	oxyvfmt inspect "3f 2f 4f1/i"       # Dump the nodes of a format string
//	oxyvfmt resolve quad.toml mesh.yaml # Resolve manifests concurrently
//	oxyvfmt -v layout quad.toml         # Print vertex buffer layouts with debug logs
//	oxyvfmt gltf --name TEXCOORD_0=in_uv fox.glb
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/oxy-vertex/common"
)

func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "oxyvfmt: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "oxyvfmt",
		Short:         "Inspect vertex format strings and resolve vertex layout manifests",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				common.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log assembly steps to stderr")

	root.AddCommand(newInspectCmd(), newResolveCmd(), newLayoutCmd(), newGLTFCmd())
	return root
}
