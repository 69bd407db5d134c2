package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-vertex/common"
)

const quadManifest = `
version = "1.0.0"

[[attributes]]
name = "in_vert"
location = 0
type = "vec3"

[[attributes]]
name = "in_color"
location = 1
type = "vec4"

[[buffers]]
name = "quad"
size = 64

[[content]]
buffer = "quad"
format = "3f 4f1"
attributes = ["in_vert", "in_color"]
`

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func writeManifest(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestInspect(t *testing.T) {
	out, _, err := run(t, "inspect", "3f 2x 4f1/i")
	require.NoError(t, err)

	assert.Contains(t, out, `format "3f 2x 4f1/i"`)
	assert.Contains(t, out, "0: 3 x f32 (12 bytes)")
	assert.Contains(t, out, "1: padding, 2 bytes")
	assert.Contains(t, out, "2: 4 x u8 (normalized, 4 bytes)")
	assert.Contains(t, out, "stride: 18")
	assert.Contains(t, out, "attributes: 2")
	assert.Contains(t, out, "divisor: instance")
}

func TestInspectMalformed(t *testing.T) {
	_, _, err := run(t, "inspect", "3q")
	assert.Error(t, err)

	_, _, err = run(t, "inspect")
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	good := writeManifest(t, "quad.toml", quadManifest)
	out, _, err := run(t, "resolve", good)
	require.NoError(t, err)

	assert.Contains(t, out, "location 0: 3 x f32 stride 16 offset 0 divisor vertex call float")
	assert.Contains(t, out, "location 1: 4 x u8 stride 16 offset 12 divisor vertex call float")
	assert.Contains(t, out, "vertices: 4")
}

func TestResolveProfile(t *testing.T) {
	path := writeManifest(t, "quad.toml", quadManifest)
	out, _, err := run(t, "resolve", "--profile", path, path)
	require.NoError(t, err)
	assert.Contains(t, out, "profile: 2 requests in")
}

func TestResolveReportsEachManifest(t *testing.T) {
	good := writeManifest(t, "quad.toml", quadManifest)
	bad := writeManifest(t, "bad.yaml", `
version: "1.0.0"
attributes:
  - name: in_vert
    location: 0
    type: vec3
buffers:
  - name: quad
    size: 64
content:
  - buffer: quad
    format: 3f 3f
    attributes: [in_vert]
`)

	out, _, err := run(t, "resolve", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
	assert.Contains(t, out, "vertices: 4")
	assert.Contains(t, out, "error:")
}

func TestLayout(t *testing.T) {
	path := writeManifest(t, "quad.toml", quadManifest)

	for _, backend := range []string{"wgpu", "gputypes"} {
		t.Run(backend, func(t *testing.T) {
			out, _, err := run(t, "layout", "--backend", backend, path)
			require.NoError(t, err)
			assert.Contains(t, out, "backend: "+backend)
			assert.Contains(t, out, "buffer 0 (handle 1): stride 16 step vertex")
			assert.Contains(t, out, "@location(0) float32x3 offset 0")
			assert.Contains(t, out, "@location(1) unorm8x4 offset 12")
			assert.Contains(t, out, "vertices: 4")
			assert.Contains(t, out, "instances: 1")
		})
	}

	_, _, err := run(t, "layout", "--backend", "metal", path)
	assert.Error(t, err)
}

func TestVerboseLogs(t *testing.T) {
	t.Cleanup(func() { common.SetLogger(nil) })
	path := writeManifest(t, "quad.toml", quadManifest)

	_, errOut, err := run(t, "-v", "layout", path)
	require.NoError(t, err)
	assert.Contains(t, errOut, "manifest loaded")
	assert.Contains(t, errOut, "vertex array assembled")
}

const triangleGLTF = `{
  "asset": {"version": "2.0"},
  "meshes": [{"name": "tri", "primitives": [{"attributes": {"POSITION": 0, "TEXCOORD_0": 1}}]}],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
    {"bufferView": 0, "byteOffset": 12, "componentType": 5126, "count": 3, "type": "VEC2"}
  ],
  "bufferViews": [{"buffer": 0, "byteLength": 60, "byteStride": 20}],
  "buffers": [{"byteLength": 60}]
}`

func TestGLTF(t *testing.T) {
	path := writeManifest(t, "tri.gltf", triangleGLTF)
	out, _, err := run(t, "gltf", "--name", "TEXCOORD_0=in_uv", path)
	require.NoError(t, err)

	assert.Contains(t, out, `mesh 0 "tri" primitive 0:`)
	assert.Contains(t, out, `view 0 @0: "3f 2f" [position, in_uv]`)
	assert.Contains(t, out, "draw count: 3")
}
