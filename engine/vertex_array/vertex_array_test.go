package vertex_array

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-vertex/engine/binding"
	"github.com/Carmen-Shannon/oxy-vertex/engine/format"
	"github.com/Carmen-Shannon/oxy-vertex/engine/shader"
)

type backendCall struct {
	layout   *binding.ResolvedBinding
	location uint32
	divisor  format.Divisor
}

type recordingBackend struct {
	calls   []backendCall
	failAt  uint32
	failErr error
}

func (r *recordingBackend) SetAttributeLayout(b binding.ResolvedBinding) error {
	if r.failErr != nil && b.Location == r.failAt {
		return r.failErr
	}
	r.calls = append(r.calls, backendCall{layout: &b})
	return nil
}

func (r *recordingBackend) SetStepRate(location uint32, divisor format.Divisor) error {
	r.calls = append(r.calls, backendCall{location: location, divisor: divisor})
	return nil
}

type stagingBackend struct {
	recordingBackend
	applied [][]binding.ResolvedBinding
	err     error
}

func (s *stagingBackend) ApplyLayout(bindings []binding.ResolvedBinding) error {
	if s.err != nil {
		return s.err
	}
	s.applied = append(s.applied, bindings)
	return nil
}

func testProgram(t *testing.T) shader.Program {
	t.Helper()
	p, err := shader.NewProgram(
		shader.WithAttribute("in_vert", 0, "vec3"),
		shader.WithAttribute("in_uv", 1, "vec2"),
		shader.WithAttribute("in_color", 2, "vec4"),
		shader.WithAttribute("in_model", 4, "mat4"),
	)
	require.NoError(t, err)
	return p
}

func TestNewVertexArray(t *testing.T) {
	backend := &recordingBackend{}
	vbo := binding.BufferRef{ID: 1, ByteSize: 240}
	ibo := binding.BufferRef{ID: 2, ByteSize: 64 * 3}

	va, err := NewVertexArray(testProgram(t), []Content{
		{Buffer: vbo, Format: "3f 2f 4x", Attributes: []string{"in_vert", "in_uv"}},
		{Buffer: ibo, Format: "16f/i", Attributes: []string{"in_model"}},
	}, WithBackend(backend))
	require.NoError(t, err)

	bindings := va.Bindings()
	require.Len(t, bindings, 6)
	assert.Equal(t, uint32(0), bindings[0].Location)
	assert.Equal(t, 24, bindings[0].Stride)
	assert.Equal(t, 12, bindings[1].Offset)
	for row := 0; row < 4; row++ {
		b := bindings[2+row]
		assert.Equal(t, uint32(4+row), b.Location)
		assert.Equal(t, row*16, b.Offset)
		assert.Equal(t, format.DivisorInstance, b.Divisor)
	}

	require.Len(t, backend.calls, 12)
	for i, b := range bindings {
		require.NotNil(t, backend.calls[2*i].layout)
		assert.Equal(t, b, *backend.calls[2*i].layout)
		assert.Equal(t, b.Location, backend.calls[2*i+1].location)
		assert.Equal(t, b.Divisor, backend.calls[2*i+1].divisor)
	}

	assert.Equal(t, binding.VertexCount{Value: 10, Known: true}, va.Vertices())
	assert.Equal(t, 1, va.Instances())
	assert.Nil(t, va.IndexBuffer())
}

func TestNewVertexArrayUnknownAttribute(t *testing.T) {
	content := []Content{
		{Buffer: binding.BufferRef{ByteSize: 120}, Format: "3f 4f", Attributes: []string{"in_vert", "in_normal"}},
	}

	_, err := NewVertexArray(testProgram(t), content)
	assert.ErrorIs(t, err, ErrUnknownAttribute)

	va, err := NewVertexArray(testProgram(t), content, WithSkipErrors(true))
	require.NoError(t, err)
	require.Len(t, va.Bindings(), 1)
	assert.Equal(t, 28, va.Bindings()[0].Stride)
}

func TestNewVertexArrayGap(t *testing.T) {
	va, err := NewVertexArray(testProgram(t), []Content{
		{Buffer: binding.BufferRef{ByteSize: 120}, Format: "3f 2f 4f", Attributes: []string{"in_vert", "", "in_color"}},
	})
	require.NoError(t, err)

	bindings := va.Bindings()
	require.Len(t, bindings, 2)
	assert.Equal(t, 20, bindings[1].Offset)
}

func TestNewVertexArrayErrors(t *testing.T) {
	p := testProgram(t)

	_, err := NewVertexArray(p, []Content{
		{Buffer: binding.BufferRef{ByteSize: 120}, Format: "3f 2f", Attributes: []string{"in_vert"}},
	})
	assert.ErrorIs(t, err, binding.ErrAttributeCountMismatch)

	_, err = NewVertexArray(p, []Content{
		{Buffer: binding.BufferRef{ByteSize: 120}, Format: "16x"},
	})
	assert.ErrorIs(t, err, binding.ErrEmptyAttributes)

	_, err = NewVertexArray(p, []Content{
		{Buffer: binding.BufferRef{ByteSize: 120}, Format: "10f", Attributes: []string{"in_model"}},
	})
	assert.ErrorIs(t, err, binding.ErrUnsupportedRowSplit)

	_, err = NewVertexArray(p, nil, WithIndexBuffer(binding.BufferRef{ByteSize: 12}, 3))
	assert.ErrorIs(t, err, binding.ErrInvalidIndexElementSize)

	_, err = NewVertexArray(nil, nil)
	assert.Error(t, err)

	backendErr := errors.New("unsupported")
	_, err = NewVertexArray(p, []Content{
		{Buffer: binding.BufferRef{ByteSize: 120}, Format: "3f 2f", Attributes: []string{"in_vert", "in_uv"}},
	}, WithBackend(&recordingBackend{failAt: 1, failErr: backendErr}))
	assert.ErrorIs(t, err, backendErr)
}

func TestEmptyVertexArray(t *testing.T) {
	va, err := NewVertexArray(testProgram(t), nil)
	require.NoError(t, err)
	assert.Empty(t, va.Bindings())
	assert.False(t, va.Vertices().Known)

	_, err = va.Draw(-1, 0, -1)
	assert.ErrorIs(t, err, binding.ErrAmbiguousVertexCount)

	call, err := va.Draw(3, 0, -1)
	require.NoError(t, err)
	assert.Equal(t, DrawCall{Vertices: 3, Instances: 1}, call)
}

func TestDraw(t *testing.T) {
	va, err := NewVertexArray(testProgram(t), []Content{
		{Buffer: binding.BufferRef{ByteSize: 240}, Format: "3f", Attributes: []string{"in_vert"}},
	}, WithInstances(2))
	require.NoError(t, err)

	call, err := va.Draw(-1, 0, -1)
	require.NoError(t, err)
	assert.Equal(t, DrawCall{Vertices: 20, Instances: 2}, call)

	call, err = va.Draw(6, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, DrawCall{Vertices: 6, First: 3, Instances: 5}, call)

	va.SetVertices(7)
	va.SetInstances(4)
	call, err = va.Draw(-1, 0, -1)
	require.NoError(t, err)
	assert.Equal(t, DrawCall{Vertices: 7, Instances: 4}, call)

	va.SetVertices(-1)
	_, err = va.Draw(-1, 0, -1)
	assert.ErrorIs(t, err, binding.ErrAmbiguousVertexCount)

	_, err = va.Draw(3, -1, 1)
	assert.ErrorIs(t, err, ErrInvalidDrawRange)
}

func TestDrawIndexed(t *testing.T) {
	va, err := NewVertexArray(testProgram(t), []Content{
		{Buffer: binding.BufferRef{ByteSize: 240}, Format: "3f", Attributes: []string{"in_vert"}},
	}, WithIndexBuffer(binding.BufferRef{ID: 9, ByteSize: 36}, 2))
	require.NoError(t, err)
	assert.Equal(t, binding.VertexCount{Value: 18, Known: true}, va.Vertices())

	call, err := va.Draw(-1, 6, -1)
	require.NoError(t, err)
	assert.Equal(t, DrawCall{Vertices: 18, First: 6, Instances: 1, Indexed: true, IndexElementSize: 2, IndexOffset: 12}, call)

	require.NoError(t, va.SetIndexBuffer(binding.BufferRef{ByteSize: 36}, 4))
	assert.Equal(t, binding.VertexCount{Value: 9, Known: true}, va.Vertices())

	assert.ErrorIs(t, va.SetIndexBuffer(binding.BufferRef{ByteSize: 36}, 8), binding.ErrInvalidIndexElementSize)
	assert.Equal(t, 4, va.IndexBuffer().ElementSize)

	require.NoError(t, va.SetIndexBuffer(nil, 0))
	assert.Nil(t, va.IndexBuffer())
	assert.Equal(t, binding.VertexCount{Value: 20, Known: true}, va.Vertices())
}

func TestDrawIndirect(t *testing.T) {
	va, err := NewVertexArray(testProgram(t), nil)
	require.NoError(t, err)
	commands := binding.BufferRef{ID: 3, ByteSize: 100}

	call, err := va.DrawIndirect(commands, -1, 0)
	require.NoError(t, err)
	assert.Equal(t, IndirectCall{Buffer: commands, Count: 5, Stride: 20}, call)

	call, err = va.DrawIndirect(commands, -1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, call.Count)
	assert.Equal(t, 40, call.Offset)

	call, err = va.DrawIndirect(commands, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, call.Count)

	_, err = va.DrawIndirect(commands, -1, 6)
	assert.ErrorIs(t, err, ErrInvalidDrawRange)

	_, err = va.DrawIndirect(nil, 1, 0)
	assert.ErrorIs(t, err, binding.ErrMissingBuffer)
}

func TestBind(t *testing.T) {
	backend := &recordingBackend{}
	va, err := NewVertexArray(testProgram(t), nil, WithBackend(backend))
	require.NoError(t, err)

	buf := binding.BufferRef{ID: 5, ByteSize: 64}
	require.NoError(t, va.Bind(BindRequest{
		Location: 7, Call: binding.CallFloat, Buffer: buf, Format: "4u1 4x",
		Offset: 8, Stride: 16, Divisor: format.DivisorInstance, Normalize: true,
	}))

	require.Len(t, va.Bindings(), 1)
	b := va.Bindings()[0]
	assert.Equal(t, binding.ResolvedBinding{
		Entry: -1, Buffer: buf, Location: 7, Components: 4, Kind: format.KindUint8,
		Normalize: true, Stride: 16, Offset: 8, Divisor: format.DivisorInstance, Call: binding.CallFloat,
	}, b)
	require.Len(t, backend.calls, 2)
	assert.Equal(t, format.DivisorInstance, backend.calls[1].divisor)
}

func TestBindValidation(t *testing.T) {
	va, err := NewVertexArray(testProgram(t), nil)
	require.NoError(t, err)
	buf := binding.BufferRef{ByteSize: 64}

	tests := []struct {
		name string
		req  BindRequest
		want error
	}{
		{"two nodes", BindRequest{Buffer: buf, Format: "3f 2f"}, ErrInvalidBindFormat},
		{"instanced tail", BindRequest{Buffer: buf, Format: "3f/i"}, ErrInvalidBindFormat},
		{"leading padding", BindRequest{Buffer: buf, Format: "4x 3f"}, ErrInvalidBindFormat},
		{"empty", BindRequest{Buffer: buf, Format: ""}, ErrInvalidBindFormat},
		{"malformed", BindRequest{Buffer: buf, Format: "3q"}, format.ErrMalformedFormat},
		{"normalize float node", BindRequest{Buffer: buf, Format: "3f", Normalize: true}, ErrInvalidNormalize},
		{"normalize integer path", BindRequest{Buffer: buf, Format: "4u1", Call: binding.CallInteger, Normalize: true}, ErrInvalidNormalize},
		{"missing buffer", BindRequest{Format: "3f"}, binding.ErrMissingBuffer},
		{"negative offset", BindRequest{Buffer: buf, Format: "3f", Offset: -4}, ErrInvalidDrawRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, va.Bind(tt.req), tt.want)
		})
	}
	assert.Empty(t, va.Bindings())

	require.NoError(t, va.Bind(BindRequest{Buffer: buf, Format: "3f/v", Stride: 12}))
}

func TestLayoutBackendAppliedOnce(t *testing.T) {
	backend := &stagingBackend{}
	va, err := NewVertexArray(testProgram(t), []Content{
		{Buffer: binding.BufferRef{ID: 1, ByteSize: 240}, Format: "3f 2f 4x", Attributes: []string{"in_vert", "in_uv"}},
		{Buffer: binding.BufferRef{ID: 2, ByteSize: 192}, Format: "16f/i", Attributes: []string{"in_model"}},
	}, WithBackend(backend))
	require.NoError(t, err)

	require.Len(t, backend.applied, 1)
	assert.Equal(t, va.Bindings(), backend.applied[0])
	assert.Empty(t, backend.calls)

	require.NoError(t, va.Bind(BindRequest{
		Location: 9, Call: binding.CallFloat, Buffer: binding.BufferRef{ID: 3, ByteSize: 64}, Format: "4f", Stride: 16,
	}))
	require.Len(t, backend.applied, 2)
	assert.Len(t, backend.applied[1], 1)
	assert.Empty(t, backend.calls)

	backend.err = errors.New("rejected")
	assert.ErrorIs(t, va.Bind(BindRequest{
		Location: 10, Call: binding.CallFloat, Buffer: binding.BufferRef{ID: 3, ByteSize: 64}, Format: "4f", Stride: 16,
	}), backend.err)
	assert.Len(t, va.Bindings(), 7)
}
