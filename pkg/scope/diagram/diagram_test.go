package diagram

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-scoping-be/internal/constant"
	"ai-scoping-be/internal/pkg/logger"
	"ai-scoping-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "markdown fences",
			in:   "```dot\ndigraph G { a -> b }\n```",
			want: "digraph G { a -> b }",
		},
		{
			name: "undirected header",
			in:   "graph G { a -> b }",
			want: "digraph G { a -> b }",
		},
		{
			name: "missing closing brace",
			in:   "digraph G { a -> b",
			want: "digraph G { a -> b}",
		},
		{
			name: "no digraph wrapper",
			in:   "a -> b;",
			want: "digraph Architecture {\na -> b;\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitizeStripsNonPrintable(t *testing.T) {
	out := Sanitize("digraph G { a -> b é✓ }")

	assert.False(t, strings.ContainsRune(out, '✓'))
	assert.True(t, strings.HasPrefix(out, "digraph"))
}

type stubProvider struct {
	out      string
	err      error
	failures int
	calls    int
}

func (p *stubProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return p.out, p.err
}

func (p *stubProvider) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	p.calls++
	if p.calls <= p.failures {
		return "", errors.New("model unavailable")
	}
	return p.out, p.err
}

type stubRenderer struct {
	err      error
	lastDot  string
	rendered int
}

func (r *stubRenderer) Render(_ context.Context, dot string) ([]byte, []byte, error) {
	r.rendered++
	r.lastDot = dot
	if r.err != nil {
		return nil, nil, r.err
	}
	return []byte("png"), []byte("svg"), nil
}

func testLogger() logger.ILogger {
	return logger.NewZapLogger("", false)
}

func TestGeneratorRendersModelOutput(t *testing.T) {
	provider := &stubProvider{out: "```dot\ndigraph G { a -> b }\n```"}
	renderer := &stubRenderer{}
	gen := NewGenerator(provider, renderer, testLogger())

	result, err := gen.Generate(context.Background(), "draw it")

	require.NoError(t, err)
	assert.False(t, result.Fallback)
	assert.Equal(t, "digraph G { a -> b }", result.Dot)
	assert.Equal(t, []byte("png"), result.Png)
}

func TestGeneratorRetriesThenSucceeds(t *testing.T) {
	provider := &stubProvider{out: "digraph G { a }", failures: 2}
	renderer := &stubRenderer{}
	gen := NewGenerator(provider, renderer, testLogger())
	gen.retryDelay = 0

	result, err := gen.Generate(context.Background(), "draw it")

	require.NoError(t, err)
	assert.False(t, result.Fallback)
	assert.Equal(t, 3, provider.calls)
}

func TestGeneratorFallsBackWhenModelFails(t *testing.T) {
	provider := &stubProvider{failures: 10}
	renderer := &stubRenderer{}
	gen := NewGenerator(provider, renderer, testLogger())
	gen.retryDelay = 0

	result, err := gen.Generate(context.Background(), "draw it")

	require.NoError(t, err)
	assert.True(t, result.Fallback)
	assert.Equal(t, constant.FallbackArchitectureDot, result.Dot)
}

func TestGeneratorFallsBackWhenRenderFails(t *testing.T) {
	provider := &stubProvider{out: "digraph G { a }"}
	renderer := &stubRenderer{err: errors.New("dot not installed")}
	gen := NewGenerator(provider, renderer, testLogger())

	_, err := gen.Generate(context.Background(), "draw it")

	// even the fallback cannot render, so the caller finally sees the error
	assert.Error(t, err)
	assert.Equal(t, 2, renderer.rendered)
}
