package diagram

import (
	"context"
	"regexp"
	"strings"
	"time"

	"ai-scoping-be/internal/constant"
	"ai-scoping-be/internal/pkg/logger"
	"ai-scoping-be/pkg/diagram"
	"ai-scoping-be/pkg/llm"
)

var (
	fenceOpenRe    = regexp.MustCompile("```[a-zA-Z]*")
	graphHeaderRe  = regexp.MustCompile(`(?i)^graph\s`)
	nonPrintableRe = regexp.MustCompile(`[^\x09\x0A\x0D\x20-\x7E]`)
)

// Sanitize repairs the usual damage in model-produced DOT: markdown fences,
// an undirected "graph" header, unbalanced braces, a missing digraph wrapper
// and non-printable characters.
func Sanitize(dot string) string {
	dot = fenceOpenRe.ReplaceAllString(dot, "")
	dot = strings.ReplaceAll(dot, "```", "")
	dot = strings.TrimSpace(dot)
	dot = strings.Trim(dot, "`")
	dot = strings.TrimSpace(dot)
	dot = graphHeaderRe.ReplaceAllString(dot, "digraph ")

	open := strings.Count(dot, "{")
	closed := strings.Count(dot, "}")
	if open > closed {
		dot += strings.Repeat("}", open-closed)
	} else if closed > open {
		dot = "digraph Architecture {\n" + dot
	}

	if !strings.HasPrefix(strings.ToLower(dot), "digraph") {
		dot = "digraph Architecture {\n" + dot + "\n}"
	}

	return nonPrintableRe.ReplaceAllString(dot, "")
}

// Result is a rendered architecture diagram. Fallback marks the generic
// layout used when tailored generation failed.
type Result struct {
	Dot      string
	Png      []byte
	Svg      []byte
	Fallback bool
}

// Generator produces architecture diagrams from a prompt via the LLM, with
// retries, DOT sanitization and a static fallback layout.
type Generator struct {
	provider   llm.LLMProvider
	renderer   diagram.Renderer
	log        logger.ILogger
	maxRetries int
	retryDelay time.Duration
}

func NewGenerator(provider llm.LLMProvider, renderer diagram.Renderer, log logger.ILogger) *Generator {
	return &Generator{
		provider:   provider,
		renderer:   renderer,
		log:        log,
		maxRetries: 2,
		retryDelay: 2 * time.Second,
	}
}

// Generate asks the model for DOT code (up to two retries), sanitizes and
// renders it. Any failure along the way degrades to the fallback layout; an
// error is returned only if even the fallback cannot be rendered.
func (g *Generator) Generate(ctx context.Context, prompt string) (*Result, error) {
	dot := g.generateDot(ctx, prompt)
	if dot == "" {
		g.log.Warn("diagram", "no DOT code returned by model, using fallback layout", nil)
		return g.renderFallback(ctx)
	}

	dot = Sanitize(dot)
	png, svg, err := g.renderer.Render(ctx, dot)
	if err != nil {
		g.log.Warn("diagram", "rendering generated DOT failed, using fallback layout", map[string]interface{}{"error": err.Error()})
		return g.renderFallback(ctx)
	}

	return &Result{Dot: dot, Png: png, Svg: svg}, nil
}

func (g *Generator) generateDot(ctx context.Context, prompt string) string {
	for attempt := 0; ; attempt++ {
		out, err := g.provider.Generate(ctx, prompt, llm.WithTemperature(0.7))
		if err == nil {
			return out
		}
		if attempt >= g.maxRetries {
			g.log.Error("diagram", "architecture generation failed after retries", map[string]interface{}{"error": err.Error()})
			return ""
		}
		g.log.Warn("diagram", "architecture generation failed, retrying", map[string]interface{}{
			"attempt": attempt + 1,
			"error":   err.Error(),
		})
		select {
		case <-ctx.Done():
			return ""
		case <-time.After(g.retryDelay):
		}
	}
}

func (g *Generator) renderFallback(ctx context.Context) (*Result, error) {
	png, svg, err := g.renderer.Render(ctx, constant.FallbackArchitectureDot)
	if err != nil {
		return nil, err
	}
	return &Result{Dot: constant.FallbackArchitectureDot, Png: png, Svg: svg, Fallback: true}, nil
}
