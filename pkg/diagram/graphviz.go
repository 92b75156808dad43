package diagram

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// GraphvizRenderer shells out to the dot binary. Each render gets its own
// deadline so a pathological graph cannot stall the scope pipeline.
type GraphvizRenderer struct {
	Binary  string
	Timeout time.Duration
}

var _ Renderer = &GraphvizRenderer{}

func NewGraphvizRenderer(timeout time.Duration) *GraphvizRenderer {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &GraphvizRenderer{
		Binary:  "dot",
		Timeout: timeout,
	}
}

func (r *GraphvizRenderer) Render(ctx context.Context, dot string) ([]byte, []byte, error) {
	png, err := r.renderFormat(ctx, dot, "png")
	if err != nil {
		return nil, nil, err
	}
	svg, err := r.renderFormat(ctx, dot, "svg")
	if err != nil {
		return nil, nil, err
	}
	return png, svg, nil
}

func (r *GraphvizRenderer) renderFormat(ctx context.Context, dot, format string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.Binary, "-T"+format)
	cmd.Stdin = strings.NewReader(dot)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("graphviz render timed out after %s: %w", r.Timeout, context.DeadlineExceeded)
		}
		return nil, fmt.Errorf("graphviz render failed: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
