package diagram

import "context"

// Renderer turns Graphviz DOT source into rendered image bytes.
type Renderer interface {
	Render(ctx context.Context, dot string) (png []byte, svg []byte, err error)
}
