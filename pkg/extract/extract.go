package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
)

// Parser converts raw document bytes into plain text.
type Parser interface {
	Parse(r io.Reader, filename string) (string, error)
}

// Document is one uploaded file to extract from.
type Document struct {
	Name string
	Data []byte
}

// Result is the per-file outcome of a batch extraction.
type Result struct {
	Name string
	Text string
	Err  error
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	case ".pptx":
		return &PPTXParser{}, nil
	case ".xlsx", ".xlsm":
		return &XLSXParser{}, nil
	case ".png", ".jpg", ".jpeg", ".tiff":
		return &ImageParser{}, nil
	default:
		return &TextParser{}, nil
	}
}

// ExtractAll parses every document concurrently. Each goroutine writes to its
// own slot so results keep the input order regardless of completion order.
// Failed or empty files are reported in the per-file results and excluded from
// the combined text; if everything fails the combined text is empty.
func ExtractAll(ctx context.Context, docs []Document) (string, []Result) {
	results := make([]Result, len(docs))

	var wg sync.WaitGroup
	for i, doc := range docs {
		wg.Add(1)
		go func(i int, doc Document) {
			defer wg.Done()
			results[i] = extractOne(ctx, doc)
		}(i, doc)
	}
	wg.Wait()

	var parts []string
	for _, res := range results {
		if res.Err == nil && strings.TrimSpace(res.Text) != "" {
			parts = append(parts, res.Text)
		}
	}
	return strings.Join(parts, "\n\n"), results
}

func extractOne(ctx context.Context, doc Document) Result {
	if err := ctx.Err(); err != nil {
		return Result{Name: doc.Name, Err: err}
	}
	parser, err := ForFile(doc.Name)
	if err != nil {
		return Result{Name: doc.Name, Err: err}
	}
	text, err := parser.Parse(bytes.NewReader(doc.Data), doc.Name)
	if err != nil {
		return Result{Name: doc.Name, Err: fmt.Errorf("extract %s: %w", doc.Name, err)}
	}
	return Result{Name: doc.Name, Text: strings.TrimSpace(text)}
}
