package extract

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForFileDispatch(t *testing.T) {
	tests := []struct {
		filename string
		want     Parser
	}{
		{"proposal.pdf", &PDFParser{}},
		{"PROPOSAL.PDF", &PDFParser{}},
		{"notes.docx", &DOCXParser{}},
		{"deck.pptx", &PPTXParser{}},
		{"budget.xlsx", &XLSXParser{}},
		{"budget.xlsm", &XLSXParser{}},
		{"scan.png", &ImageParser{}},
		{"scan.jpeg", &ImageParser{}},
		{"readme.txt", &TextParser{}},
		{"no_extension", &TextParser{}},
	}

	for _, tt := range tests {
		parser, err := ForFile(tt.filename)
		require.NoError(t, err, tt.filename)
		assert.IsType(t, tt.want, parser, tt.filename)
	}
}

func TestExtractAllCombinesInInputOrder(t *testing.T) {
	docs := []Document{
		{Name: "a.txt", Data: []byte("first document")},
		{Name: "b.txt", Data: []byte("second document")},
		{Name: "c.txt", Data: []byte("third document")},
	}

	text, results := ExtractAll(context.Background(), docs)

	assert.Equal(t, "first document\n\nsecond document\n\nthird document", text)
	require.Len(t, results, 3)
	for i, res := range results {
		assert.Equal(t, docs[i].Name, res.Name)
		assert.NoError(t, res.Err)
	}
}

func TestExtractAllOrderIndependentTexts(t *testing.T) {
	docs := []Document{
		{Name: "a.txt", Data: []byte("first document")},
		{Name: "b.txt", Data: []byte("second document")},
		{Name: "c.txt", Data: []byte("third document")},
		{Name: "empty.txt", Data: []byte("   ")},
	}
	shuffled := []Document{docs[2], docs[3], docs[0], docs[1]}

	_, results := ExtractAll(context.Background(), docs)
	_, shuffledResults := ExtractAll(context.Background(), shuffled)

	texts := func(results []Result) []string {
		var out []string
		for _, res := range results {
			if res.Err == nil && strings.TrimSpace(res.Text) != "" {
				out = append(out, res.Text)
			}
		}
		sort.Strings(out)
		return out
	}
	assert.Equal(t, texts(results), texts(shuffledResults))
	assert.Len(t, texts(results), 3)
}

func TestExtractAllToleratesPerFileFailures(t *testing.T) {
	docs := []Document{
		{Name: "good.txt", Data: []byte("usable text")},
		{Name: "broken.pdf", Data: []byte("this is not a pdf")},
		{Name: "empty.txt", Data: []byte("   ")},
	}

	text, results := ExtractAll(context.Background(), docs)

	assert.Equal(t, "usable text", text)
	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.Contains(t, results[1].Err.Error(), "broken.pdf")
}

func TestExtractAllEmptyInput(t *testing.T) {
	text, results := ExtractAll(context.Background(), nil)

	assert.Equal(t, "", text)
	assert.Empty(t, results)
}

func TestTextParser(t *testing.T) {
	parser := &TextParser{}

	text, err := parser.Parse(strings.NewReader("plain text body"), "notes.txt")

	require.NoError(t, err)
	assert.Equal(t, "plain text body", text)
}
