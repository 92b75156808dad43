package tokens

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimate(t *testing.T) {
	assert.Equal(t, 0, Estimate(""))
	assert.Equal(t, 1, Estimate("hi"))
	assert.Equal(t, 13, Estimate(strings.Repeat("word ", 10)))
}

func TestTruncate(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 100))

	assert.Equal(t, text, Truncate(text, 1000))
	assert.Equal(t, "", Truncate(text, 0))

	cut := Truncate(text, 14)
	assert.Equal(t, 10, len(strings.Fields(cut)))
}
