// Package tokens provides a cheap token estimator for prompt budgeting.
// Exact tokenization is not required: the budget only has to stay safely
// under the model context window.
package tokens

import "strings"

// Estimate returns an approximate token count for text, using the
// ~1.33 tokens-per-word heuristic for English prose.
func Estimate(text string) int {
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	estimated := int(float64(words) * 1.33)
	if estimated < 1 {
		estimated = 1
	}
	return estimated
}

// Truncate cuts text down to approximately maxTokens tokens, on a word
// boundary. Text at or under the cap is returned unchanged.
func Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	if Estimate(text) <= maxTokens {
		return text
	}
	words := strings.Fields(text)
	keep := int(float64(maxTokens) / 1.33)
	if keep >= len(words) {
		return text
	}
	if keep < 1 {
		keep = 1
	}
	return strings.Join(words[:keep], " ")
}
