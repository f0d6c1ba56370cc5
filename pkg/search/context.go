package search

// ABOUTME: Token-budgeted context builder for search results
// ABOUTME: Tokens are approximated as four bytes of encoded JSON each

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EstimateTokens approximates the token count of s.
func EstimateTokens(s string) int {
	return (len(s) + 3) / 4
}

// BuildContext keeps leading items while their encoded size fits in
// maxTokens and renders the kept items as a JSON array.
func BuildContext(items []ContextItem, maxTokens int) (string, error) {
	kept := make([]ContextItem, 0, len(items))
	used := 0
	for _, item := range items {
		encoded, err := encode(item)
		if err != nil {
			return "", err
		}
		cost := EstimateTokens(encoded)
		if used+cost > maxTokens {
			break
		}
		kept = append(kept, item)
		used += cost
	}
	return encode(kept)
}

// encode marshals v without HTML escaping, so URLs keep their & and <.
func encode(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode search context: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
