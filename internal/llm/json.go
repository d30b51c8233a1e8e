package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONArray pulls the first JSON array out of raw LLM output and
// unmarshals it. Models often wrap the array in prose or markdown fences, so
// everything outside the outermost brackets is discarded.
func ExtractJSONArray(content string) ([]map[string]any, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON array found in output")
	}

	var items []map[string]any
	if err := json.Unmarshal([]byte(content[start:end+1]), &items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON array: %w", err)
	}
	return items, nil
}

// CleanLine collapses a possibly multi-line answer into one trimmed line,
// stripping surrounding quotes the model sometimes adds.
func CleanLine(content string) string {
	cleaned := strings.TrimSpace(strings.ReplaceAll(content, "\n", " "))
	if len(cleaned) >= 2 && strings.HasPrefix(cleaned, `"`) && strings.HasSuffix(cleaned, `"`) {
		cleaned = cleaned[1 : len(cleaned)-1]
	}
	return strings.TrimSpace(cleaned)
}
