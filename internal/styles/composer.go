package styles

import "strings"

const fragmentSeparator = ", "

// PromptPlaceholder in a custom style's prompt text is replaced with the
// user's raw prompt during composition.
const PromptPlaceholder = "{prompt}"

// BuildPrompt combines the user prompt, the base style's addition, and the
// selected custom style overlays into the final prompt and the aggregated
// negative prompt.
//
// Overlay order follows the caller's selection order. Unmatched custom style
// names are skipped: overlay resolution is best-effort by policy. An unknown
// base style contributes no addition.
func (l *Library) BuildPrompt(prompt, baseStyleName string, customStyleNames []string) (string, string) {
	parts := []string{prompt}
	var negatives []string

	if base, ok := l.BaseStyle(baseStyleName); ok && base.PromptAdd != "" {
		parts = append(parts, base.PromptAdd)
	}

	for _, name := range customStyleNames {
		custom, ok := l.CustomStyle(name)
		if !ok {
			continue
		}
		fragment := strings.ReplaceAll(custom.Prompt, PromptPlaceholder, prompt)
		if fragment != "" {
			parts = append(parts, fragment)
		}
		if custom.NegativePrompt != "" {
			negatives = append(negatives, custom.NegativePrompt)
		}
	}

	return strings.Join(parts, fragmentSeparator), strings.Join(negatives, fragmentSeparator)
}
