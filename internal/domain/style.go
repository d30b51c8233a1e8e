package domain

// BaseStyle is a named, predefined visual style. PromptAdd is appended to the
// user prompt; Lora entries are model weight tags forwarded to the image
// backend verbatim.
type BaseStyle struct {
	Name           string   `json:"name"`
	PromptAdd      string   `json:"prompt_add"`
	NegativePrompt string   `json:"negative_prompt,omitempty"`
	Lora           []string `json:"lora,omitempty"`
}

// CustomStyle is an optional overlay combined with a base style. Prompt may
// contain a {prompt} placeholder which is substituted with the user prompt
// during composition.
type CustomStyle struct {
	Name           string  `json:"name"`
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negative_prompt,omitempty"`
	LoraWeight     float64 `json:"lora_weight,omitempty"`
}

// AspectRatio is a named width/height pair used to derive panel dimensions.
type AspectRatio struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}
