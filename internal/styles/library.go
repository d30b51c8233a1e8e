package styles

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/adiavolo/comic-insights/internal/domain"
	"github.com/rs/zerolog/log"
)

// ErrConfig indicates missing or unparseable style configuration.
var ErrConfig = errors.New("style configuration error")

// Library holds the loaded style and aspect-ratio definitions. It is read-only
// after Load and safe for concurrent use.
type Library struct {
	baseStyles   []domain.BaseStyle
	customStyles []domain.CustomStyle
	aspectRatios []domain.AspectRatio

	baseByName   map[string]domain.BaseStyle
	customByName map[string]domain.CustomStyle
	ratioByName  map[string]domain.AspectRatio
}

type baseConfig struct {
	Styles       []domain.BaseStyle   `json:"styles"`
	AspectRatios []domain.AspectRatio `json:"aspect_ratios"`
}

// Load reads base styles and aspect ratios from a JSON file and custom styles
// from a CSV file, validating both eagerly.
func Load(basePath, customPath string) (*Library, error) {
	raw, err := os.ReadFile(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrConfig, basePath, err)
	}

	var cfg baseConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrConfig, basePath, err)
	}

	custom, err := loadCustomStyles(customPath)
	if err != nil {
		return nil, err
	}

	lib := &Library{
		baseStyles:   cfg.Styles,
		customStyles: custom,
		aspectRatios: cfg.AspectRatios,
		baseByName:   make(map[string]domain.BaseStyle, len(cfg.Styles)),
		customByName: make(map[string]domain.CustomStyle, len(custom)),
		ratioByName:  make(map[string]domain.AspectRatio, len(cfg.AspectRatios)),
	}

	for _, s := range cfg.Styles {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: base style with empty name in %s", ErrConfig, basePath)
		}
		lib.baseByName[s.Name] = s
	}
	for _, s := range custom {
		lib.customByName[s.Name] = s
	}
	for _, ar := range cfg.AspectRatios {
		if ar.Name == "" || ar.Width <= 0 || ar.Height <= 0 {
			return nil, fmt.Errorf("%w: invalid aspect ratio %q in %s", ErrConfig, ar.Name, basePath)
		}
		lib.ratioByName[ar.Name] = ar
	}

	log.Info().
		Int("base_styles", len(lib.baseStyles)).
		Int("custom_styles", len(lib.customStyles)).
		Int("aspect_ratios", len(lib.aspectRatios)).
		Msg("Loaded style library")

	return lib, nil
}

// loadCustomStyles parses the custom styles CSV. Expected header columns:
// name, prompt, negative_prompt, lora_weight (last two optional per row).
func loadCustomStyles(path string) ([]domain.CustomStyle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrConfig, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header of %s: %v", ErrConfig, path, err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	nameIdx, ok := col["name"]
	if !ok {
		return nil, fmt.Errorf("%w: %s missing required column 'name'", ErrConfig, path)
	}
	promptIdx, ok := col["prompt"]
	if !ok {
		return nil, fmt.Errorf("%w: %s missing required column 'prompt'", ErrConfig, path)
	}

	field := func(record []string, idx int, ok bool) string {
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	negIdx, hasNeg := col["negative_prompt"]
	weightIdx, hasWeight := col["lora_weight"]

	var styles []domain.CustomStyle
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrConfig, path, err)
		}

		s := domain.CustomStyle{
			Name:           field(record, nameIdx, true),
			Prompt:         field(record, promptIdx, true),
			NegativePrompt: field(record, negIdx, hasNeg),
		}
		if s.Name == "" || s.Prompt == "" {
			return nil, fmt.Errorf("%w: %s: custom style row missing name or prompt", ErrConfig, path)
		}
		if w := field(record, weightIdx, hasWeight); w != "" {
			weight, err := strconv.ParseFloat(w, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: invalid lora_weight for %q: %v", ErrConfig, path, s.Name, err)
			}
			s.LoraWeight = weight
		}
		styles = append(styles, s)
	}

	return styles, nil
}

// BaseStyleNames lists base style names in configuration order.
func (l *Library) BaseStyleNames() []string {
	names := make([]string, 0, len(l.baseStyles))
	for _, s := range l.baseStyles {
		names = append(names, s.Name)
	}
	return names
}

// CustomStyleNames lists custom style names in configuration order.
func (l *Library) CustomStyleNames() []string {
	names := make([]string, 0, len(l.customStyles))
	for _, s := range l.customStyles {
		names = append(names, s.Name)
	}
	return names
}

// AspectRatioNames lists aspect ratio names in configuration order.
func (l *Library) AspectRatioNames() []string {
	names := make([]string, 0, len(l.aspectRatios))
	for _, ar := range l.aspectRatios {
		names = append(names, ar.Name)
	}
	return names
}

// BaseStyle looks up a base style by name. An unknown name is not an error;
// callers treat it as "no overlay".
func (l *Library) BaseStyle(name string) (domain.BaseStyle, bool) {
	s, ok := l.baseByName[name]
	return s, ok
}

// CustomStyle looks up a custom style by name.
func (l *Library) CustomStyle(name string) (domain.CustomStyle, bool) {
	s, ok := l.customByName[name]
	return s, ok
}

// DefaultDimension is used when an aspect ratio name is unrecognized.
const DefaultDimension = 512

// AspectRatio returns the configured dimensions for name, falling back to a
// square DefaultDimension ratio for unknown names.
func (l *Library) AspectRatio(name string) domain.AspectRatio {
	if ar, ok := l.ratioByName[name]; ok {
		return ar
	}
	return domain.AspectRatio{Name: name, Width: DefaultDimension, Height: DefaultDimension}
}
