package character

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/adiavolo/comic-insights/internal/domain"
)

// Normalize converts one raw item from LLM output into a Character. It
// tolerates booru_tags arriving as either a string or a list of tags and
// rejects items missing any required field by returning false.
func Normalize(raw map[string]any) (domain.Character, bool) {
	str := func(key string) string {
		v, _ := raw[key].(string)
		return strings.TrimSpace(v)
	}

	confirmed, _ := raw["confirmed"].(bool)
	c := domain.Character{
		ID:         uuid.New(),
		Name:       str("name"),
		Role:       str("role"),
		Appearance: str("appearance"),
		Source:     domain.SourceLLM,
		Confirmed:  confirmed,
	}

	switch tags := raw["booru_tags"].(type) {
	case string:
		c.BooruTags = strings.TrimSpace(tags)
	case []any:
		parts := make([]string, 0, len(tags))
		for _, t := range tags {
			if s, ok := t.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		c.BooruTags = strings.Join(parts, ", ")
	}

	if c.Name == "" || c.Role == "" || c.Appearance == "" || c.BooruTags == "" {
		log.Warn().Interface("raw", raw).Msg("Rejected invalid character")
		return domain.Character{}, false
	}

	return c, true
}

// NormalizeList filters and normalizes a raw character list, keeping only
// valid items.
func NormalizeList(raw []map[string]any) []domain.Character {
	valid := make([]domain.Character, 0, len(raw))
	for _, item := range raw {
		if c, ok := Normalize(item); ok {
			valid = append(valid, c)
		}
	}
	return valid
}
