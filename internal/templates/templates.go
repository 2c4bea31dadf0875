// Package templates serves the built-in industry templates used to pre-fill
// business info.
package templates

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/customer-avatar-agent/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var embeddedTemplates []byte

type Library struct {
	templates []models.IndustryTemplate
}

// Load parses the templates baked into the binary.
func Load() (*Library, error) {
	return Parse(embeddedTemplates)
}

// Parse builds a library from a YAML list of templates. Ids must be unique.
func Parse(data []byte) (*Library, error) {
	var list []models.IndustryTemplate
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse industry templates: %w", err)
	}

	seen := make(map[string]bool, len(list))
	for _, t := range list {
		if t.ID == "" {
			return nil, fmt.Errorf("industry template %q has no id", t.Name)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("duplicate industry template id %q", t.ID)
		}
		seen[t.ID] = true
	}
	return &Library{templates: list}, nil
}

func (l *Library) All() []models.IndustryTemplate {
	return append([]models.IndustryTemplate(nil), l.templates...)
}

func (l *Library) ByID(id string) (models.IndustryTemplate, bool) {
	for _, t := range l.templates {
		if t.ID == id {
			return t, true
		}
	}
	return models.IndustryTemplate{}, false
}

// ByIndustry matches the query case-insensitively against each template's
// industry and name.
func (l *Library) ByIndustry(query string) []models.IndustryTemplate {
	q := strings.ToLower(query)
	matches := []models.IndustryTemplate{}
	for _, t := range l.templates {
		if strings.Contains(strings.ToLower(t.Industry), q) || strings.Contains(strings.ToLower(t.Name), q) {
			matches = append(matches, t)
		}
	}
	return matches
}

// Industries lists each distinct industry once, in template order.
func (l *Library) Industries() []string {
	seen := make(map[string]bool)
	industries := []string{}
	for _, t := range l.templates {
		if !seen[t.Industry] {
			seen[t.Industry] = true
			industries = append(industries, t.Industry)
		}
	}
	return industries
}
