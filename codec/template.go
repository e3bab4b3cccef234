package codec

import (
	"fmt"
	"regexp"
	"strings"

	"vitrina-tech/models"
)

// Template grammar:
//
//	template := model " [" cpu "/" ram "/" gpu "/" display "/" storage "] [" color "]"
//
// The model may contain spaces but never a bracket; the five spec tokens are
// joined by "/" and never contain brackets; the color is bracket-free text.
var templateRegex = regexp.MustCompile(`^\s*([^\[\]]+?)\s*\[([^\[\]]+)\]\s*\[([^\[\]]+)\]\s*$`)

// Generator builds template strings from catalog records
type Generator struct {
	abbreviator *Abbreviator
}

// NewGenerator creates a new Generator
func NewGenerator(abbreviator *Abbreviator) *Generator {
	return &Generator{
		abbreviator: abbreviator,
	}
}

// Generate builds the compact template string for one model, configuration
// and color. Pure function of its inputs; no I/O.
func (g *Generator) Generate(model string, config models.Configuration, color string) string {
	tokens := []string{
		g.abbreviator.Abbreviate(config.Processor, AttrProcessor),
		g.abbreviator.Abbreviate(config.Memory, AttrMemory),
		g.abbreviator.Abbreviate(config.Graphics, AttrGraphics),
		g.abbreviator.Abbreviate(config.Display, AttrDisplay),
		g.abbreviator.Abbreviate(config.Storage, AttrStorage),
	}
	return fmt.Sprintf("%s [%s] [%s]", strings.TrimSpace(model), strings.Join(tokens, "/"), strings.TrimSpace(color))
}

// Parse splits a template string into its structural parts. A nil result
// means the string does not follow the grammar (missing bracket, wrong token
// count); that is an expected condition for hand-edited input, not an error.
func Parse(template string) *models.ParsedTemplate {
	matches := templateRegex.FindStringSubmatch(template)
	if matches == nil {
		return nil
	}

	tokens := strings.Split(matches[2], "/")
	if len(tokens) != 5 {
		return nil
	}

	parsed := &models.ParsedTemplate{
		Model: strings.TrimSpace(matches[1]),
		Color: strings.TrimSpace(matches[3]),
	}
	for i, token := range tokens {
		parsed.Tokens[i] = strings.TrimSpace(token)
	}

	// An empty model or empty token makes the template unusable for lookup
	if parsed.Model == "" {
		return nil
	}
	for _, token := range parsed.Tokens {
		if token == "" {
			return nil
		}
	}
	return parsed
}
