package codec

import (
	"log"
	"regexp"
	"strings"
	"sync"
)

// AttributeType identifies which abbreviation rules apply to a value
type AttributeType string

const (
	AttrProcessor AttributeType = "processor"
	AttrMemory    AttributeType = "memory"
	AttrGraphics  AttributeType = "graphics"
	AttrDisplay   AttributeType = "display"
	AttrStorage   AttributeType = "storage"
)

// Precompiled patterns for abbreviation extraction
var (
	// Intel Core processors: "Intel Core i7-12700H (16 CPUs), ~2.3GHz" -> "i7-12700H".
	// The suffix class mixes letters and digits so models like i5-1135G7
	// match whole.
	intelCoreRegex = regexp.MustCompile(`(?i)\b(i[3579]-[0-9][0-9A-Za-z]*)\b`)

	// AMD Ryzen processors: "AMD Ryzen 7 4800H (16 CPUs), ~2.9GHz" -> "Ryzen 7 4800H"
	ryzenRegex = regexp.MustCompile(`(?i)\b(Ryzen\s+[0-9]\s+[0-9A-Za-z]+)\b`)

	// Trailing qualifier words on chip-style names: "Apple M2 Pro chip" -> "Apple M2 Pro"
	chipQualifierRegex = regexp.MustCompile(`(?i)\s+(chip|processor|cpu)\s*$`)

	// NVIDIA series: "NVIDIA GeForce RTX 4060 8GB" -> "RTX 4060"
	nvidiaRegex = regexp.MustCompile(`(?i)\b((?:RTX|GTX|MX)\s*[0-9]+(?:\s*(?:Ti|SUPER))?)\b`)

	// AMD Radeon series: "AMD Radeon RX 6600M 8GB" -> "RX 6600M"
	radeonRXRegex = regexp.MustCompile(`(?i)\b(RX\s+[0-9A-Za-z]+)\b`)
	radeonRegex   = regexp.MustCompile(`(?i)\b(Radeon\s+(?:Graphics|Vega\s*[0-9]*|[0-9A-Za-z]+))\b`)

	// Intel integrated graphics: "Intel Iris Xe Graphics" -> "Iris Xe"
	intelGfxRegex = regexp.MustCompile(`(?i)\b(Iris\s+Xe|UHD|Arc\s+[0-9A-Za-z]+)\b`)

	// Trailing memory-size suffix on graphics: " 8GB", " 12 GB"
	gfxMemoryRegex = regexp.MustCompile(`(?i)\s+[0-9]+\s*GB\s*$`)

	// Refresh rate token: "15.6-inch FHD (144Hz)" -> "144Hz"
	refreshRateRegex = regexp.MustCompile(`(?i)\b([0-9]+\s*Hz)\b`)
)

// Panel technology keywords checked in preference order when a display has
// no refresh-rate token
var panelKeywords = []string{"OLED", "QHD", "UHD", "FHD", "IPS", "Retina", "Touch"}

// Abbreviator compresses full attribute values into short template tokens.
// Abbreviation is deterministic and pure; results are memoized per
// (attribute type, value) because the cache build abbreviates the same
// values once per configuration.
type Abbreviator struct {
	mu    sync.Mutex
	cache map[cacheKey]string

	fallbackMu    sync.Mutex
	fallbackCount map[AttributeType]int
}

type cacheKey struct {
	attrType AttributeType
	value    string
}

// NewAbbreviator creates a new Abbreviator
func NewAbbreviator() *Abbreviator {
	return &Abbreviator{
		cache:         make(map[cacheKey]string),
		fallbackCount: make(map[AttributeType]int),
	}
}

// Abbreviate compresses a full attribute value into its template token.
// If the value matches none of the expected patterns for its type, the
// value is returned unchanged so that no input can ever fail to encode.
func (a *Abbreviator) Abbreviate(value string, attrType AttributeType) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	key := cacheKey{attrType: attrType, value: trimmed}
	a.mu.Lock()
	if token, exists := a.cache[key]; exists {
		a.mu.Unlock()
		return token
	}
	a.mu.Unlock()

	token := a.abbreviate(trimmed, attrType)

	a.mu.Lock()
	a.cache[key] = token
	a.mu.Unlock()

	return token
}

func (a *Abbreviator) abbreviate(value string, attrType AttributeType) string {
	switch attrType {
	case AttrProcessor:
		return a.abbreviateProcessor(value)
	case AttrGraphics:
		return a.abbreviateGraphics(value)
	case AttrDisplay:
		return a.abbreviateDisplay(value)
	case AttrMemory, AttrStorage:
		// Already compact, passed through unchanged
		return value
	default:
		return value
	}
}

// abbreviateProcessor extracts a family+model fragment from a processor name
func (a *Abbreviator) abbreviateProcessor(value string) string {
	if match := intelCoreRegex.FindString(value); match != "" {
		return match
	}
	if match := ryzenRegex.FindString(value); match != "" {
		return normalizeSpaces(match)
	}
	// Chip-style names (Apple Silicon, Snapdragon) drop the trailing
	// qualifier word
	if chipQualifierRegex.MatchString(value) {
		return strings.TrimSpace(chipQualifierRegex.ReplaceAllString(value, ""))
	}
	return a.recordFallback(value, AttrProcessor)
}

// abbreviateGraphics extracts a vendor-series+model fragment, dropping any
// trailing memory-size suffix
func (a *Abbreviator) abbreviateGraphics(value string) string {
	stripped := gfxMemoryRegex.ReplaceAllString(value, "")

	if match := nvidiaRegex.FindString(stripped); match != "" {
		return normalizeSpaces(match)
	}
	if match := radeonRXRegex.FindString(stripped); match != "" {
		return normalizeSpaces(match)
	}
	if match := intelGfxRegex.FindString(stripped); match != "" {
		return normalizeSpaces(match)
	}
	if match := radeonRegex.FindString(stripped); match != "" {
		return normalizeSpaces(match)
	}
	return a.recordFallback(value, AttrGraphics)
}

// abbreviateDisplay extracts the most distinguishing display fragment:
// refresh rate first, then panel technology keyword, then the full string
func (a *Abbreviator) abbreviateDisplay(value string) string {
	if match := refreshRateRegex.FindString(value); match != "" {
		return strings.ReplaceAll(match, " ", "")
	}
	upper := strings.ToUpper(value)
	for _, keyword := range panelKeywords {
		if strings.Contains(upper, strings.ToUpper(keyword)) {
			return keyword
		}
	}
	return a.recordFallback(value, AttrDisplay)
}

// recordFallback makes the identity fallback observable without turning it
// into a failure: new catalog entries with unrecognized value shapes still
// encode (as themselves) and still resolve via substring containment, but
// the gap shows up in the logs and the counter.
func (a *Abbreviator) recordFallback(value string, attrType AttributeType) string {
	a.fallbackMu.Lock()
	a.fallbackCount[attrType]++
	a.fallbackMu.Unlock()

	log.Printf("ℹ️  Abbreviator: no %s pattern matched %q, passing through unchanged", attrType, value)
	return value
}

// FallbackCounts returns how many distinct abbreviation calls fell back to
// identity, per attribute type. Memoized repeats do not re-count.
func (a *Abbreviator) FallbackCounts() map[AttributeType]int {
	a.fallbackMu.Lock()
	defer a.fallbackMu.Unlock()

	counts := make(map[AttributeType]int, len(a.fallbackCount))
	for attrType, count := range a.fallbackCount {
		counts[attrType] = count
	}
	return counts
}

// normalizeSpaces collapses runs of whitespace to single spaces
func normalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
