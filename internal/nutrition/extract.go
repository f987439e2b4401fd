package nutrition

import (
	"strconv"
	"strings"
)

// Extract runs every field's patterns over the raw text and returns the
// corrected value per matched field. Fields with no match are simply
// absent; they are never defaulted to zero. The transformation is pure
// and deterministic.
func Extract(text string) map[FieldKind]float64 {
	result := make(map[FieldKind]float64)

	for _, spec := range fieldSpecs {
		for _, pattern := range spec.patterns {
			m := pattern.FindStringSubmatch(text)
			if m == nil || m[1] == "" {
				continue
			}
			raw, ok := parseNumber(m[1])
			if !ok {
				continue
			}
			result[spec.kind] = correctValue(raw, spec.kind)
			break
		}
	}

	return result
}

// parseNumber cleans a captured numeral. With both separators present
// the comma is a thousands separator and is stripped; a lone comma is a
// decimal separator.
func parseNumber(s string) (float64, bool) {
	cleaned := strings.Join(strings.Fields(s), "")
	if cleaned == "" {
		return 0, false
	}
	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")
	switch {
	case hasComma && hasDot:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case hasComma:
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
