package nutrition

import (
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var trailing9 = regexp.MustCompile(`\.\d*9$`)

// correctValue applies plausibility-based correction to a parsed value.
// OCR text tends to lose decimal points and invent trailing digits;
// both fixes here are best-effort guesses tuned on real labels.
func correctValue(value float64, kind FieldKind) float64 {
	spec := specByKind[kind]

	value = round2(value)

	// A stray trailing 9 after the decimal point is a common OCR
	// artifact: 4.29 was probably 4.2, 5.09 probably 5.0.
	str := formatFloat(value)
	if trailing9.MatchString(str) {
		if v, err := strconv.ParseFloat(str[:len(str)-1], 64); err == nil {
			log.Printf("nutrition: dropped trailing 9 for %s: %v -> %v", kind, value, v)
			value = v
		}
	}

	// Over the plausible maximum the decimal point was most likely
	// lost. Try every insertion position and keep the best-scoring
	// in-range candidate.
	if value > spec.max {
		digits := strconv.Itoa(int(math.Round(value)))
		best := value
		bestScore := -1

		for i := 1; i < len(digits); i++ {
			candidate, err := strconv.ParseFloat(digits[:i]+"."+digits[i:], 64)
			if err != nil || candidate < spec.min || candidate > spec.max {
				continue
			}
			score := spec.defScore
			for _, b := range spec.bands {
				if candidate >= b.lo && candidate <= b.hi {
					score = b.score
					break
				}
			}
			// Clean short decimals (54 or 5.4 rather than 2.89) get a
			// small bonus.
			if len(decimalDigits(candidate)) <= 1 {
				score += 5
			}
			if score > bestScore {
				bestScore = score
				best = candidate
			}
		}

		if best != value {
			log.Printf("nutrition: reinserted decimal point for %s: %v -> %v (score %d)", kind, value, best, bestScore)
			value = best
		} else {
			corrected := value
			for attempts := 0; corrected > spec.max && attempts < 3; attempts++ {
				corrected /= 10
			}
			if corrected >= spec.min && corrected <= spec.max {
				log.Printf("nutrition: divided %s: %v -> %v", kind, value, corrected)
				value = corrected
			}
		}
	}

	return round2(value)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// formatFloat renders the shortest exact representation, matching how
// candidates are scored (trailing zeros never survive).
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func decimalDigits(v float64) string {
	s := formatFloat(v)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return strings.TrimRight(s[i+1:], "0")
	}
	return ""
}
