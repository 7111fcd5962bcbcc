// File: internal/utils/formatters.go

package utils

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// FormatScorePercent renders a relevance score in [0,1] as a percentage with one decimal
func FormatScorePercent(score float64) string {
	if math.IsNaN(score) {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", score*100)
}

// TruncateWithEllipsis cuts text to at most maxRunes runes, adding an ellipsis if needed.
// A maxRunes of zero or less disables truncation.
func TruncateWithEllipsis(text string, maxRunes int) string {
	runes := []rune(text)
	if maxRunes <= 0 || len(runes) <= maxRunes {
		return text
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}

	// Find a good breakpoint to avoid cutting words in the middle
	breakPoint := maxRunes - 3 // Reserve space for ellipsis
	for i := breakPoint; i > breakPoint-20 && i > 0; i-- {
		if unicode.IsSpace(runes[i]) || strings.ContainsRune(",.，。；;", runes[i]) {
			breakPoint = i
			break
		}
	}

	return strings.TrimRightFunc(string(runes[:breakPoint]), unicode.IsSpace) + "..."
}
