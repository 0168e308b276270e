// Package format detects which SIE dialect a raw document uses.
package format

import (
	"strings"

	"nordledger/sie-import/internal/models"
)

// Detect classifies already-decoded content as SIE4, SIE5 or unknown.
// It has no side effects and never fails; absence of a confident match is
// itself a valid result.
func Detect(content string) models.Format {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return models.FormatUnknown
	}

	if strings.HasPrefix(trimmed, "<?xml") || strings.HasPrefix(trimmed, "<Sie") {
		return models.FormatSIE5
	}
	if strings.HasPrefix(trimmed, "#FLAGGA") || strings.HasPrefix(trimmed, "#FORMAT") {
		return models.FormatSIE4
	}

	// No conclusive header; scan for characteristic record markers.
	if strings.Contains(trimmed, "<Account") || strings.Contains(trimmed, "<Voucher") {
		return models.FormatSIE5
	}
	if strings.Contains(trimmed, "#KONTO") || strings.Contains(trimmed, "#VER") {
		return models.FormatSIE4
	}

	return models.FormatUnknown
}

// DetectWithFilename runs Detect and, when the content alone is inconclusive,
// consults the filename extension as a secondary signal (.se is the customary
// SIE4 extension, .sie the SIE5 one).
func DetectWithFilename(content, filename string) models.Format {
	if detected := Detect(content); detected != models.FormatUnknown {
		return detected
	}

	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".se"):
		return models.FormatSIE4
	case strings.HasSuffix(lower, ".sie"):
		return models.FormatSIE5
	}
	return models.FormatUnknown
}
