package format

import (
	"testing"

	"nordledger/sie-import/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected models.Format
	}{
		{"XML declaration", `<?xml version="1.0"?><Sie></Sie>`, models.FormatSIE5},
		{"Sie root without declaration", `<Sie xmlns="http://www.sie.se/sie5"></Sie>`, models.FormatSIE5},
		{"FLAGGA header", "#FLAGGA 0\n#FNAMN \"Firm\"", models.FormatSIE4},
		{"FORMAT header", "#FORMAT PC8\n", models.FormatSIE4},
		{"Account element mid-document", "some prefix\n<Account id=\"1930\"/>", models.FormatSIE5},
		{"KONTO record mid-document", "garbage first line\n#KONTO 1930 \"Bank\"", models.FormatSIE4},
		{"Leading whitespace ignored", "   \n\t#FLAGGA 0", models.FormatSIE4},
		{"Empty content", "", models.FormatUnknown},
		{"Plain text", "hello world", models.FormatUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Detect(tc.content))

			// Detection is idempotent.
			assert.Equal(t, Detect(tc.content), Detect(tc.content))
		})
	}
}

func TestDetectWithFilename(t *testing.T) {
	// Content signal wins over the extension.
	assert.Equal(t, models.FormatSIE4, DetectWithFilename("#FLAGGA 0", "export.sie"))

	// Extension decides when the content is inconclusive.
	assert.Equal(t, models.FormatSIE4, DetectWithFilename("mystery", "export.se"))
	assert.Equal(t, models.FormatSIE5, DetectWithFilename("mystery", "export.sie"))
	assert.Equal(t, models.FormatSIE4, DetectWithFilename("mystery", "EXPORT.SE"))
	assert.Equal(t, models.FormatUnknown, DetectWithFilename("mystery", "export.txt"))
	assert.Equal(t, models.FormatUnknown, DetectWithFilename("mystery", ""))
}
