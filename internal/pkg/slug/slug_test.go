package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "My Store", "my-store"},
		{"trims and lowers", "  Corner Shop  ", "corner-shop"},
		{"collapses whitespace", "big   summer    sale", "big-summer-sale"},
		{"strips punctuation", "Ahmed's Shop!", "ahmeds-shop"},
		{"keeps digits and underscores", "store_24 7", "store_24-7"},
		{"collapses hyphen runs", "a -- b", "a-b"},
		{"trims hyphens", "-edge case-", "edge-case"},
		{"arabic preserved", "متجر أحمد", "متجر-أحمد"},
		{"arabic mixed with latin", "سوق Online", "سوق-online"},
		{"drops non-arabic unicode", "café münchen", "caf-mnchen"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}
