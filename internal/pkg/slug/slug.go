package slug

import (
	"strings"
	"unicode"
)

// Make converts a vendor display name into a URL-safe slug: lowercase,
// whitespace collapsed to single hyphens, everything outside ASCII word
// characters dropped. Arabic characters (U+0600..U+06FF) are kept so Arabic
// store names still produce readable public URLs.
func Make(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))

	var b strings.Builder
	hyphen := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r) || r == '-':
			if !hyphen {
				b.WriteRune('-')
				hyphen = true
			}
		case isWord(r) || isArabic(r):
			b.WriteRune(r)
			hyphen = false
		}
	}

	return strings.Trim(b.String(), "-")
}

func isWord(r rune) bool {
	return r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z')
}

func isArabic(r rune) bool {
	return r >= 0x0600 && r <= 0x06FF
}
