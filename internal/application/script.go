package application

import (
	"github.com/RaikyD/shopify-order-translator/internal/domain"
	"unicode"
)

// NeedsTranslation reports whether any field carries Devanagari text.
func NeedsTranslation(fields []domain.Field) bool {
	for _, f := range fields {
		if hasDevanagari(f.Value) {
			return true
		}
	}
	return false
}

func hasDevanagari(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Devanagari, r) {
			return true
		}
	}
	return false
}
