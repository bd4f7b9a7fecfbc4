package application

import (
	"github.com/RaikyD/shopify-order-translator/internal/domain"
	"strings"
)

// UniqueFields drops fields whose trimmed text was already seen.
// Comparison is case-sensitive; the kept values are trimmed.
func UniqueFields(fields []domain.Field) []domain.Field {
	seen := make(map[string]struct{}, len(fields))
	out := make([]domain.Field, 0, len(fields))
	for _, f := range fields {
		v := strings.TrimSpace(f.Value)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, domain.Field{ID: f.ID, Value: v})
	}
	return out
}

func fieldValues(fields []domain.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Value
	}
	return out
}
