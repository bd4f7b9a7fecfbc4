package application

import (
	"context"
	"errors"
	"github.com/RaikyD/shopify-order-translator/internal/domain"
)

var ErrNotConfigured = errors.New("order writer not configured")

// Translator translates a batch of strings. The result is index-aligned with texts.
type Translator interface {
	Translate(ctx context.Context, texts []string) ([]string, error)
}

// OrderWriter persists translations on the commerce platform.
type OrderWriter interface {
	CreateMetafield(ctx context.Context, orderID int64, mf domain.Metafield) error
	UpdateOrder(ctx context.Context, patch domain.OrderPatch) error
}

type TranslationLog interface {
	Save(ctx context.Context, rec domain.TranslationRecord) error
	ListByOrder(ctx context.Context, orderID int64) ([]domain.TranslationRecord, error)
}

type EventPublisher interface {
	PublishTranslation(ctx context.Context, rec domain.TranslationRecord) error
}

type Metrics interface {
	ObserveResult(status domain.Status)
	ObserveMetafield(ok bool)
	ObserveOrderUpdate(ok bool)
}
