package application

import (
	"context"
	"errors"
	"fmt"
	"github.com/RaikyD/shopify-order-translator/internal/domain"
	"github.com/RaikyD/shopify-order-translator/internal/logger"
	"github.com/google/uuid"
	"strings"
	"time"
	"unicode/utf8"
)

const maxMetafieldKeyLen = 64

type Options struct {
	// PositionalKeys switches metafield keys from "shipping_address_city" to "field_0".
	PositionalKeys bool
	// KeepOriginalNote appends the translated note below the original instead of replacing it.
	KeepOriginalNote bool

	Log       TranslationLog
	Publisher EventPublisher
	Metrics   Metrics
}

type TranslationService struct {
	translator Translator
	writer     OrderWriter
	opts       Options
	now        func() time.Time
}

func NewTranslationService(t Translator, w OrderWriter, opts Options) *TranslationService {
	return &TranslationService{
		translator: t,
		writer:     w,
		opts:       opts,
		now:        time.Now,
	}
}

// Process runs one order through extract -> dedupe -> guard -> translate ->
// reconcile -> write. Only a missing writer is returned as an error; every
// other outcome is reported in the Result so the webhook can be acknowledged.
func (s *TranslationService) Process(ctx context.Context, o *domain.Order) (domain.Result, error) {
	if s.writer == nil || s.translator == nil {
		return domain.Result{}, ErrNotConfigured
	}

	res := s.process(ctx, o)
	if s.opts.Metrics != nil {
		s.opts.Metrics.ObserveResult(res.Status)
	}
	return res, nil
}

func (s *TranslationService) process(ctx context.Context, o *domain.Order) domain.Result {
	if o == nil || o.ID == 0 {
		return domain.Result{Status: domain.StatusIgnored, Reason: "order id missing"}
	}
	res := domain.Result{OrderID: o.ID, OrderName: o.Name}

	unique := UniqueFields(ExtractFields(o))
	if len(unique) == 0 {
		res.Status = domain.StatusIgnored
		res.Reason = "no text fields"
		return res
	}
	if !NeedsTranslation(unique) {
		res.Status = domain.StatusSkipped
		res.Reason = "no devanagari text"
		return res
	}

	translated, err := s.translator.Translate(ctx, fieldValues(unique))
	if err == nil && len(translated) != len(unique) {
		err = fmt.Errorf("%w: sent %d, got %d", domain.ErrMisaligned, len(unique), len(translated))
	}
	switch {
	case errors.Is(err, domain.ErrNoCredential):
		logger.Warn("translation skipped, no credential", "order_id", o.ID)
		res.Status = domain.StatusUntranslated
		res.Reason = err.Error()
		s.record(ctx, res)
		return res
	case err != nil:
		logger.Error("translation failed", "order_id", o.ID, "err", err)
		res.Status = domain.StatusTranslationFailed
		res.Reason = err.Error()
		s.record(ctx, res)
		return res
	}

	rec := NewReconciler(unique, translated)
	rec.keepOriginalNote = s.opts.KeepOriginalNote
	res.Status = domain.StatusTranslated
	res.Pairs = rec.Pairs()

	s.writeMetafields(ctx, o.ID, unique, rec, &res)

	patch := rec.Patch(o)
	if !patch.IsEmpty() {
		if err := s.writer.UpdateOrder(ctx, patch); err != nil {
			logger.Error("order update failed", "order_id", o.ID, "err", err)
		} else {
			res.OrderUpdated = true
		}
		if s.opts.Metrics != nil {
			s.opts.Metrics.ObserveOrderUpdate(res.OrderUpdated)
		}
	}

	s.record(ctx, res)
	return res
}

func (s *TranslationService) writeMetafields(ctx context.Context, orderID int64, unique []domain.Field, rec *Reconciler, res *domain.Result) {
	used := make(map[string]struct{}, len(unique))
	for i, f := range unique {
		t, ok := rec.Lookup(f.Value)
		if !ok {
			continue
		}
		key := s.metafieldKey(i, f.ID, used)
		for _, mf := range []domain.Metafield{
			NewMetafield(domain.NamespaceOriginal, key, f.Value),
			NewMetafield(domain.NamespaceTranslated, key, t),
		} {
			err := s.writer.CreateMetafield(ctx, orderID, mf)
			if err != nil {
				logger.Warn("metafield write failed",
					"order_id", orderID, "namespace", mf.Namespace, "key", mf.Key, "err", err)
				res.MetafieldsFailed++
			} else {
				res.MetafieldsWritten++
			}
			if s.opts.Metrics != nil {
				s.opts.Metrics.ObserveMetafield(err == nil)
			}
		}
	}
}

func (s *TranslationService) metafieldKey(i int, fieldID string, used map[string]struct{}) string {
	if s.opts.PositionalKeys {
		return fmt.Sprintf("field_%d", i)
	}
	key := MetafieldKey(fieldID)
	if _, dup := used[key]; dup {
		key = fmt.Sprintf("%s_%d", truncateRunes(key, maxMetafieldKeyLen-4), i)
	}
	used[key] = struct{}{}
	return key
}

func (s *TranslationService) record(ctx context.Context, res domain.Result) {
	if s.opts.Log == nil && s.opts.Publisher == nil {
		return
	}
	rec := domain.TranslationRecord{
		ID:           uuid.NewString(),
		OrderID:      res.OrderID,
		Status:       res.Status,
		Reason:       res.Reason,
		Pairs:        res.Pairs,
		OrderUpdated: res.OrderUpdated,
		CreatedAt:    s.now().UTC(),
	}
	if s.opts.Log != nil {
		if err := s.opts.Log.Save(ctx, rec); err != nil {
			logger.Warn("translation log save failed", "order_id", rec.OrderID, "err", err)
		}
	}
	if s.opts.Publisher != nil && rec.Status == domain.StatusTranslated {
		if err := s.opts.Publisher.PublishTranslation(ctx, rec); err != nil {
			logger.Warn("translation event publish failed", "order_id", rec.OrderID, "err", err)
		}
	}
}

// History returns the audit log for an order, newest first.
func (s *TranslationService) History(ctx context.Context, orderID int64) ([]domain.TranslationRecord, error) {
	if s.opts.Log == nil {
		return nil, ErrHistoryDisabled
	}
	return s.opts.Log.ListByOrder(ctx, orderID)
}

var ErrHistoryDisabled = errors.New("translation log disabled")

// NewMetafield builds a text metafield, truncating the value to the platform limit.
func NewMetafield(namespace, key, value string) domain.Metafield {
	typ := domain.MetafieldTypeSingleLine
	if strings.ContainsAny(value, "\r\n") {
		typ = domain.MetafieldTypeMultiLine
	}
	return domain.Metafield{
		Namespace: namespace,
		Key:       key,
		Value:     truncateRunes(value, domain.MetafieldValueLimit),
		Type:      typ,
	}
}

// MetafieldKey turns a field id such as "note_attributes.pin code" into a
// valid metafield key ("note_attributes_pin_code").
func MetafieldKey(fieldID string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(fieldID) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	key := b.String()
	for len(key) < 2 {
		key += "_"
	}
	return truncateRunes(key, maxMetafieldKeyLen)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
