package application

import (
	"context"
	"errors"
	"github.com/RaikyD/shopify-order-translator/internal/domain"
)

type fakeTranslator struct {
	calls [][]string
	fn    func(texts []string) ([]string, error)
}

func (f *fakeTranslator) Translate(_ context.Context, texts []string) ([]string, error) {
	f.calls = append(f.calls, append([]string(nil), texts...))
	if f.fn == nil {
		return nil, errors.New("no translation configured")
	}
	return f.fn(texts)
}

// dictTranslator translates through a fixed dictionary and echoes unknown text.
func dictTranslator(dict map[string]string) *fakeTranslator {
	return &fakeTranslator{fn: func(texts []string) ([]string, error) {
		out := make([]string, len(texts))
		for i, t := range texts {
			if v, ok := dict[t]; ok {
				out[i] = v
			} else {
				out[i] = t
			}
		}
		return out, nil
	}}
}

type fakeWriter struct {
	metafields   []domain.Metafield
	updates      []domain.OrderPatch
	failMetaKeys map[string]bool
	updateErr    error
}

func (f *fakeWriter) CreateMetafield(_ context.Context, _ int64, mf domain.Metafield) error {
	if f.failMetaKeys[mf.Namespace+"."+mf.Key] {
		return errors.New("metafield rejected")
	}
	f.metafields = append(f.metafields, mf)
	return nil
}

func (f *fakeWriter) UpdateOrder(_ context.Context, p domain.OrderPatch) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, p)
	return nil
}

type fakeLog struct {
	saved []domain.TranslationRecord
}

func (f *fakeLog) Save(_ context.Context, rec domain.TranslationRecord) error {
	f.saved = append(f.saved, rec)
	return nil
}

func (f *fakeLog) ListByOrder(_ context.Context, orderID int64) ([]domain.TranslationRecord, error) {
	var out []domain.TranslationRecord
	for _, r := range f.saved {
		if r.OrderID == orderID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakePublisher struct {
	events []domain.TranslationRecord
}

func (f *fakePublisher) PublishTranslation(_ context.Context, rec domain.TranslationRecord) error {
	f.events = append(f.events, rec)
	return nil
}

type fakeMetrics struct {
	results     map[domain.Status]int
	metaOK      int
	metaFailed  int
	updateCalls int
}

func (f *fakeMetrics) ObserveResult(s domain.Status) {
	if f.results == nil {
		f.results = map[domain.Status]int{}
	}
	f.results[s]++
}

func (f *fakeMetrics) ObserveMetafield(ok bool) {
	if ok {
		f.metaOK++
	} else {
		f.metaFailed++
	}
}

func (f *fakeMetrics) ObserveOrderUpdate(bool) { f.updateCalls++ }
