package application

import (
	"context"
	"errors"
	"fmt"
	"github.com/RaikyD/shopify-order-translator/internal/domain"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func hindiOrder() *domain.Order {
	return &domain.Order{
		ID:           820982911946154508,
		Name:         "#1001",
		Customer:     &domain.Customer{FirstName: "राहुल", LastName: "शर्मा"},
		ShippingAddr: &domain.Address{Name: "राहुल शर्मा", City: "गुडगाँव", Province: "हरियाणा", Country: "India"},
		BillingAddr:  &domain.Address{City: "गुडगाँव", Province: "हरियाणा", Country: "India"},
	}
}

var hindiDict = map[string]string{
	"राहुल":   "Rahul",
	"शर्मा":   "Sharma",
	"गुडगाँव": "Gurugram",
	"हरियाणा": "Haryana",
}

func TestProcessSkipsEnglishOrder(t *testing.T) {
	tr := dictTranslator(nil)
	w := &fakeWriter{}
	m := &fakeMetrics{}
	svc := NewTranslationService(tr, w, Options{Metrics: m})

	res, err := svc.Process(context.Background(), &domain.Order{
		ID:           7,
		Customer:     &domain.Customer{FirstName: "Rahul"},
		ShippingAddr: &domain.Address{City: "Gurugram"},
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusSkipped, res.Status)
	require.Empty(t, tr.calls)
	require.Empty(t, w.metafields)
	require.Empty(t, w.updates)
	require.Equal(t, 1, m.results[domain.StatusSkipped])
}

func TestProcessMissingOrderID(t *testing.T) {
	tr := dictTranslator(hindiDict)
	w := &fakeWriter{}
	svc := NewTranslationService(tr, w, Options{})

	o := hindiOrder()
	o.ID = 0
	res, err := svc.Process(context.Background(), o)
	require.NoError(t, err)
	require.Equal(t, domain.StatusIgnored, res.Status)
	require.Empty(t, tr.calls)
	require.Empty(t, w.metafields)
	require.Empty(t, w.updates)
}

func TestProcessNoFields(t *testing.T) {
	svc := NewTranslationService(dictTranslator(nil), &fakeWriter{}, Options{})
	res, err := svc.Process(context.Background(), &domain.Order{ID: 3})
	require.NoError(t, err)
	require.Equal(t, domain.StatusIgnored, res.Status)
}

func TestProcessNotConfigured(t *testing.T) {
	svc := NewTranslationService(dictTranslator(nil), nil, Options{})
	_, err := svc.Process(context.Background(), hindiOrder())
	require.True(t, errors.Is(err, ErrNotConfigured))
}

func TestProcessTranslatesDuplicatesOnce(t *testing.T) {
	tr := dictTranslator(hindiDict)
	w := &fakeWriter{}
	log := &fakeLog{}
	pub := &fakePublisher{}
	svc := NewTranslationService(tr, w, Options{Log: log, Publisher: pub})

	res, err := svc.Process(context.Background(), hindiOrder())
	require.NoError(t, err)
	require.Equal(t, domain.StatusTranslated, res.Status)
	require.Equal(t, "#1001", res.OrderName)

	require.Len(t, tr.calls, 1)
	require.Equal(t, []string{"राहुल", "शर्मा", "गुडगाँव", "हरियाणा", "India"}, tr.calls[0])

	require.Len(t, w.updates, 1)
	p := w.updates[0]
	require.Equal(t, &domain.Address{Name: "Rahul Sharma", City: "Gurugram", Province: "Haryana", Country: "India"}, p.ShippingAddr)
	require.Equal(t, &domain.Address{City: "Gurugram", Province: "Haryana", Country: "India"}, p.BillingAddr)
	require.True(t, res.OrderUpdated)

	require.Equal(t, 10, res.MetafieldsWritten)
	require.Equal(t, domain.Metafield{
		Namespace: domain.NamespaceOriginal,
		Key:       "shipping_address_city",
		Value:     "गुडगाँव",
		Type:      domain.MetafieldTypeSingleLine,
	}, w.metafields[4])
	require.Equal(t, "Gurugram", w.metafields[5].Value)
	require.Equal(t, domain.NamespaceTranslated, w.metafields[5].Namespace)

	require.Len(t, log.saved, 1)
	require.Equal(t, res.OrderID, log.saved[0].OrderID)
	require.NotEmpty(t, log.saved[0].ID)
	require.Len(t, pub.events, 1)

	history, err := svc.History(context.Background(), res.OrderID)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestProcessPositionalKeys(t *testing.T) {
	w := &fakeWriter{}
	svc := NewTranslationService(dictTranslator(hindiDict), w, Options{PositionalKeys: true})

	_, err := svc.Process(context.Background(), hindiOrder())
	require.NoError(t, err)
	var keys []string
	for _, mf := range w.metafields {
		if mf.Namespace == domain.NamespaceOriginal {
			keys = append(keys, mf.Key)
		}
	}
	require.Equal(t, []string{"field_0", "field_1", "field_2", "field_3", "field_4"}, keys)
}

func TestProcessShortResponseMakesNoWrites(t *testing.T) {
	tr := &fakeTranslator{fn: func(texts []string) ([]string, error) {
		return []string{"Rahul"}, nil
	}}
	w := &fakeWriter{}
	log := &fakeLog{}
	svc := NewTranslationService(tr, w, Options{Log: log})

	res, err := svc.Process(context.Background(), hindiOrder())
	require.NoError(t, err)
	require.Equal(t, domain.StatusTranslationFailed, res.Status)
	require.Contains(t, res.Reason, domain.ErrMisaligned.Error())
	require.Empty(t, w.updates)
	require.Empty(t, w.metafields)
	require.Len(t, log.saved, 1)
}

func TestProcessProviderError(t *testing.T) {
	tr := &fakeTranslator{fn: func([]string) ([]string, error) {
		return nil, fmt.Errorf("google: status 403")
	}}
	w := &fakeWriter{}
	svc := NewTranslationService(tr, w, Options{})

	res, err := svc.Process(context.Background(), hindiOrder())
	require.NoError(t, err)
	require.Equal(t, domain.StatusTranslationFailed, res.Status)
	require.Empty(t, w.updates)
	require.Empty(t, w.metafields)
}

func TestProcessNoCredential(t *testing.T) {
	tr := &fakeTranslator{fn: func([]string) ([]string, error) {
		return nil, domain.ErrNoCredential
	}}
	w := &fakeWriter{}
	pub := &fakePublisher{}
	svc := NewTranslationService(tr, w, Options{Publisher: pub})

	res, err := svc.Process(context.Background(), hindiOrder())
	require.NoError(t, err)
	require.Equal(t, domain.StatusUntranslated, res.Status)
	require.Empty(t, w.updates)
	require.Empty(t, w.metafields)
	require.Empty(t, pub.events)
}

func TestProcessMetafieldFailureContinues(t *testing.T) {
	w := &fakeWriter{failMetaKeys: map[string]bool{"original_text.customer_first_name": true}}
	m := &fakeMetrics{}
	svc := NewTranslationService(dictTranslator(hindiDict), w, Options{Metrics: m})

	res, err := svc.Process(context.Background(), hindiOrder())
	require.NoError(t, err)
	require.Equal(t, 1, res.MetafieldsFailed)
	require.Equal(t, 9, res.MetafieldsWritten)
	require.Equal(t, 1, m.metaFailed)
	require.Len(t, w.updates, 1)
}

func TestProcessUpdateFailureStillAcknowledged(t *testing.T) {
	w := &fakeWriter{updateErr: errors.New("shopify: 422")}
	m := &fakeMetrics{}
	svc := NewTranslationService(dictTranslator(hindiDict), w, Options{Metrics: m})

	res, err := svc.Process(context.Background(), hindiOrder())
	require.NoError(t, err)
	require.Equal(t, domain.StatusTranslated, res.Status)
	require.False(t, res.OrderUpdated)
	require.Equal(t, 1, m.updateCalls)
	require.Equal(t, 1, m.results[domain.StatusTranslated])
}

func TestProcessWithoutShippingAddress(t *testing.T) {
	w := &fakeWriter{}
	svc := NewTranslationService(dictTranslator(map[string]string{
		"राहुल": "Rahul", "शर्मा": "Sharma", "जल्दी": "Quickly",
	}), w, Options{})

	res, err := svc.Process(context.Background(), &domain.Order{
		ID:       9,
		Customer: &domain.Customer{FirstName: "राहुल", LastName: "शर्मा"},
		Note:     "जल्दी",
	})
	require.NoError(t, err)
	require.True(t, res.OrderUpdated)
	require.Len(t, w.updates, 1)
	require.Nil(t, w.updates[0].ShippingAddr)
	require.Nil(t, w.updates[0].BillingAddr)
	require.Equal(t, "Quickly", w.updates[0].Note)
}

func TestProcessKeepOriginalNote(t *testing.T) {
	w := &fakeWriter{}
	svc := NewTranslationService(dictTranslator(map[string]string{"जल्दी भेजें": "Send quickly"}), w,
		Options{KeepOriginalNote: true})

	o := &domain.Order{ID: 11, Note: "जल्दी भेजें"}
	_, err := svc.Process(context.Background(), o)
	require.NoError(t, err)
	require.Len(t, w.updates, 1)
	want := "जल्दी भेजें\n\n--- AUTO TRANSLATED (ENGLISH) ---\n\nSend quickly"
	require.Equal(t, want, w.updates[0].Note)

	// a second delivery of the already updated order rewrites the same note
	o.Note = want
	_, err = svc.Process(context.Background(), o)
	require.NoError(t, err)
	require.Len(t, w.updates, 2)
	require.Equal(t, want, w.updates[1].Note)
	require.Equal(t, "जल्दी भेजें", w.metafields[len(w.metafields)-2].Value)
}

func TestProcessNoUpdateWhenPatchEmpty(t *testing.T) {
	tr := &fakeTranslator{fn: func(texts []string) ([]string, error) {
		return make([]string, len(texts)), nil
	}}
	w := &fakeWriter{}
	svc := NewTranslationService(tr, w, Options{})

	res, err := svc.Process(context.Background(), hindiOrder())
	require.NoError(t, err)
	require.Equal(t, domain.StatusTranslated, res.Status)
	require.Empty(t, w.updates)
	require.Empty(t, w.metafields)
}

func TestHistoryDisabled(t *testing.T) {
	svc := NewTranslationService(dictTranslator(nil), &fakeWriter{}, Options{})
	_, err := svc.History(context.Background(), 1)
	require.True(t, errors.Is(err, ErrHistoryDisabled))
}

func TestNewMetafieldTruncates(t *testing.T) {
	long := strings.Repeat("अ", 300)
	mf := NewMetafield(domain.NamespaceOriginal, "note", long)
	require.Equal(t, 250, len([]rune(mf.Value)))
	require.Equal(t, domain.MetafieldTypeSingleLine, mf.Type)

	exact := strings.Repeat("a", 250)
	require.Equal(t, exact, NewMetafield(domain.NamespaceOriginal, "note", exact).Value)

	require.Equal(t, domain.MetafieldTypeMultiLine, NewMetafield(domain.NamespaceOriginal, "note", "a\nb").Type)
}

func TestMetafieldKey(t *testing.T) {
	require.Equal(t, "shipping_address_city", MetafieldKey("shipping_address.city"))
	require.Equal(t, "note_attributes_pin_code", MetafieldKey("note_attributes.PIN Code"))
	require.Equal(t, "note_attributes____", MetafieldKey("note_attributes.नाम"))
	require.Len(t, MetafieldKey(strings.Repeat("x", 100)), 64)
}
