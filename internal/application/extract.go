package application

import (
	"github.com/RaikyD/shopify-order-translator/internal/domain"
	"strings"
)

const (
	FieldFirstName = "customer.first_name"
	FieldLastName  = "customer.last_name"
	FieldNote      = "note"

	prefixShipping      = "shipping_address."
	prefixBilling       = "billing_address."
	prefixNoteAttribute = "note_attributes."
)

// ExtractFields lists the customer-authored text of an order in a fixed order:
// customer name, shipping address, billing address, note, note attributes.
// Blank values are dropped.
func ExtractFields(o *domain.Order) []domain.Field {
	if o == nil {
		return nil
	}

	var out []domain.Field
	add := func(id, v string) {
		if strings.TrimSpace(v) == "" {
			return
		}
		out = append(out, domain.Field{ID: id, Value: v})
	}

	if o.Customer != nil {
		add(FieldFirstName, o.Customer.FirstName)
		add(FieldLastName, o.Customer.LastName)
	}
	for _, f := range addressFields(prefixShipping, o.ShippingAddr) {
		add(f.ID, f.Value)
	}
	for _, f := range addressFields(prefixBilling, o.BillingAddr) {
		add(f.ID, f.Value)
	}
	add(FieldNote, originalNote(o.Note))
	for _, na := range o.NoteAttributes {
		// written by us on an earlier delivery
		if strings.HasSuffix(na.Name, englishSuffix) {
			continue
		}
		add(noteAttributeID(na.Name), na.Value)
	}
	return out
}

func addressFields(prefix string, a *domain.Address) []domain.Field {
	if a == nil {
		return nil
	}
	return []domain.Field{
		{ID: prefix + "address1", Value: a.Address1},
		{ID: prefix + "address2", Value: a.Address2},
		{ID: prefix + "city", Value: a.City},
		{ID: prefix + "province", Value: a.Province},
		{ID: prefix + "country", Value: a.Country},
		{ID: prefix + "company", Value: a.Company},
	}
}

func noteAttributeID(name string) string {
	return prefixNoteAttribute + strings.ToLower(strings.TrimSpace(name))
}
