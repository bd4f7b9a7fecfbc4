package application

import (
	"github.com/RaikyD/shopify-order-translator/internal/domain"
	"strings"
)

const (
	englishSuffix        = " (English)"
	translatedNoteMarker = "--- AUTO TRANSLATED (ENGLISH) ---"
)

// Reconciler maps original order text to its translation. It only trusts
// translations that line up one-to-one with the unique fields it was built
// from; anything else reads as "no translation".
type Reconciler struct {
	unique     []domain.Field
	translated []string
	index      map[string]int

	keepOriginalNote bool
}

func NewReconciler(unique []domain.Field, translated []string) *Reconciler {
	idx := make(map[string]int, len(unique))
	for i, f := range unique {
		if _, ok := idx[f.Value]; !ok {
			idx[f.Value] = i
		}
	}
	return &Reconciler{unique: unique, translated: translated, index: idx}
}

func (r *Reconciler) Lookup(original string) (string, bool) {
	key := strings.TrimSpace(original)
	if key == "" {
		return "", false
	}
	i, ok := r.index[key]
	if !ok || i >= len(r.translated) {
		return "", false
	}
	t := strings.TrimSpace(r.translated[i])
	if t == "" {
		return "", false
	}
	return t, true
}

// Pairs skips fields without a translation.
func (r *Reconciler) Pairs() []domain.TranslationPair {
	out := make([]domain.TranslationPair, 0, len(r.unique))
	for _, f := range r.unique {
		t, ok := r.Lookup(f.Value)
		if !ok {
			continue
		}
		out = append(out, domain.TranslationPair{FieldID: f.ID, Original: f.Value, Translated: t})
	}
	return out
}

// FullName translates the customer's first and last name. Every non-blank
// part must have a translation, otherwise it returns "".
func (r *Reconciler) FullName(c *domain.Customer) string {
	if c == nil {
		return ""
	}
	var parts []string
	for _, part := range []string{c.FirstName, c.LastName} {
		if strings.TrimSpace(part) == "" {
			continue
		}
		t, ok := r.Lookup(part)
		if !ok {
			return ""
		}
		parts = append(parts, t)
	}
	return strings.Join(parts, " ")
}

func recipientIsCustomer(a *domain.Address, c *domain.Customer) bool {
	if a == nil || c == nil {
		return false
	}
	name := strings.Join(strings.Fields(a.Name), " ")
	full := strings.Join(strings.Fields(c.FirstName+" "+c.LastName), " ")
	return name != "" && name == full
}

// AddressPatch holds only the sub-fields of a that have a translation, nil if none do.
func (r *Reconciler) AddressPatch(a *domain.Address) *domain.Address {
	if a == nil {
		return nil
	}
	p := &domain.Address{}
	set := func(dst *string, src string) {
		if t, ok := r.Lookup(src); ok {
			*dst = t
		}
	}
	set(&p.Address1, a.Address1)
	set(&p.Address2, a.Address2)
	set(&p.City, a.City)
	set(&p.Province, a.Province)
	set(&p.Country, a.Country)
	set(&p.Company, a.Company)
	if p.IsEmpty() {
		return nil
	}
	return p
}

// NoteAttributesPatch keeps every original attribute and adds "<name> (English)"
// next to it when the translation differs. Shopify replaces the whole list on
// update, so the originals have to be sent back. Returns nil when nothing changed.
func (r *Reconciler) NoteAttributesPatch(attrs []domain.NoteAttribute) []domain.NoteAttribute {
	if len(attrs) == 0 {
		return nil
	}

	byName := make(map[string]int, len(attrs))
	out := make([]domain.NoteAttribute, 0, len(attrs)*2)
	for _, a := range attrs {
		byName[a.Name] = len(out)
		out = append(out, a)
	}

	changed := false
	for _, a := range attrs {
		if strings.HasSuffix(a.Name, englishSuffix) {
			continue
		}
		t, ok := r.Lookup(a.Value)
		if !ok || t == strings.TrimSpace(a.Value) {
			continue
		}
		name := a.Name + englishSuffix
		if i, exists := byName[name]; exists {
			if out[i].Value != t {
				out[i].Value = t
				changed = true
			}
			continue
		}
		byName[name] = len(out)
		out = append(out, domain.NoteAttribute{Name: name, Value: t})
		changed = true
	}
	if !changed {
		return nil
	}
	return out
}

// addressPatchWithName is AddressPatch plus the recipient name, which is only
// rewritten when the address exists and names the customer.
func (r *Reconciler) addressPatchWithName(a *domain.Address, c *domain.Customer) *domain.Address {
	p := r.AddressPatch(a)
	if !recipientIsCustomer(a, c) {
		return p
	}
	name := r.FullName(c)
	if name == "" {
		return p
	}
	if p == nil {
		p = &domain.Address{}
	}
	p.Name = name
	return p
}

// Patch assembles the order update. Sub-fields without a translation are
// omitted so Shopify keeps their current value.
func (r *Reconciler) Patch(o *domain.Order) domain.OrderPatch {
	p := domain.OrderPatch{ID: o.ID}

	p.ShippingAddr = r.addressPatchWithName(o.ShippingAddr, o.Customer)
	p.BillingAddr = r.addressPatchWithName(o.BillingAddr, o.Customer)
	if t, ok := r.Lookup(originalNote(o.Note)); ok {
		if r.keepOriginalNote {
			p.Note = NoteWithTranslation(o.Note, t)
		} else {
			p.Note = t
		}
	}
	p.NoteAttributes = r.NoteAttributesPatch(o.NoteAttributes)
	return p
}

// NoteWithTranslation keeps the customer's note and appends the English text
// under a marker. A marker block from an earlier delivery is replaced.
func NoteWithTranslation(note, translated string) string {
	return originalNote(note) + "\n\n" + translatedNoteMarker + "\n\n" + translated
}

func originalNote(note string) string {
	if i := strings.Index(note, translatedNoteMarker); i >= 0 {
		note = note[:i]
	}
	return strings.TrimSpace(note)
}
