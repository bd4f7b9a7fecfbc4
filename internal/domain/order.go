package domain

// Order is the subset of a Shopify order webhook payload this service reads.
type Order struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name,omitempty"`
	Customer       *Customer       `json:"customer,omitempty"`
	ShippingAddr   *Address        `json:"shipping_address,omitempty"`
	BillingAddr    *Address        `json:"billing_address,omitempty"`
	Note           string          `json:"note,omitempty"`
	NoteAttributes []NoteAttribute `json:"note_attributes,omitempty"`
}

type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Address struct {
	Name     string `json:"name,omitempty"`
	Address1 string `json:"address1,omitempty"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city,omitempty"`
	Province string `json:"province,omitempty"`
	Country  string `json:"country,omitempty"`
	Company  string `json:"company,omitempty"`
}

func (a *Address) IsEmpty() bool {
	return a == nil || *a == Address{}
}

type NoteAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// OrderPatch is the body of PUT /orders/{id}.json. Nil parts are left untouched by Shopify.
type OrderPatch struct {
	ID             int64           `json:"id"`
	Note           string          `json:"note,omitempty"`
	ShippingAddr   *Address        `json:"shipping_address,omitempty"`
	BillingAddr    *Address        `json:"billing_address,omitempty"`
	NoteAttributes []NoteAttribute `json:"note_attributes,omitempty"`
}

func (p OrderPatch) IsEmpty() bool {
	return p.Note == "" && p.ShippingAddr.IsEmpty() && p.BillingAddr.IsEmpty() && len(p.NoteAttributes) == 0
}
