package domain

import "time"

// Field is one piece of customer-authored text pulled out of an order.
// ID is stable across payloads, e.g. "shipping_address.city".
type Field struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// TranslationPair keeps the first field that carried a given (trimmed) text.
type TranslationPair struct {
	FieldID    string `json:"field_id"`
	Original   string `json:"original"`
	Translated string `json:"translated"`
}

const (
	NamespaceOriginal   = "original_text"
	NamespaceTranslated = "translated_text"

	MetafieldTypeSingleLine = "single_line_text_field"
	MetafieldTypeMultiLine  = "multi_line_text_field"

	MetafieldValueLimit = 250
)

type Metafield struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Type      string `json:"type"`
}

type Status string

const (
	StatusIgnored           Status = "ignored"
	StatusSkipped           Status = "skipped"
	StatusTranslated        Status = "translated"
	StatusUntranslated      Status = "untranslated"
	StatusTranslationFailed Status = "translation_failed"
)

// Result is what the webhook reports back for one delivery.
type Result struct {
	OrderID           int64             `json:"order_id,omitempty"`
	OrderName         string            `json:"order_name,omitempty"`
	Status            Status            `json:"status"`
	Reason            string            `json:"reason,omitempty"`
	Pairs             []TranslationPair `json:"pairs,omitempty"`
	MetafieldsWritten int               `json:"metafields_written"`
	MetafieldsFailed  int               `json:"metafields_failed"`
	OrderUpdated      bool              `json:"order_updated"`
}

// TranslationRecord is one row of the audit log.
type TranslationRecord struct {
	ID           string            `json:"id"`
	OrderID      int64             `json:"order_id"`
	Status       Status            `json:"status"`
	Reason       string            `json:"reason,omitempty"`
	Pairs        []TranslationPair `json:"pairs"`
	OrderUpdated bool              `json:"order_updated"`
	CreatedAt    time.Time         `json:"created_at"`
}
