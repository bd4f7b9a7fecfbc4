package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/RaikyD/shopify-order-translator/internal/domain"
	"golang.org/x/text/language"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxSegments is the v2 API limit on q entries per request.
const maxSegments = 128

var (
	ErrProvider        = errors.New("translation provider error")
	ErrTooManySegments = errors.New("too many texts for one translation request")
)

// GoogleClient talks to the Cloud Translation v2 REST API.
type GoogleClient struct {
	endpoint string
	apiKey   string
	target   language.Tag
	http     *http.Client
}

func NewGoogleClient(endpoint, apiKey string, target language.Tag, hc *http.Client) *GoogleClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &GoogleClient{
		endpoint: endpoint,
		apiKey:   strings.TrimSpace(apiKey),
		target:   target,
		http:     hc,
	}
}

type translateRequest struct {
	Q      []string `json:"q"`
	Target string   `json:"target"`
	Format string   `json:"format"`
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage"`
		} `json:"translations"`
	} `json:"data"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Translate sends all texts in one request. The result has exactly one entry per input.
func (c *GoogleClient) Translate(ctx context.Context, texts []string) ([]string, error) {
	if c.apiKey == "" {
		return nil, domain.ErrNoCredential
	}
	if len(texts) == 0 {
		return nil, nil
	}
	if len(texts) > maxSegments {
		return nil, fmt.Errorf("%w: %d texts, limit %d", ErrTooManySegments, len(texts), maxSegments)
	}

	body, err := json.Marshal(translateRequest{Q: texts, Target: c.target.String(), Format: "text"})
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("translate endpoint: %w", err)
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, redactKey(err, c.apiKey))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrProvider, err)
	}

	var out translateResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode/100 != 2 {
		msg := http.StatusText(resp.StatusCode)
		if decodeErr == nil && out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return nil, fmt.Errorf("%w: status %d: %s", ErrProvider, resp.StatusCode, msg)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrProvider, decodeErr)
	}

	if len(out.Data.Translations) != len(texts) {
		return nil, fmt.Errorf("%w: sent %d, got %d", domain.ErrMisaligned, len(texts), len(out.Data.Translations))
	}
	res := make([]string, len(texts))
	for i, t := range out.Data.Translations {
		res[i] = t.TranslatedText
	}
	return res, nil
}

// url.Error embeds the full request URL, key included.
func redactKey(err error, key string) string {
	return strings.ReplaceAll(err.Error(), key, "REDACTED")
}
