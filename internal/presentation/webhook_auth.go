package presentation

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"github.com/RaikyD/shopify-order-translator/internal/logger"
	"github.com/RaikyD/shopify-order-translator/internal/presentation/helpers"
	"io"
	"net/http"
	"strings"
)

const (
	shopifyHMACHeader = "X-Shopify-Hmac-Sha256"
	maxWebhookBody    = 1 << 20
)

// HMACVerifier checks X-Shopify-Hmac-Sha256, the base64 HMAC-SHA256 of the
// raw body keyed with the app's webhook secret.
type HMACVerifier struct {
	secret []byte
}

// NewHMACVerifier returns nil for an empty secret.
func NewHMACVerifier(secret string) *HMACVerifier {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil
	}
	return &HMACVerifier{secret: []byte(secret)}
}

func (v *HMACVerifier) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, err := base64.StdEncoding.DecodeString(strings.TrimSpace(r.Header.Get(shopifyHMACHeader)))
		if err != nil || len(got) == 0 {
			logger.Warn("webhook signature missing or malformed", "remote", r.RemoteAddr)
			helpers.HttpError(w, http.StatusUnauthorized, "invalid webhook signature")
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody+1))
		if err != nil || len(body) > maxWebhookBody {
			helpers.HttpError(w, http.StatusRequestEntityTooLarge, "webhook body unreadable or too large")
			return
		}
		_ = r.Body.Close()

		if !hmac.Equal(got, v.sign(body)) {
			logger.Warn("webhook signature mismatch", "remote", r.RemoteAddr)
			helpers.HttpError(w, http.StatusUnauthorized, "invalid webhook signature")
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

func (v *HMACVerifier) sign(body []byte) []byte {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	return mac.Sum(nil)
}
