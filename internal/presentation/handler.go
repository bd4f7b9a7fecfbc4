package presentation

import (
	"context"
	"errors"
	"github.com/RaikyD/shopify-order-translator/internal/application"
	"github.com/RaikyD/shopify-order-translator/internal/domain"
	"github.com/RaikyD/shopify-order-translator/internal/logger"
	"github.com/RaikyD/shopify-order-translator/internal/presentation/helpers"
	"github.com/go-chi/chi/v5"
	"net/http"
	"strconv"
	"strings"
)

const (
	topicHeader     = "X-Shopify-Topic"
	webhookIDHeader = "X-Shopify-Webhook-Id"
	shopHeader      = "X-Shopify-Shop-Domain"

	topicOrdersCreate = "orders/create"
)

type OrderProcessor interface {
	Process(ctx context.Context, o *domain.Order) (domain.Result, error)
	History(ctx context.Context, orderID int64) ([]domain.TranslationRecord, error)
}

type OrdersHandler struct {
	svc      OrderProcessor
	verifier *HMACVerifier
}

// NewOrdersHandler wires the webhook. A nil verifier disables signature checks.
func NewOrdersHandler(svc OrderProcessor, verifier *HMACVerifier) *OrdersHandler {
	return &OrdersHandler{svc: svc, verifier: verifier}
}

func (h *OrdersHandler) Register(r chi.Router) {
	r.Get("/healthz", h.Health)
	r.Handle("/api/translate-order", h.webhook())
	r.Handle("/webhooks/orders/create", h.webhook())
	r.Get("/orders/{id}/translations", h.GetTranslations)
}

// webhook acknowledges anything but POST with a bare 200 so registration
// checks succeed, and signature-checks only real deliveries.
func (h *OrdersHandler) webhook() http.Handler {
	var post http.Handler = http.HandlerFunc(h.TranslateOrder)
	if h.verifier != nil {
		post = h.verifier.Require(post)
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			helpers.WriteText(w, http.StatusOK, "OK")
			return
		}
		post.ServeHTTP(w, r)
	})
}

func (h *OrdersHandler) TranslateOrder(w http.ResponseWriter, r *http.Request) {
	topic := strings.TrimSpace(r.Header.Get(topicHeader))
	webhookID := r.Header.Get(webhookIDHeader)

	if topic != "" && topic != topicOrdersCreate {
		logger.Info("webhook topic ignored", "topic", topic, "webhook_id", webhookID)
		helpers.WriteJSON(w, http.StatusOK, domain.Result{Status: domain.StatusIgnored, Reason: "unsupported topic " + topic})
		return
	}

	var ord domain.Order
	if err := helpers.DecodeJSON(http.MaxBytesReader(w, r.Body, maxWebhookBody), &ord); err != nil {
		logger.Warn("webhook payload not decodable", "webhook_id", webhookID, "err", err)
		helpers.WriteJSON(w, http.StatusOK, domain.Result{Status: domain.StatusIgnored, Reason: "malformed payload"})
		return
	}

	res, err := h.svc.Process(r.Context(), &ord)
	if err != nil {
		if errors.Is(err, application.ErrNotConfigured) {
			logger.Error("translator not configured", "err", err)
			helpers.HttpError(w, http.StatusInternalServerError, "translator not configured")
			return
		}
		logger.Error("order processing failed", "order_id", ord.ID, "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "order processing failed")
		return
	}

	logger.Info("order webhook handled",
		"order_id", res.OrderID,
		"order_name", res.OrderName,
		"status", res.Status,
		"shop", r.Header.Get(shopHeader),
		"webhook_id", webhookID,
		"metafields_written", res.MetafieldsWritten,
		"metafields_failed", res.MetafieldsFailed,
		"order_updated", res.OrderUpdated,
	)
	helpers.WriteJSON(w, http.StatusOK, res)
}

func (h *OrdersHandler) GetTranslations(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		helpers.HttpError(w, http.StatusBadRequest, "order id must be a positive integer")
		return
	}

	records, err := h.svc.History(r.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrHistoryDisabled) {
			helpers.HttpError(w, http.StatusServiceUnavailable, "translation history disabled")
			return
		}
		logger.Warn("translation history lookup failed", "order_id", id, "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "failed to load translation history")
		return
	}
	if records == nil {
		records = []domain.TranslationRecord{}
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]any{
		"order_id":     id,
		"translations": records,
	})
}

func (h *OrdersHandler) Health(w http.ResponseWriter, _ *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
