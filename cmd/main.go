package main

import (
	"context"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/RaikyD/shopify-order-translator/internal/application"
	"github.com/RaikyD/shopify-order-translator/internal/config"
	"github.com/RaikyD/shopify-order-translator/internal/kafka"
	"github.com/RaikyD/shopify-order-translator/internal/logger"
	"github.com/RaikyD/shopify-order-translator/internal/metrics"
	"github.com/RaikyD/shopify-order-translator/internal/migrate"
	"github.com/RaikyD/shopify-order-translator/internal/presentation"
	"github.com/RaikyD/shopify-order-translator/internal/repository"
	"github.com/RaikyD/shopify-order-translator/internal/shopify"
	"github.com/RaikyD/shopify-order-translator/internal/translate"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	target, _ := cfg.Target()
	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}

	if cfg.GoogleAPIKey == "" {
		logger.Warn("GOOGLE_API_KEY not set, orders will be reported untranslated")
	}
	translator := translate.NewGoogleClient(cfg.TranslateEndpoint, cfg.GoogleAPIKey, target, httpClient)
	writer := shopify.NewClient(shopify.AdminURL(cfg.ShopDomain(), cfg.ShopifyAPIVersion), cfg.ShopifyAccessToken, httpClient)

	reg := metrics.NewRegistry()
	opts := application.Options{
		PositionalKeys:   cfg.MetafieldKeys == config.MetafieldKeysPositional,
		KeepOriginalNote: cfg.NoteMode == config.NoteAppend,
		Metrics:          reg,
	}

	// Audit log is optional
	if cfg.DBString != "" {
		if err := migrate.Up(ctx, cfg.DBString); err != nil {
			logger.Error("migrations failed", "err", err)
			os.Exit(1)
		}
		pool, err := pgxpool.New(ctx, cfg.DBString)
		if err != nil {
			logger.Error("pgxpool new failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			logger.Error("db ping failed", "err", err)
			os.Exit(1)
		}
		logger.Info("db connected")
		opts.Log = repository.NewTranslationRepository(pool)
	}

	if strings.TrimSpace(cfg.KafkaBrokers) != "" {
		prod := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer prod.Close()
		opts.Publisher = prod
		logger.Info("kafka producer ready", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	svc := application.NewTranslationService(translator, writer, opts)

	verifier := presentation.NewHMACVerifier(cfg.ShopifyWebhookSecret)
	if verifier == nil {
		logger.Warn("SHOPIFY_WEBHOOK_SECRET not set, webhook signatures are NOT verified")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	h := presentation.NewOrdersHandler(svc, verifier)
	h.Register(r)
	r.Handle("/metrics", reg.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("starting http", "addr", srv.Addr, "shop", cfg.ShopDomain())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server crashed", "err", err)
		os.Exit(1)
	}
}
