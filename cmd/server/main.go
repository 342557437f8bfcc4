package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/surveypulse/surveypulse/internal/api"
	"github.com/surveypulse/surveypulse/internal/db"
	"github.com/surveypulse/surveypulse/internal/mailer"
	"github.com/surveypulse/surveypulse/internal/middleware"
	"github.com/surveypulse/surveypulse/internal/services"
	"github.com/surveypulse/surveypulse/internal/utils"
)

func main() {
	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()

	addr := utils.SafeEnv("SURVEYPULSE_ADDR", ":8080")
	baseURL := utils.SafeEnv("SURVEYPULSE_BASE_URL", "http://localhost:8080")
	commit := os.Getenv("SURVEYPULSE_COMMIT")
	buildTime := os.Getenv("SURVEYPULSE_BUILD_TIME")

	store, cleanup, err := openStore()
	if err != nil {
		slog.Error("store init failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	sender := openMailer()

	mux := http.NewServeMux()
	api.NewRouter(store, sender, baseURL).Register(mux)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		locale := middleware.LocaleFromContext(r.Context())
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":     true,
			"name":   "SurveyPulse API",
			"locale": locale,
			"msg":    utils.T(locale, "health.ok"),
		})
	})

	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	handler := middleware.CORS(
		middleware.SecureHeaders(
			middleware.NoStore(
				middleware.Locale(
					middleware.RequestLog(mux)))))

	server := http.Server{Addr: addr, Handler: handler}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		slog.Info("shutdown signal received")
		_ = server.Close()
	}()

	slog.Info("surveypulse listening", "addr", addr, "baseURL", baseURL)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("server closed")
}

// openStore picks SQLite when SURVEYPULSE_SQLITE_PATH is set, otherwise the
// in-memory store. The returned cleanup closes the database handle.
func openStore() (api.Store, func(), error) {
	path := os.Getenv("SURVEYPULSE_SQLITE_PATH")
	if path == "" {
		slog.Warn("SURVEYPULSE_SQLITE_PATH not set; using in-memory store, data will not survive restarts")
		return api.NewMemoryStore(), func() {}, nil
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", path)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	if err := db.RunMigrations(conn); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	store, err := db.NewSQLiteStore(conn)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	slog.Info("sqlite store ready", "path", path)
	return store, func() { _ = conn.Close() }, nil
}

// openMailer loads the SMTP pool config when SURVEYPULSE_SMTP_CONFIG is set.
// Without it invites are logged instead of delivered, which keeps local
// development working with no mail server.
func openMailer() services.Mailer {
	path := os.Getenv("SURVEYPULSE_SMTP_CONFIG")
	if path == "" {
		slog.Warn("SURVEYPULSE_SMTP_CONFIG not set; invite emails will be logged, not sent")
		return &mailer.Log{}
	}
	cfg, err := mailer.LoadConfig(path)
	if err != nil {
		slog.Error("smtp config load failed", "path", path, "error", err)
		os.Exit(1)
	}
	smtp, err := mailer.NewSMTP(cfg)
	if err != nil {
		slog.Error("smtp pool init failed", "error", err)
		os.Exit(1)
	}
	slog.Info("smtp mailer ready", "servers", len(cfg.Servers))
	return smtp
}
