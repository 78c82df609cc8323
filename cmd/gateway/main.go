package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	api "github.com/mind-engage/mindengage-qtigen/internal/api/http"
	auth "github.com/mind-engage/mindengage-qtigen/internal/auth/middleware"
	"github.com/mind-engage/mindengage-qtigen/internal/config"
	"github.com/mind-engage/mindengage-qtigen/internal/convert"
	"github.com/mind-engage/mindengage-qtigen/internal/db"
	"github.com/mind-engage/mindengage-qtigen/internal/logger"
	"github.com/mind-engage/mindengage-qtigen/internal/qti/render"
	"github.com/mind-engage/mindengage-qtigen/internal/samples"
	storage "github.com/mind-engage/mindengage-qtigen/internal/storage"
	syncx "github.com/mind-engage/mindengage-qtigen/internal/sync"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "gateway:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	if err := cfg.Validate(); err != nil {
		return err
	}
	if keys := cfg.DevCredentials(); len(keys) > 0 {
		log.Warn("local auth is using development credentials", zap.Strings("keys", keys))
	}

	// --- conversion log (optional) ---
	convOpts := []convert.Option{convert.WithRenderOptions(render.Options{
		TitleLabel: cfg.ItemTitleLabel,
		EscapeText: cfg.EscapeText,
	})}
	var events api.EventLister
	if db.Driver(cfg.DBDriver) != db.DriverNone {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		cancel()
		if err != nil {
			return fmt.Errorf("db open: %w", err)
		}
		defer dbh.Close()
		repo := syncx.NewEventRepo(dbh)
		events = repo
		convOpts = append(convOpts, convert.WithEvents(repo, cfg.SiteID))
	}

	// --- sample templates ---
	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		return fmt.Errorf("blob store: %w", err)
	}
	seeded, err := samples.Seed(bs)
	if err != nil {
		return err
	}
	if len(seeded) > 0 {
		log.Info("seeded sample templates", zap.Strings("files", seeded))
	}

	var authSvc *auth.AuthService
	if cfg.EnableLocalAuth {
		authSvc = auth.NewAuthService(cfg.AuthHMACSecret, cfg.AdminUser, cfg.AdminPassHash)
	}

	handler := api.NewRouter(api.Deps{
		Converter:      convert.NewService(convOpts...),
		Samples:        bs,
		Events:         events,
		Auth:           authSvc,
		CORSOrigins:    cfg.CORSOrigins(),
		MaxUploadBytes: cfg.MaxUploadBytes,
		PublicDir:      cfg.PublicDir,
		AccessLog:      true,
	})

	s := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = s.Shutdown(shutdownCtx)
	}()

	log.Info("listening",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("mode", string(cfg.Mode)),
		zap.String("db", cfg.DBDriver),
		zap.Bool("local_auth", cfg.EnableLocalAuth),
	)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
