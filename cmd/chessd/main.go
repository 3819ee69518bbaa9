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

	"github.com/park285/chess-session/internal/archive"
	appcfg "github.com/park285/chess-session/internal/config"
	"github.com/park285/chess-session/internal/feed"
	"github.com/park285/chess-session/internal/match"
	"github.com/park285/chess-session/internal/msgcat"
	"github.com/park285/chess-session/internal/notify"
	"github.com/park285/chess-session/internal/obslog"
	"github.com/park285/chess-session/internal/wsapi"
)

func main() {
	if err := obslog.InitFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "logger init error: %v\n", err)
		os.Exit(1)
	}
	log := obslog.L()
	defer func() { _ = log.Sync() }()

	if err := run(log); err != nil {
		log.Error("chessd_exit", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.Logger) error {
	cfg, err := appcfg.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := feed.Connect(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	defer rdb.Close()
	pub := feed.NewPublisher(rdb, cfg.SessionTTL, log)

	cat, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		return fmt.Errorf("messages: %w", err)
	}

	mgr := match.NewManager(match.Options{
		MaxSessions:   cfg.MaxSessions,
		DefaultBudget: cfg.ClockBudget,
		Logger:        log,
	})
	defer mgr.Close()
	mgr.AttachSink(pub)

	if cfg.DatabaseURL != "" {
		repo, err := archive.NewRepository(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("archive: %w", err)
		}
		defer repo.Close()
		mctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err = repo.Migrate(mctx)
		cancel()
		if err != nil {
			return fmt.Errorf("archive migrate: %w", err)
		}
		mgr.AttachSaver(repo)
	} else {
		log.Warn("archive_disabled", zap.String("reason", "DATABASE_URL not set"))
	}

	if cfg.WebhookURL != "" {
		client := notify.NewClient(cfg.WebhookURL, notify.WithTimeout(8*time.Second))
		mgr.AttachSink(notify.NewRelay(client, cat, cfg.WebhookRoom, log))
	}

	go pruneLoop(ctx, mgr, cfg.SessionTTL, log)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           wsapi.NewServer(mgr, pub, cat, log).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("chessd_listen", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}
	log.Info("chessd_shutdown")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}

// pruneLoop drops finished sessions once they are older than the mirror TTL.
func pruneLoop(ctx context.Context, mgr *match.Manager, ttl time.Duration, log *zap.Logger) {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := mgr.Prune(ttl); n > 0 {
				log.Info("match_prune", zap.Int("removed", n))
			}
		}
	}
}
