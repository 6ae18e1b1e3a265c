package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dmitrijs2005/finkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/finkeeper/internal/client/cli"
	"github.com/dmitrijs2005/finkeeper/internal/client/client"
	"github.com/dmitrijs2005/finkeeper/internal/client/config"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/auth"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/cards"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/dashboard"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/user"
	"github.com/dmitrijs2005/finkeeper/internal/client/services"
	"github.com/dmitrijs2005/finkeeper/internal/client/session"
	"github.com/dmitrijs2005/finkeeper/internal/client/tokenstore"
	"github.com/dmitrijs2005/finkeeper/internal/filex"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	log := logging.New(os.Stderr, cfg.LogLevel)

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "finkeeper stopped", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	hc := client.NewHTTPClient(cfg.APIBaseURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(log),
	)

	store := tokenstore.Default()

	persist, closeDB, err := openPersistence(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()
	if persist != nil {
		persist.Restore(ctx, store, log)
	}

	sess := session.New(store, log)
	if persist != nil {
		defer persist.Track(sess, log)()
	}

	app := cli.NewApp(cli.Services{
		Auth:      services.NewAuthService(auth.New(cfg.UseAPI, hc, log), sess, log),
		Profile:   services.NewProfileService(user.NewAPIRepository(hc, log), sess, log),
		Cards:     services.NewCardsService(cards.NewAPIRepository(hc), sess, log),
		Dashboard: services.NewDashboardService(dashboard.NewAPIRepository(hc), store),
	}, sess, log)

	app.Run(ctx)
	return nil
}

// openPersistence returns the encrypted session store, or nil when
// persistence is off. Without a secret it is disabled with a warning.
func openPersistence(ctx context.Context, cfg *config.Config, log logging.Logger) (*sessions.Repository, func(), error) {
	noop := func() {}
	if !cfg.PersistSession {
		return nil, noop, nil
	}
	if cfg.SessionSecret == "" {
		log.Warn(ctx, "session persistence requested but no secret configured, disabled",
			"env", config.EnvSessionSecret)
		return nil, noop, nil
	}

	dir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, noop, err
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dir, "finkeeper.db"))
	if err != nil {
		return nil, noop, err
	}
	closeDB := func() { _ = db.Close() }

	repo, err := sessions.New(ctx, db, []byte(cfg.SessionSecret))
	if err != nil {
		closeDB()
		return nil, noop, err
	}
	return repo, closeDB, nil
}
