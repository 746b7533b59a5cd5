package root

import (
	"context"
	"database/sql"
	"os"

	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/config"
	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/engine"
	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/storage"
	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/ui"
	"github.com/polochon-xp/app-le-lapin-blanc-sub000/pkg/logger"
)

func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, func(), error) {
	path := cfg.DBPath
	if path == "" {
		p, err := storage.DefaultDBPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, cleanup, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	ui.ApplyTheme(cfg.Theme)

	log := logger.New(os.Stderr, cfg.LogLevel).Named("lapin")
	svc := engine.NewService(db, engine.WithLogger(log))

	if cfg.PlayerName != "" {
		p, err := svc.PlayerRepo().GetOrCreateMain(ctx)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		if p.Name != cfg.PlayerName {
			p.Name = cfg.PlayerName
			if err := svc.PlayerRepo().Update(ctx, p); err != nil {
				cleanup()
				return nil, nil, err
			}
		}
	}
	return svc, cleanup, nil
}
