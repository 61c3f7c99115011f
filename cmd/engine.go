package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/assessment"
	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/catalog"
	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/store"
)

// initEngine loads the catalog and remediation library from the
// configured paths and constructs the assessment engine.
func initEngine() (*assessment.Engine, error) {
	cat, err := catalog.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}

	if findings := cat.Validate(); len(findings) > 0 {
		for _, f := range findings {
			zap.L().Warn("catalog validation finding", zap.String("finding", f.String()))
		}
	}

	library, err := catalog.LoadRecommendations(cfg.Catalog.RecommendationsPath)
	if err != nil {
		// The library is optional; a missing file just disables matching.
		zap.L().Warn("recommendation library unavailable", zap.Error(err))
		library = nil
	}

	return assessment.New(cat, library)
}

// openStore opens the configured assessment store and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	case "sqlite", "":
		st, err = store.NewSQLite(cfg.Store.Path)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}
