package providers

import (
	"github.com/samber/do/v2"

	"github.com/listoria/listoria-server/internal/catalog"
	"github.com/listoria/listoria-server/internal/config"
	"github.com/listoria/listoria-server/internal/domain"
	"github.com/listoria/listoria-server/internal/logger"
	"github.com/listoria/listoria-server/internal/provider"
	"github.com/listoria/listoria-server/internal/provider/googlebooks"
	"github.com/listoria/listoria-server/internal/provider/lastfm"
	"github.com/listoria/listoria-server/internal/provider/tmdb"
	"github.com/listoria/listoria-server/internal/recommend"
)

// CatalogHandle wraps the curated catalog with shutdown capability. The
// catalog watches its override directory, so it has to be closed.
type CatalogHandle struct {
	*catalog.Catalog
}

// Shutdown implements do.Shutdownable.
func (h *CatalogHandle) Shutdown() error {
	return h.Close()
}

// ProvideCatalog provides the curated content catalog.
func ProvideCatalog(i do.Injector) (*CatalogHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	cat := catalog.New(cfg.Catalog.DataPath, log)

	if cfg.Catalog.DataPath != "" {
		log.Info("Catalog overrides enabled", "path", cfg.Catalog.DataPath)
	}

	return &CatalogHandle{Catalog: cat}, nil
}

// Sources maps content domains to their external search clients.
type Sources map[domain.ContentDomain]provider.Searcher

// ProvideSources builds the external source clients from configured API
// keys. Domains without a key are left out of the map; the engine falls
// back to curated data for those.
func ProvideSources(i do.Injector) (Sources, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	sources := Sources{}

	if cfg.Providers.GoogleBooksAPIKey != "" {
		sources[domain.DomainBook] = googlebooks.NewClient(cfg.Providers.GoogleBooksAPIKey, log.Logger)
	}
	if cfg.Providers.TMDBAPIKey != "" {
		client := tmdb.NewClient(cfg.Providers.TMDBAPIKey, log.Logger)
		sources[domain.DomainMovie] = tmdb.Movies{Client: client}
		sources[domain.DomainSeries] = tmdb.TV{Client: client}
	}
	if cfg.Providers.LastFMAPIKey != "" {
		sources[domain.DomainMusic] = lastfm.NewClient(cfg.Providers.LastFMAPIKey, log.Logger)
	}

	if len(sources) == 0 {
		log.Warn("No external source credentials configured, serving curated results only")
	} else {
		log.Info("External sources configured", "count", len(sources))
	}

	return sources, nil
}

// ProvideEngine provides the recommendation engine.
func ProvideEngine(i do.Injector) (*recommend.Engine, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	catalogHandle := do.MustInvoke[*CatalogHandle](i)
	sources := do.MustInvoke[Sources](i)

	engine := recommend.NewEngine(
		catalogHandle.Catalog,
		map[domain.ContentDomain]provider.Searcher(sources),
		log,
		recommend.WithSearchDelay(cfg.Engine.SearchDelay),
	)

	return engine, nil
}
