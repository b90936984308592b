package recommend

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/listoria/listoria-server/internal/domain"
	apperrors "github.com/listoria/listoria-server/internal/errors"
	"github.com/listoria/listoria-server/internal/genre"
	"github.com/listoria/listoria-server/internal/logger"
	"github.com/listoria/listoria-server/internal/provider"
)

// Catalog supplies the curated candidate pool per domain. The catalog never
// fails; an empty slice is a valid answer.
type Catalog interface {
	Items(d domain.ContentDomain) []domain.Candidate
}

// Engine runs the recommendation pipeline. It is stateless per request and
// safe for concurrent use; the only shared state is the injected
// collaborators, which are themselves concurrency-safe.
type Engine struct {
	catalog Catalog
	sources map[domain.ContentDomain]provider.Searcher
	jitter  Jitter
	delay   time.Duration
	log     *logger.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithJitter replaces the random diversity term, used by tests to pin
// ranking.
func WithJitter(j Jitter) Option {
	return func(e *Engine) { e.jitter = j }
}

// WithSearchDelay overrides the pause between adapter calls.
func WithSearchDelay(d time.Duration) Option {
	return func(e *Engine) { e.delay = d }
}

// NewEngine wires the pipeline. Sources may omit domains; those fall back
// to curated-only recommendations.
func NewEngine(catalog Catalog, sources map[domain.ContentDomain]provider.Searcher, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		catalog: catalog,
		sources: sources,
		jitter:  NewJitter(),
		delay:   500 * time.Millisecond,
		log:     log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recommend produces a ranked result for one request. Source failures
// degrade to curated-only output; the pipeline itself only errors on an
// unknown domain.
func (e *Engine) Recommend(ctx context.Context, req *Request) (*Result, error) {
	if !req.Domain.Valid() {
		return nil, apperrors.Validationf("unknown content domain %q", req.Domain)
	}

	log := e.log.WithField("request_id", uuid.NewString()).WithField("domain", string(req.Domain))

	external := e.fetchExternal(ctx, req, log)
	external = dedupeExternal(external, req.Seeds)

	pool := e.curatedPool(req)
	curated := filterCurated(pool, external, req.Seeds, req.Domain)
	curated = e.applyFilters(curated, req)

	// With no source configured and every curated track filtered out, a
	// music request would otherwise return nothing to build a playlist
	// from. Let a handful of curated tracks through unfiltered.
	if req.Domain == domain.DomainMusic && len(curated) == 0 && len(external) == 0 {
		curated = pool
		if len(curated) > 4 {
			curated = curated[:4]
		}
	}

	curatedLimit := CuratedCap
	if req.Domain == domain.DomainBook {
		curatedLimit = CuratedPoolCap
	}
	if len(curated) > curatedLimit {
		curated = curated[:curatedLimit]
	}

	merged := make([]domain.Candidate, 0, len(external)+len(curated))
	merged = append(merged, external...)
	merged = append(merged, curated...)

	scored := Score(merged, req, e.jitter)

	var items []domain.Candidate
	if req.Domain == domain.DomainBook {
		items = selectBooks(scored, req.Seeds)
	} else {
		items = selectTop(scored)
	}

	res := &Result{Domain: req.Domain, Items: items}
	for i := range items {
		if items[i].Origin == domain.OriginExternal {
			res.External++
		} else {
			res.Curated++
		}
	}
	log.Info("recommendations ready",
		"total", len(items), "external", res.External, "curated", res.Curated)
	return res, nil
}

// fetchExternal queries the domain's source once per derived term with a
// pause between calls. Any source error is logged and skipped; missing
// credentials stop the whole fetch since every term would fail the same
// way.
func (e *Engine) fetchExternal(ctx context.Context, req *Request, log *logger.Logger) []domain.Candidate {
	src, ok := e.sources[req.Domain]
	if !ok {
		return nil
	}

	var out []domain.Candidate
	for i, term := range SearchTerms(req) {
		if i > 0 && !e.pause(ctx) {
			break
		}
		found, err := src.Search(ctx, term, PerTermResults)
		if err != nil {
			if errors.Is(err, provider.ErrNoCredentials) {
				log.Debug("source not configured, using curated pool only")
				return nil
			}
			log.WithError(err).Warn("source search failed", "term", term)
			continue
		}
		out = append(out, found...)
	}
	return out
}

// pause sleeps for the inter-call delay, returning false if the context
// ended first.
func (e *Engine) pause(ctx context.Context) bool {
	if e.delay <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(e.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// curatedPool loads the curated list with the age gate applied.
func (e *Engine) curatedPool(req *Request) []domain.Candidate {
	items := e.catalog.Items(req.Domain)
	if req.Age > 0 && req.Age < 13 {
		kept := items[:0:0]
		for _, c := range items {
			if c.AgeAppropriate {
				kept = append(kept, c)
			}
		}
		items = kept
	}
	return items
}

// applyFilters narrows curated candidates by genre and, for books, page
// count. External results are never filtered here; the search terms
// already encode the genre preference.
func (e *Engine) applyFilters(curated []domain.Candidate, req *Request) []domain.Candidate {
	if req.FilterGenre() {
		want := genre.Normalize(strings.TrimSpace(req.Genre))
		kept := curated[:0:0]
		for _, c := range curated {
			if genre.Normalize(c.Genre) == want {
				kept = append(kept, c)
			}
		}
		curated = kept
	}
	if req.Domain == domain.DomainBook && (req.MinPages > 0 || req.MaxPages > 0) {
		kept := curated[:0:0]
		for _, c := range curated {
			if req.MinPages > 0 && c.Pages < req.MinPages {
				continue
			}
			if req.MaxPages > 0 && c.Pages > req.MaxPages {
				continue
			}
			kept = append(kept, c)
		}
		curated = kept
	}
	return curated
}
