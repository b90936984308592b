// Package catalog serves the curated recommendation pool. Per-domain JSON
// files load from a data directory and reload on change; when a file is
// missing or broken the embedded bootstrap set takes its place, so the
// catalog always answers.
package catalog

import (
	"embed"
	"encoding/json/v2"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/listoria/listoria-server/internal/domain"
	"github.com/listoria/listoria-server/internal/logger"
)

//go:embed data/*.json
var bootstrapFS embed.FS

var dataFiles = map[domain.ContentDomain]string{
	domain.DomainBook:   "books.json",
	domain.DomainMovie:  "movies.json",
	domain.DomainSeries: "series.json",
	domain.DomainMusic:  "music.json",
}

type snapshot struct {
	items map[domain.ContentDomain][]domain.Candidate
}

// Catalog holds the curated pool behind an atomic snapshot, so reads never
// block reloads.
type Catalog struct {
	dir     string
	log     *logger.Logger
	current atomic.Pointer[snapshot]
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// New loads the catalog from dir and starts watching it for changes. An
// empty dir serves the embedded bootstrap data only. New never fails;
// problems degrade to the embedded sets with a logged warning.
func New(dir string, log *logger.Logger) *Catalog {
	c := &Catalog{
		dir:  dir,
		log:  log,
		done: make(chan struct{}),
	}
	c.reload()

	if dir != "" {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			log.WithError(err).Warn("catalog watcher unavailable, hot reload disabled")
			return c
		}
		if err := w.Add(dir); err != nil {
			log.WithError(err).Warn("cannot watch catalog directory, hot reload disabled", "dir", dir)
			w.Close()
			return c
		}
		c.watcher = w
		go c.watch()
	}
	return c
}

// Items returns the curated candidates for a domain. The returned slice is
// shared; callers must not mutate it.
func (c *Catalog) Items(d domain.ContentDomain) []domain.Candidate {
	return c.current.Load().items[d]
}

// Close stops the file watcher.
func (c *Catalog) Close() error {
	close(c.done)
	if c.watcher != nil {
		return c.watcher.Close()
	}
	return nil
}

func (c *Catalog) reload() {
	items := make(map[domain.ContentDomain][]domain.Candidate, len(dataFiles))
	for d, name := range dataFiles {
		items[d] = c.load(d, name)
	}
	c.current.Store(&snapshot{items: items})
}

// load reads one domain file, falling back to the embedded bootstrap set.
// The bootstrap data is placeholder content shipped with the binary; the
// log line flags it so operators know real catalog files are absent.
func (c *Catalog) load(d domain.ContentDomain, name string) []domain.Candidate {
	if c.dir != "" {
		path := filepath.Join(c.dir, name)
		f, err := os.Open(path)
		if err == nil {
			defer f.Close()
			var items []domain.Candidate
			if err := json.UnmarshalRead(f, &items); err != nil {
				c.log.WithError(err).Warn("catalog file unreadable, using bootstrap data", "path", path)
			} else {
				c.log.Info("catalog loaded", "domain", string(d), "count", len(items), "path", path)
				return stamp(items, d)
			}
		} else if !os.IsNotExist(err) {
			c.log.WithError(err).Warn("catalog file unreadable, using bootstrap data", "path", path)
		}
	}

	raw, err := bootstrapFS.ReadFile("data/" + name)
	if err != nil {
		// Embedded files are compiled in; this cannot happen outside a
		// broken build.
		c.log.WithError(err).Error("bootstrap catalog missing", "domain", string(d))
		return nil
	}
	var items []domain.Candidate
	if err := json.Unmarshal(raw, &items); err != nil {
		c.log.WithError(err).Error("bootstrap catalog corrupt", "domain", string(d))
		return nil
	}
	c.log.Warn("using embedded bootstrap catalog", "domain", string(d), "count", len(items))
	return stamp(items, d)
}

// stamp fixes the fields the files do not carry.
func stamp(items []domain.Candidate, d domain.ContentDomain) []domain.Candidate {
	for i := range items {
		items[i].Domain = d
		items[i].Origin = domain.OriginCurated
		items[i].Score = 0
	}
	return items
}

func (c *Catalog) watch() {
	for {
		select {
		case <-c.done:
			return
		case ev, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isCatalogFile(filepath.Base(ev.Name)) {
				continue
			}
			c.log.Info("catalog change detected, reloading", "file", filepath.Base(ev.Name))
			c.reload()
		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			c.log.WithError(err).Warn("catalog watcher error")
		}
	}
}

func isCatalogFile(name string) bool {
	for _, f := range dataFiles {
		if f == name {
			return true
		}
	}
	return false
}
