// Package filesift is an embeddable file search engine for forensic case
// data. It catalogs files from evidence sources into SQLite, optionally
// tracks content-hash occurrences across cases in Redis, and answers
// attribute searches composed from reusable filters.
package filesift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	redisdb "github.com/casevault/filesift/internal/db/redis"
	"github.com/casevault/filesift/internal/domain/casefile"
	catalogrepo "github.com/casevault/filesift/internal/repository/catalog"
	occurrencerepo "github.com/casevault/filesift/internal/repository/occurrence"
	searchuc "github.com/casevault/filesift/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the filesift SDK entry point.
type Client struct {
	catalog   *catalogrepo.Store
	occStore  *redisdb.Store
	occRepo   *occurrencerepo.Repo
	searchSvc *searchuc.Service

	enrichmentWorkers int
}

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	catalogPath       string
	occurrenceAddrs   []string
	occurrencePass    string
	logger            *zap.Logger
	enrichmentWorkers int
}

// WithCatalog sets the SQLite catalog path. Use ":memory:" for an ephemeral
// catalog.
func WithCatalog(path string) Option {
	return func(c *clientConfig) { c.catalogPath = path }
}

// WithOccurrenceStore connects a Redis occurrence store, enabling frequency
// filters.
func WithOccurrenceStore(addrs []string, password string) Option {
	return func(c *clientConfig) {
		c.occurrenceAddrs = addrs
		c.occurrencePass = password
	}
}

// WithLogger sets the logger used by the search engine.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) { c.logger = logger }
}

// WithEnrichmentWorkers bounds concurrent occurrence lookups per search.
func WithEnrichmentWorkers(n int) Option {
	return func(c *clientConfig) { c.enrichmentWorkers = n }
}

// New creates a filesift Client, opening the catalog and connecting to the
// occurrence store when one is configured.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}

	if cfg.catalogPath == "" {
		return nil, errors.New("filesift: catalog path required (use WithCatalog)")
	}

	catalog, err := catalogrepo.New(cfg.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("filesift: open catalog: %w", err)
	}

	c := &Client{catalog: catalog}
	c.searchSvc = searchuc.New(catalog, cfg.logger)

	if len(cfg.occurrenceAddrs) > 0 {
		store, err := redisdb.NewStore(redisdb.Config{
			Addrs:    cfg.occurrenceAddrs,
			Password: cfg.occurrencePass,
		})
		if err != nil {
			_ = catalog.Close()
			return nil, fmt.Errorf("filesift: create occurrence store: %w", err)
		}

		ctx := context.Background()
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			_ = catalog.Close()
			return nil, fmt.Errorf("filesift: occurrence store not ready: %w", err)
		}

		repo := occurrencerepo.New(store)
		if err := repo.EnsureFrequencyType(ctx); err != nil {
			store.Close()
			_ = catalog.Close()
			return nil, fmt.Errorf("filesift: register frequency type: %w", err)
		}

		c.occStore = store
		c.occRepo = repo
		c.searchSvc = c.searchSvc.WithOccurrences(repo)
	}

	c.enrichmentWorkers = cfg.enrichmentWorkers
	return c, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.occStore != nil {
		c.occStore.Close()
	}
	if c.catalog != nil {
		_ = c.catalog.Close()
	}
}

// Ping checks catalog connectivity, and the occurrence store if configured.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.catalog.Ping(ctx); err != nil {
		return fmt.Errorf("ping catalog: %w", err)
	}
	if c.occStore != nil {
		if err := c.occStore.Ping(ctx); err != nil {
			return fmt.Errorf("ping occurrence store: %w", err)
		}
	}
	return nil
}

// AddDataSource registers an evidence source and returns its catalog id.
func (c *Client) AddDataSource(ctx context.Context, name string) (int64, error) {
	ds, err := c.catalog.InsertDataSource(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("add data source: %w", err)
	}
	return ds.ObjID(), nil
}

// DataSources lists registered evidence sources.
func (c *Client) DataSources(ctx context.Context) ([]DataSource, error) {
	sources, err := c.catalog.ListDataSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("list data sources: %w", err)
	}
	out := make([]DataSource, len(sources))
	for i, ds := range sources {
		out[i] = DataSource{ObjID: ds.ObjID(), Name: ds.Name()}
	}
	return out, nil
}

// AddFile catalogs a file under a data source and returns its assigned
// catalog id. Keyword hits attribute keywords found in the file to named
// keyword lists.
func (c *Client) AddFile(ctx context.Context, f File, hits ...KeywordHit) (int64, error) {
	cf := &casefile.CaseFile{
		DataSourceObjID: f.DataSourceObjID,
		Name:            f.Name,
		ParentPath:      f.ParentPath,
		Size:            f.Size,
		MimeType:        f.MimeType,
		MD5Hash:         f.MD5Hash,
	}
	if err := c.catalog.InsertFile(ctx, cf); err != nil {
		return 0, fmt.Errorf("add file: %w", err)
	}
	for _, h := range hits {
		if err := c.catalog.InsertKeywordHit(ctx, cf.ObjID, h.ListName, h.Keyword); err != nil {
			return 0, fmt.Errorf("add keyword hit: %w", err)
		}
	}
	return cf.ObjID, nil
}

// RecordOccurrence marks a content hash as observed by a (case, data source)
// pair in the occurrence store.
func (c *Client) RecordOccurrence(ctx context.Context, md5Hash, caseID, dataSourceID string) error {
	if c.occRepo == nil {
		return errors.New("filesift: occurrence store not configured (use WithOccurrenceStore)")
	}
	attrType, err := c.occRepo.LookupFrequencyType(ctx)
	if err != nil {
		return fmt.Errorf("record occurrence: %w", err)
	}
	if err := c.occRepo.RecordOccurrence(ctx, attrType, md5Hash, caseID, dataSourceID); err != nil {
		return fmt.Errorf("record occurrence: %w", err)
	}
	return nil
}

// Search starts a fluent search query.
func (c *Client) Search() *QueryBuilder {
	return &QueryBuilder{client: c}
}

// File is a cataloged file.
type File struct {
	ObjID           int64
	DataSourceObjID int64
	Name            string
	ParentPath      string
	Size            int64
	MimeType        string
	MD5Hash         string
	Frequency       string // empty when not evaluated
}

// KeywordHit attributes a keyword found in a file to a named list.
type KeywordHit struct {
	ListName string
	Keyword  string
}

// DataSource is a registered evidence source.
type DataSource struct {
	ObjID int64
	Name  string
}
