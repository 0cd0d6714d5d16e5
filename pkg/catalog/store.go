// Package catalog holds the build-time product catalog in memory.
package catalog

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/matst80/slask-catalog/pkg/facet"
	"github.com/matst80/slask-catalog/pkg/storage"
	"github.com/matst80/slask-catalog/pkg/types"
)

var (
	ErrNotFound = errors.New("product group not found")
	ErrNoGroups = errors.New("catalog has no groups list")
)

// Snapshot is one loaded version of the catalog. It is never modified after
// it has been built.
type Snapshot struct {
	Data     *types.CatalogData
	Options  *facet.Options
	Warnings []types.Problem
	byId     map[string]*types.ProductGroup
}

func NewSnapshot(data *types.CatalogData) (*Snapshot, error) {
	if data == nil {
		return nil, errors.New("no catalog data")
	}
	if data.Groups == nil {
		data.Groups = []*types.ProductGroup{}
	}
	warnings, err := data.Validate()
	if err != nil {
		return nil, err
	}
	byId := make(map[string]*types.ProductGroup, len(data.Groups))
	for _, g := range data.Groups {
		if g.Tags == nil {
			g.Tags = []string{}
		}
		if g.Images == nil {
			g.Images = []string{}
		}
		if g.Variants == nil {
			g.Variants = []types.ProductVariant{}
		}
		byId[g.Id] = g
	}
	return &Snapshot{
		Data:     data,
		Options:  facet.NewOptions(data.Groups),
		Warnings: warnings,
		byId:     byId,
	}, nil
}

type Store struct {
	disk     *storage.DiskStorage
	fileName string
	logger   *zap.Logger
	current  atomic.Pointer[Snapshot]
	onChange func(*Snapshot)
}

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithChangeHandler is called after every successful load.
func WithChangeHandler(fn func(*Snapshot)) Option {
	return func(s *Store) {
		s.onChange = fn
	}
}

func NewStore(disk *storage.DiskStorage, fileName string, opts ...Option) *Store {
	s := &Store{
		disk:     disk,
		fileName: fileName,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewMemoryStore wraps already decoded data, used by tests and tools.
func NewMemoryStore(data *types.CatalogData) (*Store, error) {
	snapshot, err := NewSnapshot(data)
	if err != nil {
		return nil, err
	}
	s := NewStore(nil, "")
	s.current.Store(snapshot)
	return s, nil
}

// Load reads the catalog file and swaps in the new snapshot. On failure the
// previous snapshot is kept.
func (s *Store) Load() error {
	if s.disk == nil {
		return errors.New("store has no backing file")
	}
	data := &types.CatalogData{}
	if err := s.disk.LoadJson(data, s.fileName); err != nil {
		return fmt.Errorf("load catalog %s: %w", s.fileName, err)
	}
	if data.Groups == nil {
		return fmt.Errorf("load catalog %s: %w", s.fileName, ErrNoGroups)
	}
	snapshot, err := NewSnapshot(data)
	if err != nil {
		return fmt.Errorf("load catalog %s: %w", s.fileName, err)
	}
	for _, w := range snapshot.Warnings {
		s.logger.Warn("catalog data", zap.String("group", w.GroupId), zap.String("problem", w.Message))
	}
	s.current.Store(snapshot)
	s.logger.Info("catalog loaded",
		zap.String("file", s.fileName),
		zap.Int("groups", len(data.Groups)),
		zap.Time("generatedAt", data.GeneratedAt))
	if s.onChange != nil {
		s.onChange(snapshot)
	}
	return nil
}

func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

func (s *Store) FileName() string {
	return s.fileName
}

func (s *Snapshot) Groups() []*types.ProductGroup {
	return s.Data.Groups
}

func (s *Snapshot) GeneratedAt() time.Time {
	return s.Data.GeneratedAt
}

// Get looks up a group by its id, the routing key of the detail pages.
func (s *Snapshot) Get(id string) (*types.ProductGroup, error) {
	if g, ok := s.byId[id]; ok {
		return g, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// Ids enumerates every group id in catalog order.
func (s *Snapshot) Ids() []string {
	ids := make([]string, len(s.Data.Groups))
	for i, g := range s.Data.Groups {
		ids[i] = g.Id
	}
	return ids
}

func (s *Snapshot) IsKnownType(t types.ProductType) bool {
	return s.Options.IsKnownType(t)
}
