package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"motofibra/catalog/internal/common"
	"motofibra/catalog/internal/constants"
	"motofibra/catalog/internal/db/repositories"
	"motofibra/catalog/internal/logging"
	"motofibra/catalog/internal/metrics"
	"motofibra/catalog/internal/models"
	"motofibra/catalog/internal/models/dtos"
	gormModels "motofibra/catalog/internal/models/gorm"

	"golang.org/x/sync/errgroup"
)

// PartStore is the persistence the catalog needs. *repositories.PartRepository
// implements it.
type PartStore interface {
	CreatePart(ctx context.Context, part *gormModels.Part, seed *gormModels.PartDetails) error
	GetPart(ctx context.Context, id uint) (*gormModels.Part, error)
	GetPartWithDetails(ctx context.Context, id uint) (*gormModels.Part, error)
	UpdatePart(ctx context.Context, id uint, name, brand, reference string) (*gormModels.Part, error)
	GetDetails(ctx context.Context, partID uint) (*gormModels.PartDetails, error)
	MergeDetails(ctx context.Context, partID uint, merge repositories.DetailsMergeFunc) (*gormModels.PartDetails, bool, error)
	FilterParts(ctx context.Context, filter dtos.PartFilter) ([]gormModels.Part, error)
}

var _ PartStore = (*repositories.PartRepository)(nil)

type CatalogService struct {
	store    PartStore
	cache    common.CacheInterface
	cacheTTL time.Duration
	policy   DetailMergePolicy
	metrics  *metrics.MetricsRegistry

	// viewMu orders part-view cache fills against invalidations. A fill is
	// dropped when the part was written after the fill's read started.
	viewMu  sync.Mutex
	viewGen map[uint]uint64
}

// NewCatalogService wires the catalog. cache and m may be nil.
func NewCatalogService(
	store PartStore,
	cache common.CacheInterface,
	cacheTTL time.Duration,
	policy DetailMergePolicy,
	m *metrics.MetricsRegistry,
) *CatalogService {
	return &CatalogService{
		store:    store,
		cache:    cache,
		cacheTTL: cacheTTL,
		policy:   policy,
		metrics:  m,
		viewGen:  make(map[uint]uint64),
	}
}

func (s *CatalogService) MergePolicy() DetailMergePolicy {
	return s.policy
}

// CreatePart validates and stores a new part. Seed details are attached in
// the same transaction when a seed field is supplied and non-zero.
func (s *CatalogService) CreatePart(ctx context.Context, req dtos.CreatePartReq) (*gormModels.Part, error) {
	const op = "services.CatalogService.CreatePart"

	if err := Validate(req); err != nil {
		logging.Warn("Rejected part creation", "error", err.Error())
		return nil, err
	}

	part := &gormModels.Part{
		Name:      req.Name,
		Brand:     constants.Brand(req.Brand),
		Reference: req.Reference,
		Client:    constants.Client(req.Client),
		Category:  constants.Category(req.Category),
	}
	seed := SeedDetails(req)

	if err := s.store.CreatePart(ctx, part, seed); err != nil {
		logging.Error("Failed to create part", "error", err.Error())
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.metrics != nil {
		s.metrics.PartsCreatedTotal.WithLabelValues(string(part.Client), strconv.FormatBool(seed != nil)).Inc()
	}
	logging.Info("Part created", "part_id", part.ID, "brand", part.Brand, "seeded", seed != nil)
	return part, nil
}

// GetPart returns the part or models.ErrPartNotFound.
func (s *CatalogService) GetPart(ctx context.Context, id uint) (*gormModels.Part, error) {
	return s.store.GetPart(ctx, id)
}

// UpdatePart overwrites name, brand and reference; details are kept.
func (s *CatalogService) UpdatePart(ctx context.Context, id uint, req dtos.UpdatePartReq) (*gormModels.Part, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	part, err := s.store.UpdatePart(ctx, id, req.Name, req.Brand, req.Reference)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	logging.Info("Part updated", "part_id", id)
	return part, nil
}

// GetDetails returns the part's details or nil when it has none.
func (s *CatalogService) GetDetails(ctx context.Context, partID uint) (*gormModels.PartDetails, error) {
	return s.store.GetDetails(ctx, partID)
}

// CreateOrMergeDetails creates the details row of a part or merges the update
// into the stored one under the configured policy.
func (s *CatalogService) CreateOrMergeDetails(ctx context.Context, partID uint, req dtos.DetailsReq) (*gormModels.PartDetails, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	details, created, err := s.store.MergeDetails(ctx, partID, func(existing *gormModels.PartDetails) *gormModels.PartDetails {
		return s.policy.Merge(existing, req)
	})
	if err != nil {
		if errors.Is(err, models.ErrPartNotFound) {
			logging.Warn("Details for unknown part", "part_id", partID)
		}
		return nil, err
	}

	s.invalidate(ctx, partID)
	if s.metrics != nil {
		result := "merged"
		if created {
			result = "created"
		}
		s.metrics.DetailsMergedTotal.WithLabelValues(result).Inc()
	}
	logging.Info("Part details saved", "part_id", partID, "created", created, "policy", s.policy.String())
	return details, nil
}

// FilterParts returns the parts matching every non-empty predicate, in
// creation order.
func (s *CatalogService) FilterParts(ctx context.Context, filter dtos.PartFilter) ([]gormModels.Part, error) {
	return s.store.FilterParts(ctx, filter)
}

// GetPartWithDetails assembles the part view. Details may be nil.
func (s *CatalogService) GetPartWithDetails(ctx context.Context, id uint) (*dtos.PartView, error) {
	key := partViewKey(id)

	if s.cache != nil {
		var cached dtos.PartView
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logging.Warn("Part view cache read failed", "key", key, "error", err.Error())
		}
		if found {
			s.countCache(true)
			return &cached, nil
		}
		s.countCache(false)
	}

	gen := s.viewGeneration(id)
	part, err := s.store.GetPartWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &dtos.PartView{Details: part.Details}
	view.Part = *part
	view.Part.Details = nil

	s.fillView(ctx, id, gen, view)
	return view, nil
}

// Compare loads both parts concurrently. A missing part yields
// models.ErrPartNotFound; a part without details yields
// models.ErrDetailsNotFound.
func (s *CatalogService) Compare(ctx context.Context, id1, id2 uint) (*dtos.Comparison, error) {
	var left, right *dtos.PartView

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.GetPartWithDetails(gctx, id1)
		left = v
		return err
	})
	g.Go(func() error {
		v, err := s.GetPartWithDetails(gctx, id2)
		right = v
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if left.Details == nil {
		return nil, &models.DetailsNotFoundError{PartID: id1}
	}
	if right.Details == nil {
		return nil, &models.DetailsNotFoundError{PartID: id2}
	}

	if s.metrics != nil {
		s.metrics.ComparisonsTotal.Inc()
	}
	return &dtos.Comparison{
		Left:   *left,
		Right:  *right,
		Deltas: CompareDetails(*left.Details, *right.Details),
	}, nil
}

func (s *CatalogService) viewGeneration(id uint) uint64 {
	s.viewMu.Lock()
	defer s.viewMu.Unlock()
	return s.viewGen[id]
}

// fillView caches view unless the part was invalidated since gen was read.
func (s *CatalogService) fillView(ctx context.Context, id uint, gen uint64, view *dtos.PartView) {
	if s.cache == nil {
		return
	}

	s.viewMu.Lock()
	defer s.viewMu.Unlock()
	if s.viewGen[id] != gen {
		logging.Debug("Dropped stale part view", "part_id", id)
		return
	}
	key := partViewKey(id)
	if err := s.cache.Set(ctx, key, view, s.cacheTTL); err != nil {
		logging.Warn("Part view cache write failed", "key", key, "error", err.Error())
	}
}

// invalidate runs after a write commits. Bumping the generation under viewMu
// stops any fill that read the old row from landing after the delete.
func (s *CatalogService) invalidate(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}

	s.viewMu.Lock()
	defer s.viewMu.Unlock()
	s.viewGen[id]++
	if err := s.cache.Delete(ctx, partViewKey(id)); err != nil {
		logging.Warn("Part view cache invalidation failed", "part_id", id, "error", err.Error())
	}
}

func (s *CatalogService) countCache(hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.CacheHitsTotal.WithLabelValues(string(constants.CachePrefixPartView)).Inc()
	} else {
		s.metrics.CacheMissesTotal.WithLabelValues(string(constants.CachePrefixPartView)).Inc()
	}
}

func partViewKey(id uint) string {
	return string(constants.CachePrefixPartView) + strconv.FormatUint(uint64(id), 10)
}
