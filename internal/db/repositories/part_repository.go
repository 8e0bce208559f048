package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"motofibra/catalog/internal/constants"
	"motofibra/catalog/internal/metrics"
	"motofibra/catalog/internal/models"
	"motofibra/catalog/internal/models/dtos"
	gormModels "motofibra/catalog/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DetailsMergeFunc receives the stored details (nil when none exist) and
// returns the row to persist.
type DetailsMergeFunc func(existing *gormModels.PartDetails) *gormModels.PartDetails

// PartRepository handles the parts and part_details tables. Every method runs
// on a session scoped to the call; writes commit before returning.
type PartRepository struct {
	db      *gorm.DB
	metrics *metrics.MetricsRegistry
}

// NewPartRepository creates a new part repository. m may be nil.
func NewPartRepository(db *gorm.DB, m *metrics.MetricsRegistry) *PartRepository {
	return &PartRepository{db: db, metrics: m}
}

// CreatePart inserts the part and, when seed is non-nil, its first details
// row in one transaction. part.ID is set on success.
func (r *PartRepository) CreatePart(ctx context.Context, part *gormModels.Part, seed *gormModels.PartDetails) (err error) {
	const op = "repositories.PartRepository.CreatePart"
	defer r.observe("create_part", &err)()

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(part).Error; err != nil {
			return err
		}
		if seed == nil {
			return nil
		}
		seed.PartID = part.ID
		return tx.Create(seed).Error
	})
	if err != nil {
		part.ID = 0
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetPart returns the part or models.ErrPartNotFound.
func (r *PartRepository) GetPart(ctx context.Context, id uint) (_ *gormModels.Part, err error) {
	const op = "repositories.PartRepository.GetPart"
	defer r.observe("get_part", &err)()

	var part gormModels.Part
	if err = r.db.WithContext(ctx).First(&part, id).Error; err != nil {
		return nil, translate(op, err)
	}
	return &part, nil
}

// GetPartWithDetails returns the part with Details preloaded (nil if absent).
func (r *PartRepository) GetPartWithDetails(ctx context.Context, id uint) (_ *gormModels.Part, err error) {
	const op = "repositories.PartRepository.GetPartWithDetails"
	defer r.observe("get_part_with_details", &err)()

	var part gormModels.Part
	if err = r.db.WithContext(ctx).Preload("Details").First(&part, id).Error; err != nil {
		return nil, translate(op, err)
	}
	return &part, nil
}

// UpdatePart overwrites name, brand and reference. Client, category and the
// part's details are left untouched.
func (r *PartRepository) UpdatePart(ctx context.Context, id uint, name, brand, reference string) (_ *gormModels.Part, err error) {
	const op = "repositories.PartRepository.UpdatePart"
	defer r.observe("update_part", &err)()

	var part gormModels.Part
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&part, id).Error; err != nil {
			return err
		}
		part.Name = name
		part.Brand = constants.Brand(brand)
		part.Reference = reference
		return tx.Omit(clause.Associations).Save(&part).Error
	})
	if err != nil {
		return nil, translate(op, err)
	}
	return &part, nil
}

// GetDetails returns the details of a part, or nil when the part has none.
func (r *PartRepository) GetDetails(ctx context.Context, partID uint) (_ *gormModels.PartDetails, err error) {
	const op = "repositories.PartRepository.GetDetails"
	defer r.observe("get_details", &err)()

	var details gormModels.PartDetails
	err = r.db.WithContext(ctx).
		Where("part_id = ?", partID).
		Take(&details).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &details, nil
}

// MergeDetails loads the part's details and persists whatever merge returns:
// inserted when the part had none, updated otherwise. It fails with
// models.ErrPartNotFound, persisting nothing, when the part does not exist.
func (r *PartRepository) MergeDetails(ctx context.Context, partID uint, merge DetailsMergeFunc) (_ *gormModels.PartDetails, created bool, err error) {
	const op = "repositories.PartRepository.MergeDetails"
	defer r.observe("merge_details", &err)()

	var result *gormModels.PartDetails
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var part gormModels.Part
		if err := tx.Select("id").First(&part, partID).Error; err != nil {
			return err
		}

		var existing *gormModels.PartDetails
		var stored gormModels.PartDetails
		err := tx.Where("part_id = ?", partID).
			Take(&stored).Error
		switch {
		case err == nil:
			existing = &stored
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		result = merge(existing)
		result.PartID = partID
		if existing == nil {
			created = true
			result.ID = 0
			return tx.Create(result).Error
		}
		result.ID = existing.ID
		return tx.Save(result).Error
	})
	if err != nil {
		return nil, false, translate(op, err)
	}
	return result, created, nil
}

// FilterParts returns every part matching all non-empty predicates, in
// creation order.
func (r *PartRepository) FilterParts(ctx context.Context, filter dtos.PartFilter) (_ []gormModels.Part, err error) {
	const op = "repositories.PartRepository.FilterParts"
	defer r.observe("filter_parts", &err)()

	parts := make([]gormModels.Part, 0)
	err = r.db.WithContext(ctx).
		Scopes(partFilterScope(filter)).
		Order("id ASC").
		Find(&parts).Error
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return parts, nil
}

// FilterPartsWithDetails is FilterParts with details preloaded.
func (r *PartRepository) FilterPartsWithDetails(ctx context.Context, filter dtos.PartFilter) (_ []gormModels.Part, err error) {
	const op = "repositories.PartRepository.FilterPartsWithDetails"
	defer r.observe("filter_parts_with_details", &err)()

	parts := make([]gormModels.Part, 0)
	err = r.db.WithContext(ctx).
		Preload("Details").
		Scopes(partFilterScope(filter)).
		Order("id ASC").
		Find(&parts).Error
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return parts, nil
}

// Count returns the total number of parts
func (r *PartRepository) Count(ctx context.Context) (_ int64, err error) {
	const op = "repositories.PartRepository.Count"
	defer r.observe("count_parts", &err)()

	var count int64
	if err = r.db.WithContext(ctx).Model(&gormModels.Part{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

func partFilterScope(filter dtos.PartFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if filter.NameContains != "" {
			pattern := "%" + escapeLike(gormModels.FoldName(filter.NameContains)) + "%"
			q = q.Where("name_search LIKE ? ESCAPE '\\'", pattern)
		}
		if filter.Brand != "" {
			q = q.Where("brand = ?", filter.Brand)
		}
		if filter.Category != "" {
			q = q.Where("category = ?", filter.Category)
		}
		if filter.Client != "" {
			q = q.Where("client = ?", filter.Client)
		}
		return q
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func translate(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrPartNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *PartRepository) observe(queryType string, errp *error) func() {
	if r.metrics == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		outcome := "ok"
		if *errp != nil {
			outcome = "error"
		}
		r.metrics.DBQueriesTotal.WithLabelValues(queryType, outcome).Inc()
		r.metrics.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(start).Seconds())
	}
}
