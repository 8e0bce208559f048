package repositories

import (
	"context"
	"testing"

	"motofibra/catalog/internal/constants"
	catalogdb "motofibra/catalog/internal/db"
	"motofibra/catalog/internal/metrics"
	"motofibra/catalog/internal/models"
	"motofibra/catalog/internal/models/dtos"
	gormModels "motofibra/catalog/internal/models/gorm"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := catalogdb.Open(catalogdb.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = catalogdb.Close(db) })
	return db
}

func newPart(name, brand, client, category string) *gormModels.Part {
	return &gormModels.Part{
		Name:      name,
		Brand:     constants.Brand(brand),
		Reference: "REF-" + name,
		Client:    constants.Client(client),
		Category:  constants.Category(category),
	}
}

func TestPartRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewPartRepository(setupTestDB(t), nil)

	part := newPart("R1 Fairing", "Yamaha", "MotoFibra", "front-fairing")
	require.NoError(t, repo.CreatePart(ctx, part, nil))
	require.NotZero(t, part.ID)

	got, err := repo.GetPart(ctx, part.ID)
	require.NoError(t, err)
	assert.Equal(t, "R1 Fairing", got.Name)
	assert.Equal(t, "REF-R1 Fairing", got.Reference)

	details, err := repo.GetDetails(ctx, part.ID)
	require.NoError(t, err)
	assert.Nil(t, details)

	withDetails, err := repo.GetPartWithDetails(ctx, part.ID)
	require.NoError(t, err)
	assert.Nil(t, withDetails.Details)
}

func TestPartRepository_CreateWithSeed(t *testing.T) {
	ctx := context.Background()
	repo := NewPartRepository(setupTestDB(t), nil)

	part := newPart("Tank", "Honda", "S2Concept", "tanks")
	seed := &gormModels.PartDetails{Cost: lo.ToPtr(85.0)}
	require.NoError(t, repo.CreatePart(ctx, part, seed))

	details, err := repo.GetDetails(ctx, part.ID)
	require.NoError(t, err)
	require.NotNil(t, details)
	assert.Equal(t, part.ID, details.PartID)
	assert.Equal(t, 85.0, *details.Cost)
	assert.Nil(t, details.PaintTime)
}

func TestPartRepository_IDsAreNotReused(t *testing.T) {
	ctx := context.Background()
	repo := NewPartRepository(setupTestDB(t), nil)

	a := newPart("A", "Honda", "MotoFibra", "tanks")
	b := newPart("B", "Honda", "MotoFibra", "tanks")
	require.NoError(t, repo.CreatePart(ctx, a, nil))
	require.NoError(t, repo.CreatePart(ctx, b, nil))
	assert.Greater(t, b.ID, a.ID)
}

func TestPartRepository_GetMissing(t *testing.T) {
	repo := NewPartRepository(setupTestDB(t), nil)

	_, err := repo.GetPart(context.Background(), 404)
	assert.ErrorIs(t, err, models.ErrPartNotFound)

	_, err = repo.UpdatePart(context.Background(), 404, "x", "Honda", "y")
	assert.ErrorIs(t, err, models.ErrPartNotFound)
}

func TestPartRepository_UpdateKeepsClientCategoryAndDetails(t *testing.T) {
	ctx := context.Background()
	repo := NewPartRepository(setupTestDB(t), nil)

	part := newPart("Scoop", "Ducati", "MotoFibra", "scoops")
	require.NoError(t, repo.CreatePart(ctx, part, &gormModels.PartDetails{PaintTime: lo.ToPtr(2.0)}))

	updated, err := repo.UpdatePart(ctx, part.ID, "Scoop v2", "Triumph", "TR-9")
	require.NoError(t, err)
	assert.Equal(t, "Scoop v2", updated.Name)
	assert.EqualValues(t, "Triumph", updated.Brand)
	assert.EqualValues(t, "MotoFibra", updated.Client)
	assert.EqualValues(t, "scoops", updated.Category)

	details, err := repo.GetDetails(ctx, part.ID)
	require.NoError(t, err)
	require.NotNil(t, details)
	assert.Equal(t, 2.0, *details.PaintTime)
}

func TestPartRepository_MergeDetails(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewPartRepository(db, nil)

	part := newPart("Fender", "Kawasaki", "MotoFibra", "fenders")
	require.NoError(t, repo.CreatePart(ctx, part, nil))

	first, created, err := repo.MergeDetails(ctx, part.ID, func(existing *gormModels.PartDetails) *gormModels.PartDetails {
		assert.Nil(t, existing)
		return &gormModels.PartDetails{Cost: lo.ToPtr(120.0)}
	})
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := repo.MergeDetails(ctx, part.ID, func(existing *gormModels.PartDetails) *gormModels.PartDetails {
		require.NotNil(t, existing)
		merged := *existing
		merged.ResinUsage = lo.ToPtr(3.5)
		return &merged
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&gormModels.PartDetails{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	stored, err := repo.GetDetails(ctx, part.ID)
	require.NoError(t, err)
	assert.Equal(t, 120.0, *stored.Cost)
	assert.Equal(t, 3.5, *stored.ResinUsage)
}

func TestPartRepository_MergeDetailsUnknownPart(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPartRepository(db, nil)

	called := false
	_, _, err := repo.MergeDetails(context.Background(), 77, func(*gormModels.PartDetails) *gormModels.PartDetails {
		called = true
		return &gormModels.PartDetails{}
	})
	assert.ErrorIs(t, err, models.ErrPartNotFound)
	assert.False(t, called)

	var count int64
	require.NoError(t, db.Model(&gormModels.PartDetails{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPartRepository_FilterParts(t *testing.T) {
	ctx := context.Background()
	repo := NewPartRepository(setupTestDB(t), nil)

	fixtures := []*gormModels.Part{
		newPart("Front Pad Fender", "Yamaha", "MotoFibra", "fenders"),
		newPart("Tail Section", "Yamaha", "S2Concept", "tail-section"),
		newPart("Rear PAD guard", "Honda", "MotoFibra", "fenders"),
		newPart("100% carbon tank", "Honda", "S2Concept", "tanks"),
		newPart("side_fairing", "Ducati", "MotoFibra", "side-fairings"),
	}
	for _, p := range fixtures {
		require.NoError(t, repo.CreatePart(ctx, p, nil))
	}

	names := func(parts []gormModels.Part) []string {
		return lo.Map(parts, func(p gormModels.Part, _ int) string { return p.Name })
	}

	tests := []struct {
		name   string
		filter dtos.PartFilter
		want   []string
	}{
		{"empty filter returns all in creation order", dtos.PartFilter{}, []string{
			"Front Pad Fender", "Tail Section", "Rear PAD guard", "100% carbon tank", "side_fairing",
		}},
		{"name is case-insensitive substring", dtos.PartFilter{NameContains: "pad"}, []string{"Front Pad Fender", "Rear PAD guard"}},
		{"brand exact", dtos.PartFilter{Brand: "Honda"}, []string{"Rear PAD guard", "100% carbon tank"}},
		{"category exact", dtos.PartFilter{Category: "fenders"}, []string{"Front Pad Fender", "Rear PAD guard"}},
		{"client exact", dtos.PartFilter{Client: "S2Concept"}, []string{"Tail Section", "100% carbon tank"}},
		{"predicates are ANDed", dtos.PartFilter{NameContains: "pad", Brand: "Yamaha", Category: "fenders", Client: "MotoFibra"}, []string{"Front Pad Fender"}},
		{"percent is literal", dtos.PartFilter{NameContains: "%"}, []string{"100% carbon tank"}},
		{"underscore is literal", dtos.PartFilter{NameContains: "_"}, []string{"side_fairing"}},
		{"brand is not a substring match", dtos.PartFilter{Brand: "Hond"}, []string{}},
		{"no matches", dtos.PartFilter{NameContains: "pad", Client: "S2Concept"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FilterParts(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestPartRepository_FilterPartsWithDetails(t *testing.T) {
	ctx := context.Background()
	repo := NewPartRepository(setupTestDB(t), nil)

	withSeed := newPart("Tank", "Suzuki", "MotoFibra", "tanks")
	require.NoError(t, repo.CreatePart(ctx, withSeed, &gormModels.PartDetails{Cost: lo.ToPtr(10.0)}))
	require.NoError(t, repo.CreatePart(ctx, newPart("Scoop", "Suzuki", "MotoFibra", "scoops"), nil))

	parts, err := repo.FilterPartsWithDetails(ctx, dtos.PartFilter{Brand: "Suzuki"})
	require.NoError(t, err)
	require.Len(t, parts, 2)
	require.NotNil(t, parts[0].Details)
	assert.Equal(t, 10.0, *parts[0].Details.Cost)
	assert.Nil(t, parts[1].Details)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestPartRepository_RecordsMetrics(t *testing.T) {
	ctx := context.Background()
	reg := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	repo := NewPartRepository(setupTestDB(t), reg)

	require.NoError(t, repo.CreatePart(ctx, newPart("A", "Honda", "MotoFibra", "tanks"), nil))
	_, err := repo.GetPart(ctx, 999)
	require.Error(t, err)
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.Equal(t, 1.0, testutil.ToFloat64(reg.DBQueriesTotal.WithLabelValues("create_part", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.DBQueriesTotal.WithLabelValues("get_part", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.DBQueriesTotal.WithLabelValues("count_parts", "ok")))
}

func TestPartRepository_FilterNameUnicode(t *testing.T) {
	ctx := context.Background()
	repo := NewPartRepository(setupTestDB(t), nil)

	require.NoError(t, repo.CreatePart(ctx, newPart("Colín Ñandú", "Aprilia", "S2Concept", "scoops"), nil))
	require.NoError(t, repo.CreatePart(ctx, newPart("Front Pad Fender", "Yamaha", "MotoFibra", "fenders"), nil))

	tests := []struct {
		query string
		want  []string
	}{
		{"ñandú", []string{"Colín Ñandú"}},
		{"ÑANDÚ", []string{"Colín Ñandú"}},
		{"Colín Ñandú", []string{"Colín Ñandú"}},
		{"colín", []string{"Colín Ñandú"}},
		{"PAD", []string{"Front Pad Fender"}},
		{"nandu", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := repo.FilterParts(ctx, dtos.PartFilter{NameContains: tt.query})
			require.NoError(t, err)
			assert.Equal(t, tt.want, lo.Map(got, func(p gormModels.Part, _ int) string { return p.Name }))
		})
	}
}

func TestPartRepository_NameSearchFollowsUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewPartRepository(setupTestDB(t), nil)

	part := newPart("Old Scoop", "Kawasaki", "MotoFibra", "scoops")
	require.NoError(t, repo.CreatePart(ctx, part, nil))

	_, err := repo.UpdatePart(ctx, part.ID, "Écope Neuve", "Kawasaki", "ZX-10")
	require.NoError(t, err)

	got, err := repo.FilterParts(ctx, dtos.PartFilter{NameContains: "écope"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, part.ID, got[0].ID)

	got, err = repo.FilterParts(ctx, dtos.PartFilter{NameContains: "old"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMigrate_BackfillsNameSearch(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewPartRepository(db, nil)

	part := newPart("Ténéré Tank", "Yamaha", "MotoFibra", "tanks")
	require.NoError(t, repo.CreatePart(ctx, part, nil))
	require.NoError(t, db.Model(&gormModels.Part{}).Where("id = ?", part.ID).UpdateColumn("name_search", nil).Error)

	got, err := repo.FilterParts(ctx, dtos.PartFilter{NameContains: "ténéré"})
	require.NoError(t, err)
	require.Empty(t, got)

	require.NoError(t, catalogdb.Migrate(db))

	got, err = repo.FilterParts(ctx, dtos.PartFilter{NameContains: "TÉNÉRÉ"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, part.ID, got[0].ID)
}
