package services

import (
	"context"
	"testing"

	"motofibra/catalog/internal/models/dtos"
	gormModels "motofibra/catalog/internal/models/gorm"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCatalog(t *testing.T) {
	f := newCatalogFixture(t, MergeSkipFalsy)
	ctx := context.Background()

	created, err := SeedCatalog(ctx, f.svc, gofakeit.New(42), 12, 1)
	require.NoError(t, err)
	assert.Equal(t, 12, created)

	parts, err := f.svc.FilterParts(ctx, dtos.PartFilter{})
	require.NoError(t, err)
	require.Len(t, parts, 12)
	assert.Equal(t, int64(12), f.countRows(t, &gormModels.PartDetails{}))

	for _, p := range parts {
		require.NoError(t, Validate(dtos.UpdatePartReq{Name: p.Name, Brand: string(p.Brand), Reference: p.Reference}))
	}
}

func TestSeedCatalogWithoutDetails(t *testing.T) {
	f := newCatalogFixture(t, MergeSkipFalsy)

	created, err := SeedCatalog(context.Background(), f.svc, gofakeit.New(7), 5, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, created)
	assert.Zero(t, f.countRows(t, &gormModels.PartDetails{}))
}
