package services

import (
	"context"
	"fmt"
	"strings"

	"motofibra/catalog/internal/constants"
	"motofibra/catalog/internal/models/dtos"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// SeedCatalog creates n generated parts. detailsShare is the probability that
// a part also gets a full details row. It returns how many parts were created.
func SeedCatalog(ctx context.Context, catalog *CatalogService, faker *gofakeit.Faker, n int, detailsShare float64) (int, error) {
	const op = "services.SeedCatalog"

	for i := 0; i < n; i++ {
		brand := constants.Brands[faker.IntN(len(constants.Brands))]
		category := constants.Categories[faker.IntN(len(constants.Categories))]

		req := dtos.CreatePartReq{
			Name:      fmt.Sprintf("%s %s %s", brand, faker.AdjectiveDescriptive(), constants.CategoryLabels[category]),
			Brand:     string(brand),
			Reference: strings.ToUpper(faker.LetterN(2)) + "-" + faker.Numerify("####"),
			Client:    string(constants.Clients[faker.IntN(len(constants.Clients))]),
			Category:  string(category),
		}
		part, err := catalog.CreatePart(ctx, req)
		if err != nil {
			return i, fmt.Errorf("%s: %w", op, err)
		}

		if faker.Float64() >= detailsShare {
			continue
		}
		_, err = catalog.CreateOrMergeDetails(ctx, part.ID, dtos.DetailsReq{
			FabricationTime: lo.ToPtr(round2(faker.Float64Range(1, 12))),
			PaintTime:       lo.ToPtr(round2(faker.Float64Range(0.5, 4))),
			SandingTime:     lo.ToPtr(round2(faker.Float64Range(0.5, 3))),
			FillerTime:      lo.ToPtr(round2(faker.Float64Range(0, 2))),
			Cost:            lo.ToPtr(round2(faker.Float64Range(20, 400))),
			ResinUsage:      lo.ToPtr(round2(faker.Float64Range(0.2, 5))),
		})
		if err != nil {
			return i + 1, fmt.Errorf("%s: %w", op, err)
		}
	}
	return n, nil
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
