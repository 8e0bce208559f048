package services

import (
	"context"
	"database/sql"
	"fmt"

	"motofibra/catalog/internal/models/dtos"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const categorySummaryQuery = `
SELECT p.category AS category,
       COUNT(p.id) AS parts,
       COUNT(d.id) AS with_details,
       AVG(d.cost) AS avg_cost,
       SUM(d.resin_usage) AS total_resin_usage,
       AVG(CASE WHEN d.id IS NULL THEN NULL ELSE
           COALESCE(d.fabrication_time, 0) + COALESCE(d.paint_time, 0) +
           COALESCE(d.sanding_time, 0) + COALESCE(d.filler_time, 0) END) AS avg_labour_hours
FROM parts p
LEFT JOIN part_details d ON d.part_id = p.id
WHERE (? = '' OR p.client = ?)
GROUP BY p.category
ORDER BY p.category`

type categorySummaryRow struct {
	Category        string          `db:"category"`
	Parts           int64           `db:"parts"`
	WithDetails     int64           `db:"with_details"`
	AvgCost         sql.NullFloat64 `db:"avg_cost"`
	TotalResinUsage sql.NullFloat64 `db:"total_resin_usage"`
	AvgLabourHours  sql.NullFloat64 `db:"avg_labour_hours"`
}

// ReportService runs read-only aggregate queries over the catalog tables.
type ReportService struct {
	db *sqlx.DB
}

func NewReportService(db *sqlx.DB) *ReportService {
	return &ReportService{db: db}
}

// CategorySummary aggregates parts and details per category, optionally for
// one client. Unknown detail values are left out of averages and sums.
func (s *ReportService) CategorySummary(ctx context.Context, client string) ([]dtos.CategorySummary, error) {
	const op = "services.ReportService.CategorySummary"

	var rows []categorySummaryRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(categorySummaryQuery), client, client); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]dtos.CategorySummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, dtos.CategorySummary{
			Category:        r.Category,
			Parts:           r.Parts,
			WithDetails:     r.WithDetails,
			AvgCost:         nullDecimal(r.AvgCost),
			TotalResinUsage: nullDecimal(r.TotalResinUsage),
			AvgLabourHours:  nullDecimal(r.AvgLabourHours),
		})
	}
	return out, nil
}

func nullDecimal(v sql.NullFloat64) decimal.Decimal {
	if !v.Valid {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v.Float64).Round(deltaPlaces)
}
