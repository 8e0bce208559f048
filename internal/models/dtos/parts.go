package dtos

import (
	gormModels "motofibra/catalog/internal/models/gorm"

	"github.com/shopspring/decimal"
)

// CreatePartReq is the input of part creation. The seed fields are optional;
// details are only created when one of them is non-zero.
type CreatePartReq struct {
	Name      string `json:"name"`
	Brand     string `json:"brand" validate:"brand"`
	Reference string `json:"reference"`
	Client    string `json:"client" validate:"client"`
	Category  string `json:"category" validate:"category"`

	FabricationTime *float64 `json:"fabrication_time,omitempty" validate:"omitempty,nonneg"`
	PaintTime       *float64 `json:"paint_time,omitempty" validate:"omitempty,nonneg"`
	Cost            *float64 `json:"cost,omitempty" validate:"omitempty,nonneg"`
}

// UpdatePartReq overwrites name, brand and reference. Client and category
// cannot change after creation.
type UpdatePartReq struct {
	Name      string `json:"name"`
	Brand     string `json:"brand" validate:"brand"`
	Reference string `json:"reference"`
}

// DetailsReq carries a details update. A nil field was not supplied.
type DetailsReq struct {
	PartID          uint     `json:"part_id,omitempty"`
	FabricationTime *float64 `json:"fabrication_time,omitempty" validate:"omitempty,nonneg"`
	PaintTime       *float64 `json:"paint_time,omitempty" validate:"omitempty,nonneg"`
	SandingTime     *float64 `json:"sanding_time,omitempty" validate:"omitempty,nonneg"`
	FillerTime      *float64 `json:"filler_time,omitempty" validate:"omitempty,nonneg"`
	Cost            *float64 `json:"cost,omitempty" validate:"omitempty,nonneg"`
	ResinUsage      *float64 `json:"resin_usage,omitempty" validate:"omitempty,nonneg"`
}

// PartFilter holds the optional list predicates. Empty strings impose no
// constraint; the rest are ANDed.
type PartFilter struct {
	NameContains string `json:"name,omitempty"`
	Brand        string `json:"brand,omitempty"`
	Category     string `json:"category,omitempty"`
	Client       string `json:"client,omitempty"`
}

func (f PartFilter) Empty() bool {
	return f.NameContains == "" && f.Brand == "" && f.Category == "" && f.Client == ""
}

// PartView is a part together with its details, which may be absent.
type PartView struct {
	Part    gormModels.Part         `json:"part"`
	Details *gormModels.PartDetails `json:"details"`
}

// FieldDelta compares one numeric detail field. Delta is Right - Left and is
// only set when both sides are known.
type FieldDelta struct {
	Field string           `json:"field"`
	Left  *decimal.Decimal `json:"left"`
	Right *decimal.Decimal `json:"right"`
	Delta *decimal.Decimal `json:"delta"`
}

type Comparison struct {
	Left   PartView     `json:"left"`
	Right  PartView     `json:"right"`
	Deltas []FieldDelta `json:"deltas"`
}

// CategorySummary is one row of the per-category report.
type CategorySummary struct {
	Category        string          `json:"category"`
	Parts           int64           `json:"parts"`
	WithDetails     int64           `json:"with_details"`
	AvgCost         decimal.Decimal `json:"avg_cost"`
	TotalResinUsage decimal.Decimal `json:"total_resin_usage"`
	AvgLabourHours  decimal.Decimal `json:"avg_labour_hours"`
}
