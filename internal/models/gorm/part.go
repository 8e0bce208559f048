package gorm

import (
	"time"

	"motofibra/catalog/internal/constants"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
	gormlib "gorm.io/gorm"
)

// Part is the basic catalog record for one manufactured composite component.
type Part struct {
	ID        uint               `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string             `gorm:"column:name;index" json:"name"`
	NameFold  string             `gorm:"column:name_search;index" json:"-"`
	Brand     constants.Brand    `gorm:"column:brand;index;not null" json:"brand"`
	Reference string             `gorm:"column:reference" json:"reference"`
	Client    constants.Client   `gorm:"column:client;index;not null" json:"client"`
	Category  constants.Category `gorm:"column:category;index;not null" json:"category"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	Details *PartDetails `gorm:"foreignKey:PartID" json:"-"`
}

// TableName specifies the table name for GORM
func (Part) TableName() string {
	return "parts"
}

// BeforeSave keeps the searchable copy of the name in step with Name.
func (p *Part) BeforeSave(tx *gormlib.DB) error {
	p.NameFold = FoldName(p.Name)
	return nil
}

// FoldName is the case-folded, NFC-normalized form used for name searches.
// Both the stored column and the search text go through it.
func FoldName(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// PartDetails holds the optional manufacturing metrics of a part. A nil field
// is unknown, not zero.
type PartDetails struct {
	ID              uint     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PartID          uint     `gorm:"column:part_id;uniqueIndex;not null" json:"part_id"`
	FabricationTime *float64 `gorm:"column:fabrication_time" json:"fabrication_time"`
	PaintTime       *float64 `gorm:"column:paint_time" json:"paint_time"`
	SandingTime     *float64 `gorm:"column:sanding_time" json:"sanding_time"`
	FillerTime      *float64 `gorm:"column:filler_time" json:"filler_time"`
	Cost            *float64 `gorm:"column:cost" json:"cost"`
	ResinUsage      *float64 `gorm:"column:resin_usage" json:"resin_usage"`
}

// TableName specifies the table name for GORM
func (PartDetails) TableName() string {
	return "part_details"
}

// LabourHours sums the known step durations. ok is false when none is known.
func (d PartDetails) LabourHours() (total float64, ok bool) {
	for _, v := range []*float64{d.FabricationTime, d.PaintTime, d.SandingTime, d.FillerTime} {
		if v != nil {
			total += *v
			ok = true
		}
	}
	return total, ok
}
