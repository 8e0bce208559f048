package services

import (
	"motofibra/catalog/internal/models/dtos"
	gormModels "motofibra/catalog/internal/models/gorm"

	"github.com/shopspring/decimal"
)

const deltaPlaces = 2

// CompareDetails lists every numeric detail field plus the labour total, with
// right minus left where both sides are known.
func CompareDetails(left, right gormModels.PartDetails) []dtos.FieldDelta {
	leftHours, leftOK := left.LabourHours()
	rightHours, rightOK := right.LabourHours()

	deltas := []dtos.FieldDelta{
		fieldDelta("fabrication_time", left.FabricationTime, right.FabricationTime),
		fieldDelta("paint_time", left.PaintTime, right.PaintTime),
		fieldDelta("sanding_time", left.SandingTime, right.SandingTime),
		fieldDelta("filler_time", left.FillerTime, right.FillerTime),
		fieldDelta("labour_hours", optional(leftHours, leftOK), optional(rightHours, rightOK)),
		fieldDelta("cost", left.Cost, right.Cost),
		fieldDelta("resin_usage", left.ResinUsage, right.ResinUsage),
	}
	return deltas
}

func fieldDelta(field string, left, right *float64) dtos.FieldDelta {
	fd := dtos.FieldDelta{Field: field}
	if left != nil {
		l := decimal.NewFromFloat(*left).Round(deltaPlaces)
		fd.Left = &l
	}
	if right != nil {
		r := decimal.NewFromFloat(*right).Round(deltaPlaces)
		fd.Right = &r
	}
	if fd.Left != nil && fd.Right != nil {
		d := fd.Right.Sub(*fd.Left)
		fd.Delta = &d
	}
	return fd
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}
