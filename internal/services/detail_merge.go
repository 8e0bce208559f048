package services

import (
	"fmt"

	"motofibra/catalog/internal/constants"
	"motofibra/catalog/internal/models/dtos"
	gormModels "motofibra/catalog/internal/models/gorm"

	"github.com/samber/lo"
)

// DetailMergePolicy decides how a details update is folded into a stored row.
type DetailMergePolicy int

const (
	// MergeSkipFalsy ignores supplied zeros: a stored value can never be
	// overwritten with 0 through a merge.
	MergeSkipFalsy DetailMergePolicy = iota
	// MergeExplicit overwrites with every supplied value, zero included.
	MergeExplicit
)

func ParseMergePolicy(mode string) (DetailMergePolicy, error) {
	switch mode {
	case "", constants.MergeModeSkipFalsy:
		return MergeSkipFalsy, nil
	case constants.MergeModeExplicit:
		return MergeExplicit, nil
	default:
		return 0, fmt.Errorf("unknown details merge mode %q", mode)
	}
}

func (p DetailMergePolicy) String() string {
	if p == MergeExplicit {
		return constants.MergeModeExplicit
	}
	return constants.MergeModeSkipFalsy
}

// Merge returns the row to persist. Without an existing row every supplied
// value is stored as given and the rest stay unknown.
func (p DetailMergePolicy) Merge(existing *gormModels.PartDetails, upd dtos.DetailsReq) *gormModels.PartDetails {
	if existing == nil {
		return &gormModels.PartDetails{
			FabricationTime: clone(upd.FabricationTime),
			PaintTime:       clone(upd.PaintTime),
			SandingTime:     clone(upd.SandingTime),
			FillerTime:      clone(upd.FillerTime),
			Cost:            clone(upd.Cost),
			ResinUsage:      clone(upd.ResinUsage),
		}
	}

	merged := *existing
	p.apply(&merged.FabricationTime, upd.FabricationTime)
	p.apply(&merged.PaintTime, upd.PaintTime)
	p.apply(&merged.SandingTime, upd.SandingTime)
	p.apply(&merged.FillerTime, upd.FillerTime)
	p.apply(&merged.Cost, upd.Cost)
	p.apply(&merged.ResinUsage, upd.ResinUsage)
	return &merged
}

func (p DetailMergePolicy) apply(dst **float64, v *float64) {
	if v == nil {
		return
	}
	if p == MergeSkipFalsy && *v == 0 {
		return
	}
	*dst = clone(v)
}

// SeedDetails returns the details to create alongside a new part, or nil when
// none of fabrication time, paint time or cost is supplied and non-zero.
func SeedDetails(req dtos.CreatePartReq) *gormModels.PartDetails {
	if !nonZero(req.FabricationTime) && !nonZero(req.PaintTime) && !nonZero(req.Cost) {
		return nil
	}
	return &gormModels.PartDetails{
		FabricationTime: clone(req.FabricationTime),
		PaintTime:       clone(req.PaintTime),
		Cost:            clone(req.Cost),
	}
}

func nonZero(v *float64) bool {
	return v != nil && *v != 0
}

func clone(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return lo.ToPtr(*v)
}
