package ui

import (
	"net/url"
	"strings"

	"motofibra/catalog/internal/common"
	"motofibra/catalog/internal/constants"
	"motofibra/catalog/internal/models/dtos"
	gormModels "motofibra/catalog/internal/models/gorm"
)

var detailFields = []string{"fabrication_time", "paint_time", "sanding_time", "filler_time", "cost", "resin_usage"}

// numberFields parses the named optional numbers. An empty input is left nil;
// anything unparsable is reported in errs.
func numberFields(form url.Values, names ...string) (map[string]*float64, map[string]string) {
	values := make(map[string]*float64, len(names))
	errs := make(map[string]string)
	for _, name := range names {
		v, err := common.ParseOptionalFloat(form.Get(name))
		if err != nil {
			errs[name] = constants.MsgInvalidNumber
			continue
		}
		values[name] = v
	}
	return values, errs
}

func parseCreateForm(form url.Values) (dtos.CreatePartReq, map[string]string) {
	nums, errs := numberFields(form, "fabrication_time", "paint_time", "cost")
	return dtos.CreatePartReq{
		Name:            strings.TrimSpace(form.Get("name")),
		Brand:           form.Get("brand"),
		Reference:       strings.TrimSpace(form.Get("reference")),
		Client:          form.Get("client"),
		Category:        form.Get("category"),
		FabricationTime: nums["fabrication_time"],
		PaintTime:       nums["paint_time"],
		Cost:            nums["cost"],
	}, errs
}

func parseUpdateForm(form url.Values) dtos.UpdatePartReq {
	return dtos.UpdatePartReq{
		Name:      strings.TrimSpace(form.Get("name")),
		Brand:     form.Get("brand"),
		Reference: strings.TrimSpace(form.Get("reference")),
	}
}

func parseDetailsForm(form url.Values) (dtos.DetailsReq, map[string]string) {
	nums, errs := numberFields(form, detailFields...)
	return dtos.DetailsReq{
		FabricationTime: nums["fabrication_time"],
		PaintTime:       nums["paint_time"],
		SandingTime:     nums["sanding_time"],
		FillerTime:      nums["filler_time"],
		Cost:            nums["cost"],
		ResinUsage:      nums["resin_usage"],
	}, errs
}

func partFormValues(p *gormModels.Part) url.Values {
	return url.Values{
		"name":      {p.Name},
		"brand":     {string(p.Brand)},
		"reference": {p.Reference},
	}
}

func detailsFormValues(d *gormModels.PartDetails) url.Values {
	v := url.Values{}
	if d == nil {
		return v
	}
	for name, ptr := range map[string]*float64{
		"fabrication_time": d.FabricationTime,
		"paint_time":       d.PaintTime,
		"sanding_time":     d.SandingTime,
		"filler_time":      d.FillerTime,
		"cost":             d.Cost,
		"resin_usage":      d.ResinUsage,
	} {
		if ptr != nil {
			v.Set(name, formatFloat(ptr))
		}
	}
	return v
}
