package services

import (
	"context"
	"fmt"

	"motofibra/catalog/internal/constants"
	"motofibra/catalog/internal/models/dtos"
	gormModels "motofibra/catalog/internal/models/gorm"

	"github.com/xuri/excelize/v2"
)

const ExportSheet = "Parts"

var exportHeader = []interface{}{
	"ID", "Name", "Brand", "Reference", "Client", "Category",
	"Fabrication time (h)", "Paint time (h)", "Sanding time (h)", "Filler time (h)",
	"Cost", "Resin usage",
}

// PartsWithDetailsLister is satisfied by *repositories.PartRepository.
type PartsWithDetailsLister interface {
	FilterPartsWithDetails(ctx context.Context, filter dtos.PartFilter) ([]gormModels.Part, error)
}

// ExportService writes the filtered catalog to a spreadsheet.
type ExportService struct {
	parts PartsWithDetailsLister
}

func NewExportService(parts PartsWithDetailsLister) *ExportService {
	return &ExportService{parts: parts}
}

// ExportParts builds a workbook with one row per matching part. Unknown
// detail values are left blank. The caller closes the file.
func (s *ExportService) ExportParts(ctx context.Context, filter dtos.PartFilter) (*excelize.File, error) {
	const op = "services.ExportService.ExportParts"

	parts, err := s.parts.FilterPartsWithDetails(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f := excelize.NewFile()
	if err := s.fill(f, parts); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return f, nil
}

func (s *ExportService) fill(f *excelize.File, parts []gormModels.Part) error {
	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &exportHeader); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(ExportSheet, 1, 1, bold); err != nil {
		return err
	}
	if err := f.SetColWidth(ExportSheet, "B", "B", 28); err != nil {
		return err
	}

	for i, p := range parts {
		row := []interface{}{
			p.ID, p.Name, string(p.Brand), p.Reference, string(p.Client), categoryLabel(p.Category),
		}
		var d gormModels.PartDetails
		if p.Details != nil {
			d = *p.Details
		}
		for _, v := range []*float64{d.FabricationTime, d.PaintTime, d.SandingTime, d.FillerTime, d.Cost, d.ResinUsage} {
			if v == nil {
				row = append(row, "")
				continue
			}
			row = append(row, *v)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func categoryLabel(c constants.Category) string {
	if label, ok := constants.CategoryLabels[c]; ok {
		return label
	}
	return string(c)
}
