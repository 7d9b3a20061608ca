package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairyledger/internal/domain/models"
)

// ContentType identifies the generated .xlsx documents.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	milkSheet   = "Milk Entries"
	healthSheet = "Cow Health"
)

var (
	milkHeader   = []any{"Date", "Shift", "Qty", "Fat", "SNF", "CLR", "Rate", "Amount", "Note"}
	healthHeader = []any{"Date", "Shift", "Cow Name", "Temperature", "Milk Given", "Medicine Given", "Note"}
)

// Service builds spreadsheet report documents from record listings.
type Service struct {
	logger *zap.Logger
}

// NewService wires a new export service instance.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// MilkReport renders the entries as a workbook, one row per record. An empty
// listing still yields a valid header-only document.
func (s *Service) MilkReport(entries []models.MilkEntry) (*excelize.File, error) {
	f, err := newWorkbook(milkSheet, milkHeader)
	if err != nil {
		return nil, err
	}

	for i, e := range entries {
		row := []any{
			e.Date,
			e.Shift,
			models.Round2(e.Qty),
			models.Round2(e.Fat),
			models.Round2(e.SNF),
			models.Round2(e.CLR),
			models.Round2(e.RatePerLitre),
			models.Round2(e.Amount),
			e.Note,
		}
		if err := setRow(f, milkSheet, i+2, row); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("milk report built", zap.Int("rows", len(entries)))
	return f, nil
}

// CowHealthReport renders the logs as a workbook, one row per record.
func (s *Service) CowHealthReport(logs []models.CowHealthLog) (*excelize.File, error) {
	f, err := newWorkbook(healthSheet, healthHeader)
	if err != nil {
		return nil, err
	}

	for i, l := range logs {
		row := []any{
			l.Date,
			l.Shift,
			l.CowName,
			models.Round2(l.CowTemperature),
			models.Round2(l.MilkGiven),
			yesNo(l.MedicineGiven),
			l.Note,
		}
		if err := setRow(f, healthSheet, i+2, row); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("cow health report built", zap.Int("rows", len(logs)))
	return f, nil
}

func newWorkbook(sheet string, header []any) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return nil, err
	}
	return f, nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
