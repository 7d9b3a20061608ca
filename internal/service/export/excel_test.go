package export

import (
	"testing"

	"github.com/mamadbah2/dairyledger/internal/domain/models"
)

func TestMilkReport(t *testing.T) {
	svc := NewService(nil)

	entries := []models.MilkEntry{
		{Date: "2026-01-05", Shift: "morning", Qty: 10, Fat: 4.0, SNF: 8.5, CLR: 28, RatePerLitre: 35, Amount: 350, Note: "fresh"},
		{Date: "2026-01-05", Shift: "evening", Qty: 8, Fat: 3.8, SNF: 8.2, CLR: 27, RatePerLitre: 35, Amount: 280},
	}

	f, err := svc.MilkReport(entries)
	if err != nil {
		t.Fatalf("MilkReport() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Milk Entries")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3 (header + 2 records)", len(rows))
	}

	wantHeader := []string{"Date", "Shift", "Qty", "Fat", "SNF", "CLR", "Rate", "Amount", "Note"}
	for i, want := range wantHeader {
		if i >= len(rows[0]) || rows[0][i] != want {
			t.Fatalf("header = %v, want %v", rows[0], wantHeader)
		}
	}

	checks := map[string]string{
		"A2": "2026-01-05",
		"B2": "morning",
		"C2": "10",
		"H2": "350",
		"I2": "fresh",
		"B3": "evening",
		"H3": "280",
	}
	for cell, want := range checks {
		got, err := f.GetCellValue("Milk Entries", cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) error = %v", cell, err)
		}
		if got != want {
			t.Errorf("cell %s = %q, want %q", cell, got, want)
		}
	}
}

func TestMilkReportEmptyListing(t *testing.T) {
	svc := NewService(nil)

	f, err := svc.MilkReport(nil)
	if err != nil {
		t.Fatalf("MilkReport() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Milk Entries")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("empty listing should yield a header-only document, got %d rows", len(rows))
	}
}

func TestCowHealthReport(t *testing.T) {
	svc := NewService(nil)

	logs := []models.CowHealthLog{
		{Date: "2026-01-05", Shift: "morning", CowName: "Ganga", CowTemperature: 38.6, MilkGiven: 9.5, MedicineGiven: true, Note: "fever"},
		{Date: "2026-01-06", Shift: "evening", CowName: "Lakshmi", CowTemperature: 38.2, MilkGiven: 11, MedicineGiven: false},
	}

	f, err := svc.CowHealthReport(logs)
	if err != nil {
		t.Fatalf("CowHealthReport() error = %v", err)
	}
	defer f.Close()

	checks := map[string]string{
		"A1": "Date",
		"C1": "Cow Name",
		"F1": "Medicine Given",
		"C2": "Ganga",
		"D2": "38.6",
		"F2": "Yes",
		"F3": "No",
	}
	for cell, want := range checks {
		got, err := f.GetCellValue("Cow Health", cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) error = %v", cell, err)
		}
		if got != want {
			t.Errorf("cell %s = %q, want %q", cell, got, want)
		}
	}
}
