// Package report exports run results to spreadsheets.
package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/xuri/excelize/v2"

	"github.com/username/attendance-sheets/internal/attendance"
)

const (
	summarySheet   = "Podsumowanie"
	employeesSheet = "Pracownicy"
	holidaysSheet  = "Święta"
)

var employeeColumns = []string{
	"Pracownik", "Status", "Wymiar godzin", "PDF", "Rozmiar", "Błąd",
}

// Writer builds an XLSX workbook sheet by sheet
type Writer struct {
	file         *excelize.File
	currentSheet string
	currentRow   int
}

// NewWriter creates an empty workbook
func NewWriter() *Writer {
	return &Writer{
		file: excelize.NewFile(),
	}
}

// AddSheet adds a sheet and makes it current
func (w *Writer) AddSheet(name string) error {
	// Excel limits sheet names to 31 characters
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}

	if w.currentSheet == "" {
		if err := w.file.SetSheetName("Sheet1", name); err != nil {
			return fmt.Errorf("rename sheet %s: %w", name, err)
		}
	} else {
		if _, err := w.file.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	w.currentSheet = name
	w.currentRow = 1
	return nil
}

// WriteHeader writes bold column headers to the current sheet
func (w *Writer) WriteHeader(columns []string) error {
	row := make([]interface{}, len(columns))
	for i, c := range columns {
		row[i] = c
	}
	if err := w.WriteRow(row); err != nil {
		return err
	}

	style, err := w.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, w.currentRow-1)
		endCell, _ := excelize.CoordinatesToCellName(len(columns), w.currentRow-1)
		_ = w.file.SetCellStyle(w.currentSheet, startCell, endCell, style)
	}

	return nil
}

// WriteRow writes a data row to the current sheet
func (w *Writer) WriteRow(row []interface{}) error {
	if w.currentSheet == "" {
		return fmt.Errorf("no active sheet")
	}

	for i, val := range row {
		cell, err := excelize.CoordinatesToCellName(i+1, w.currentRow)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.currentSheet, cell, val); err != nil {
			return err
		}
	}

	w.currentRow++
	return nil
}

// Save writes the workbook to wr
func (w *Writer) Save(wr io.Writer) error {
	return w.file.Write(wr)
}

// SaveToFile writes the workbook to disk
func (w *Writer) SaveToFile(path string) error {
	return w.file.SaveAs(path)
}

// Close releases resources
func (w *Writer) Close() error {
	return w.file.Close()
}

// WriteRunReport writes a workbook describing result to path
func WriteRunReport(path string, result *attendance.RunResult) error {
	w := NewWriter()
	defer w.Close()

	if err := writeRun(w, result); err != nil {
		return err
	}

	if err := w.SaveToFile(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func writeRun(w *Writer, result *attendance.RunResult) error {
	if err := w.AddSheet(summarySheet); err != nil {
		return err
	}
	summary := [][]interface{}{
		{"Rok", result.Year},
		{"Miesiąc", result.MonthName},
		{"Wymiar czasu pracy (pełny etat)", result.TotalHours},
		{"Wydruk", result.Print},
		{"Rozpoczęto", result.StartedAt},
		{"Zakończono", result.FinishedAt},
		{"Wygenerowano", result.Count(attendance.StatusGenerated) + result.Count(attendance.StatusPrinted)},
		{"Błędy", result.Count(attendance.StatusFailed)},
		{"Pominięto", result.Count(attendance.StatusSkipped)},
	}
	for _, row := range summary {
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}

	if err := w.AddSheet(employeesSheet); err != nil {
		return err
	}
	if err := w.WriteHeader(employeeColumns); err != nil {
		return err
	}
	for _, e := range result.Employees {
		var hours interface{} = e.Hours
		if e.HideHours {
			hours = ""
		}
		size := ""
		if e.PDFSize > 0 {
			size = humanize.Bytes(uint64(e.PDFSize))
		}
		if err := w.WriteRow([]interface{}{e.Name, e.Status, hours, e.PDF, size, e.Error}); err != nil {
			return err
		}
	}

	if err := w.AddSheet(holidaysSheet); err != nil {
		return err
	}
	if err := w.WriteHeader([]string{"Święto"}); err != nil {
		return err
	}
	for _, h := range result.Holidays {
		if err := w.WriteRow([]interface{}{h}); err != nil {
			return err
		}
	}

	return nil
}
