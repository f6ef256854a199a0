// Package export renders voucher documents as spreadsheet workbooks.
package export

import (
	"fmt"

	"github.com/hesab/backend/internal/domain/identity"
	"github.com/hesab/backend/internal/domain/voucher"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ContentTypeXLSX is the media type of the exported workbook
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const sheetName = "Voucher"

// Row layout: six header rows, a blank row, the table header, entries, totals.
const (
	headerRows     = 6
	tableHeaderRow = headerRows + 2
)

var entryColumns = []string{"#", "Account Code", "Account Name", "Description", "Debit", "Credit"}

// VoucherExporter writes a voucher into an XLSX workbook
type VoucherExporter struct {
	logger *zap.Logger
	// RightToLeft renders the sheet right to left
	RightToLeft bool
}

// NewVoucherExporter creates an exporter
func NewVoucherExporter(logger *zap.Logger, rightToLeft bool) *VoucherExporter {
	return &VoucherExporter{logger: logger, RightToLeft: rightToLeft}
}

// Filename returns the download name of an exported voucher
func Filename(d *voucher.Document) string {
	if d.VoucherNumber == "" {
		return d.ID.String() + ".xlsx"
	}
	return d.VoucherNumber + ".xlsx"
}

// Export builds the workbook. company may be nil before setup completes.
func (e *VoucherExporter) Export(d *voucher.Document, company *identity.Company) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.logger.Warn("Failed to close workbook", zap.Error(err))
		}
	}()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if e.RightToLeft {
		rtl := true
		if err := f.SetSheetView(sheetName, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
			return nil, fmt.Errorf("failed to set sheet view: %w", err)
		}
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4, Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	w := &sheetWriter{f: f}
	companyName := ""
	if company != nil {
		companyName = company.Name
	}
	header := [][2]any{
		{"Company", companyName},
		{"Voucher Number", d.VoucherNumber},
		{"Date", d.Date.Format("2006-01-02")},
		{"Period", d.Period},
		{"Status", d.Status.String()},
		{"Description", d.Description},
	}
	for i, kv := range header {
		row := i + 1
		w.set(1, row, kv[0])
		w.set(2, row, kv[1])
		w.style(1, row, 1, row, boldStyle)
	}

	for i, title := range entryColumns {
		w.set(i+1, tableHeaderRow, title)
	}
	w.style(1, tableHeaderRow, len(entryColumns), tableHeaderRow, boldStyle)

	row := tableHeaderRow
	for i, entry := range d.Entries {
		row = tableHeaderRow + 1 + i
		w.set(1, row, i+1)
		w.set(2, row, entry.AccountCode)
		w.set(3, row, entry.AccountName)
		w.set(4, row, entry.Description)
		w.set(5, row, entry.DebitAmount.InexactFloat64())
		w.set(6, row, entry.CreditAmount.InexactFloat64())
		w.style(5, row, 6, row, amountStyle)
	}

	report := d.Check()
	totalRow := row + 1
	w.set(4, totalRow, "Total")
	w.set(5, totalRow, report.TotalDebit.InexactFloat64())
	w.set(6, totalRow, report.TotalCredit.InexactFloat64())
	w.style(4, totalRow, 6, totalRow, totalStyle)

	if w.err != nil {
		return nil, w.err
	}
	if err := f.SetColWidth(sheetName, "B", "D", 24); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "E", "F", 18); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	e.logger.Debug("Voucher exported",
		zap.String("voucher_number", d.VoucherNumber),
		zap.Int("entries", len(d.Entries)),
		zap.Int("bytes", buf.Len()),
	)
	return buf.Bytes(), nil
}

// sheetWriter keeps the first error so cell writes read as a list
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) set(col, row int, value any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetCellValue(sheetName, cell, value); err != nil {
		w.err = fmt.Errorf("failed to set %s: %w", cell, err)
	}
}

func (w *sheetWriter) style(col1, row1, col2, row2, styleID int) {
	if w.err != nil {
		return
	}
	from, err := excelize.CoordinatesToCellName(col1, row1)
	if err != nil {
		w.err = err
		return
	}
	to, err := excelize.CoordinatesToCellName(col2, row2)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetCellStyle(sheetName, from, to, styleID); err != nil {
		w.err = fmt.Errorf("failed to style %s:%s: %w", from, to, err)
	}
}
