package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	exportSheet      = "Sheet1"
	exportDateLayout = "2006-01-02"
	exportTimeLayout = "03:04 PM"

	headerFillColor = "4CAF50"
	blankFillColor  = "FF9999"
)

var exportColumns = []string{"username", "log_date", "start_time", "break_time", "onseat_time", "leave_time"}

// Export builds the styled XLSX workbook of all log entries and returns
// its bytes plus the timestamped download filename. Returns ErrNoLogs
// when there is nothing to export.
func (s *Service) Export(ctx context.Context) ([]byte, string, error) {
	entries, err := s.repo.Logs(ctx)
	if err != nil {
		return nil, "", err
	}
	if len(entries) == 0 {
		return nil, "", ErrNoLogs
	}

	data, err := buildWorkbook(entries)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("logs_%s.xlsx", s.Now().Format("20060102_150405"))
	return data, filename, nil
}

func buildWorkbook(entries []Timesheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}

	for col, title := range exportColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, title); err != nil {
			return nil, err
		}
	}

	lastHeaderCell, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	if err := f.SetCellStyle(exportSheet, "A1", lastHeaderCell, headerStyle); err != nil {
		return nil, err
	}

	widths := make([]int, len(exportColumns))
	for i, title := range exportColumns {
		widths[i] = len(title)
	}

	for row, e := range entries {
		values := []string{
			e.Username,
			e.Date.Format(exportDateLayout),
			formatTime(e.Start),
			formatTime(e.Break),
			formatTime(e.OnSeat),
			formatTime(e.Leave),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
			if len(v) > widths[col] {
				widths[col] = len(v)
			}
		}
	}

	for col := range exportColumns {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(exportSheet, name, name, float64(widths[col]+5)); err != nil {
			return nil, err
		}
	}

	lastRow := len(entries) + 1

	// Missing punches stand out in pink so gaps are visible at a glance.
	blankFormat, err := f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{blankFillColor}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	timeRange := fmt.Sprintf("C2:F%d", lastRow)
	if err := f.SetConditionalFormat(exportSheet, timeRange, []excelize.ConditionalFormatOptions{
		{Type: "blanks", Format: blankFormat},
	}); err != nil {
		return nil, err
	}

	fullRange := fmt.Sprintf("A1:%s", mustCellName(len(exportColumns), lastRow))
	if err := f.AutoFilter(exportSheet, fullRange, nil); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(exportTimeLayout)
}

func mustCellName(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}
