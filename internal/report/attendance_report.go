// Package report renders attendance data as spreadsheets.
package report

import (
	"fmt"
	"io"

	"employee-portal/internal/model"
	"employee-portal/internal/worktime"

	"github.com/xuri/excelize/v2"
)

const (
	attendanceSheet = "Attendance"
	timeLayout      = "2006-01-02 15:04:05"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var attendanceHeader = []interface{}{"Username", "Clock In (UTC)", "Clock Out (UTC)", "Working Hours", "Minutes"}

// WriteAttendance writes one row per session, in the given order, plus a
// total-minutes footer.
func WriteAttendance(w io.Writer, records []model.Attendance) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", attendanceSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(attendanceSheet, "A1", &attendanceHeader); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(attendanceSheet, 1, 1, bold); err != nil {
		return err
	}

	var total int64
	for i, a := range records {
		out := ""
		worked := ""
		if a.ClockOutAt != nil {
			out = a.ClockOutAt.UTC().Format(timeLayout)
			worked = worktime.Format(a.WorkingHours)
		}
		minutes := a.WorkingHours.TotalMinutes()
		total += minutes

		row := []interface{}{a.Username, a.ClockInAt.UTC().Format(timeLayout), out, worked, minutes}
		if err := f.SetSheetRow(attendanceSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	footer := len(records) + 2
	if err := f.SetCellValue(attendanceSheet, fmt.Sprintf("D%d", footer), "Total"); err != nil {
		return err
	}
	if err := f.SetCellValue(attendanceSheet, fmt.Sprintf("E%d", footer), total); err != nil {
		return err
	}
	if err := f.SetCellStyle(attendanceSheet, fmt.Sprintf("D%d", footer), fmt.Sprintf("E%d", footer), bold); err != nil {
		return err
	}
	if err := f.SetColWidth(attendanceSheet, "A", "D", 20); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
