package leave

import (
	"io"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Leaves"

var exportHeader = []any{
	"Employee Code", "Employee Name", "Leave Type", "From", "To", "Days", "Status", "Applied Date",
}

// writeWorkbook renders one row per request into a single-sheet xlsx file.
func writeWorkbook(w io.Writer, leaves []Leave) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return err
	}

	for i, l := range leaves {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		var code, name string
		if l.Employee != nil {
			code, name = l.Employee.EmployeeCode, l.Employee.Name
		}
		row := []any{
			code,
			name,
			string(l.LeaveType),
			l.FromDate.Format(dateLayout),
			l.ToDate.Format(dateLayout),
			l.Days,
			string(l.Status),
			l.AppliedDate.Format(dateLayout),
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}
