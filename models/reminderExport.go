package models

import (
	"context"
	"fmt"

	"github.com/mmdatafocus/cashflow_guard/utils"
	"github.com/xuri/excelize/v2"
)

const reminderExportSheet = "Reminders"

var reminderExportHeadings = []string{
	"ReminderId", "InvoiceId", "ClientName", "Email", "ReminderDate",
	"Type", "Status", "Message", "Amount", "InvoiceStatus", "CompanyName",
}

// Export renders the filtered reminder list as a workbook.
func (s *ReminderService) Export(ctx context.Context, params ReminderListParams) (*excelize.File, error) {
	views, err := s.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return ReminderWorkbook(views)
}

func ReminderWorkbook(views []ReminderView) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", reminderExportSheet); err != nil {
		return nil, err
	}

	for i, h := range reminderExportHeadings {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(reminderExportSheet, cell, h)
	}

	for i, v := range views {
		row := fmt.Sprint(i + 2)
		amount := ""
		if v.Amount != nil {
			amount = v.Amount.StringFixed(2)
		}
		f.SetCellValue(reminderExportSheet, "A"+row, v.ReminderId.String())
		f.SetCellValue(reminderExportSheet, "B"+row, v.InvoiceId.String())
		f.SetCellValue(reminderExportSheet, "C"+row, v.ClientName)
		f.SetCellValue(reminderExportSheet, "D"+row, v.Email)
		f.SetCellValue(reminderExportSheet, "E"+row, v.ReminderDate)
		f.SetCellValue(reminderExportSheet, "F"+row, string(v.Type))
		f.SetCellValue(reminderExportSheet, "G"+row, string(v.Status))
		f.SetCellValue(reminderExportSheet, "H"+row, utils.DereferencePtr(v.Message, ""))
		f.SetCellValue(reminderExportSheet, "I"+row, amount)
		f.SetCellValue(reminderExportSheet, "J"+row, utils.DereferencePtr(v.InvoiceStatus, ""))
		f.SetCellValue(reminderExportSheet, "K"+row, utils.DereferencePtr(v.CompanyName, ""))
	}
	return f, nil
}
