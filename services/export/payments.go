package export

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/coachdesk/core"
	"github.com/trezcool/coachdesk/core/payment"
)

var paymentHeaders = []string{"Date", "Student", "Amount", "Method", "Status", "Month", "Transaction", "Notes"}

// WritePayments writes the month's payments and its revenue summary as an xlsx workbook.
func WritePayments(w io.Writer, month string, payments []payment.StudentPayment, summary payment.Summary) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheetName := "Payments " + month
	f.SetSheetName(f.GetSheetName(0), sheetName)

	var err error
	for i, header := range paymentHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err = f.SetCellValue(sheetName, cell, header); err != nil {
			return errors.Wrap(err, "writing headers")
		}
	}

	row := 2
	for _, p := range payments {
		amount, _ := p.Amount.Float64()
		values := []interface{}{
			core.FormatDate(p.PaymentDate),
			p.StudentName,
			amount,
			p.PaymentMethod.String,
			p.Status,
			p.Month,
			p.TransactionID,
			p.Notes.String,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err = f.SetCellValue(sheetName, cell, v); err != nil {
				return errors.Wrapf(err, "writing payment #%d", p.ID)
			}
		}
		row++
	}

	row++
	total, _ := summary.Total.Float64()
	average, _ := summary.Average().Float64()
	footer := [][2]interface{}{
		{"Completed payments", summary.Count},
		{"Revenue", total},
		{"Average", average},
	}
	for _, kv := range footer {
		if err = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), kv[0]); err != nil {
			return errors.Wrap(err, "writing summary")
		}
		if err = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), kv[1]); err != nil {
			return errors.Wrap(err, "writing summary")
		}
		row++
	}

	if err = f.Write(w); err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	return nil
}
