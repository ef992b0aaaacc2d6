package orderControllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/matthews-code/yummybitest3/apperrors"
	"github.com/matthews-code/yummybitest3/models"
)

// ExportOrdersToExcelHandler writes the given day's orders as a spreadsheet,
// one row per order with its lines flattened into a single cell.
func ExportOrdersToExcelHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dateStr := c.Query("date")
		if dateStr == "" {
			apperrors.Respond(c, apperrors.Validation("date query parameter is required"))
			return
		}
		day, err := time.Parse(time.RFC3339, dateStr)
		if err != nil {
			apperrors.Respond(c, apperrors.Validationf("invalid date %q, want RFC3339", dateStr))
			return
		}

		orders, err := ListOrdersForDay(db, day)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		// customer names for readable rows
		var customers []models.Customer
		if err := db.Find(&customers).Error; err != nil {
			apperrors.Respond(c, apperrors.Store(err))
			return
		}
		names := make(map[string]string, len(customers))
		for _, customer := range customers {
			name := customer.FirstName
			if customer.LastName != nil {
				name += " " + *customer.LastName
			}
			names[customer.CustomerUID] = name
		}

		itemNames := make(map[string]string)
		var items []models.Item
		if err := db.Find(&items).Error; err != nil {
			apperrors.Respond(c, apperrors.Store(err))
			return
		}
		for _, item := range items {
			itemNames[item.ItemUID] = item.Name
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			apperrors.Respond(c, apperrors.Store(err))
			return
		}

		headers := []string{
			"OrderUID", "Date", "Customer", "AmountDue",
			"PaymentMode", "DeliveryMode", "Paid", "Collected", "Note", "Lines",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, order := range orders {
			row := sheet.AddRow()
			row.AddCell().SetValue(order.OrderUID)
			row.AddCell().SetValue(order.Date.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(names[order.CustomerUID])
			row.AddCell().SetValue(order.AmountDue)
			row.AddCell().SetValue(string(order.PaymentMode))
			row.AddCell().SetValue(string(order.DeliveryMode))
			row.AddCell().SetValue(order.Paid)
			row.AddCell().SetValue(order.Collected)
			row.AddCell().SetValue(order.Note)

			lines := ""
			for i, line := range order.Lines {
				if i > 0 {
					lines += "; "
				}
				name := itemNames[line.ItemUID]
				if name == "" {
					name = line.ItemUID
				}
				lines += fmt.Sprintf("%s x%d (x%d)", name, line.Quantity, line.Multiplier)
			}
			row.AddCell().SetValue(lines)
		}

		filename := fmt.Sprintf("orders-%s.xlsx", day.UTC().Format("2006-01-02"))
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			apperrors.Respond(c, apperrors.Store(err))
			return
		}
	}
}
