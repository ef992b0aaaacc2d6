package itemControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/matthews-code/yummybitest3/apperrors"
)

// ImportItemsFromExcelHandler bulk-creates items from an uploaded sheet.
// Expected columns: Name, Price, Inventory (header row skipped). Rows that
// fail validation are skipped and counted, not fatal.
func ImportItemsFromExcelHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("excel file is required"))
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			apperrors.Respond(c, apperrors.Store(err))
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("failed to parse excel file"))
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			apperrors.Respond(c, apperrors.Validation("excel file is empty or missing header row"))
			return
		}

		sheet := xlFile.Sheets[0]
		createdCount, skippedCount := 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			name := get(0)
			price, priceErr := strconv.ParseFloat(get(1), 64)
			if name == "" || priceErr != nil {
				skippedCount++
				continue
			}

			req := ItemRequest{Name: name, Price: &price}
			if invStr := get(2); invStr != "" {
				if inv, invErr := strconv.Atoi(invStr); invErr == nil {
					req.Inventory = &inv
				}
			}

			if _, err := CreateItem(db, req); err != nil {
				skippedCount++
				continue
			}
			createdCount++
		}

		c.JSON(http.StatusOK, gin.H{
			"created": createdCount,
			"skipped": skippedCount,
		})
	}
}
