package orderControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

// GET /admin/orders/export-excel
func ExportOrdersToExcel(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := repo.All(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "Email", "Total", "Status", "SessionRef", "PaymentRef", "Items", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()

			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(o.Email)
			row.AddCell().SetValue(o.Total.StringFixed(2))
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(o.SessionRef)
			row.AddCell().SetValue(o.PaymentRef)

			var items []string
			for _, item := range o.Items {
				items = append(items, strconv.Itoa(int(item.ProductID))+"x"+strconv.Itoa(item.Quantity))
			}
			row.AddCell().SetValue(strings.Join(items, ","))

			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
