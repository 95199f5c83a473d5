package Controllers

import (
	"net/http"
	"strconv"

	"github.com/samer29/vascare-sub001/Models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

func (api *API) FetchInvoice(c *gin.Context) {
	consultationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var lines []Models.InvoiceLine
	if err := api.DB.Model(&Models.InvoiceLine{}).Where("consultation_id = ?", consultationID).Find(&lines).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var status Models.InvoiceStatus
	api.DB.Model(&Models.InvoiceStatus{}).Where("consultation_id = ?", consultationID).Limit(1).Find(&status)

	var total float64
	for _, line := range lines {
		total += line.UnitPrice * float64(line.Quantity)
	}

	c.JSON(http.StatusOK, gin.H{"lines": lines, "status": status, "total": total})
}

func (api *API) AddInvoiceLine(c *gin.Context) {
	var input Models.InvoiceLine
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.ConsultationID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "consultation_id is required"})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	if err := api.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice line added successfully", "line": input})
}

func (api *API) DeleteInvoiceLine(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	res := api.DB.Unscoped().Delete(&Models.InvoiceLine{}, "id = ?", id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice line not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice line deleted successfully"})
}

// SaveInvoiceStatus upserts the one payment-status row per consultation in a
// single atomic statement keyed on the unique consultation_id, so two
// concurrent saves cannot produce duplicates.
func (api *API) SaveInvoiceStatus(c *gin.Context) {
	var input Models.InvoiceStatus
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.ConsultationID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "consultation_id is required"})
		return
	}
	input.ID = 0

	err := api.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "consultation_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_paid", "payment_method", "paid_at", "updated_at"}),
	}).Create(&input).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice status saved successfully"})
}
