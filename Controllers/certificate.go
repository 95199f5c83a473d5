package Controllers

import (
	"net/http"

	"github.com/samer29/vascare-sub001/Models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// SaveCertificate upserts the one medical certificate per consultation. The
// atomic ON CONFLICT replaces a check-then-insert sequence that could
// duplicate under concurrent saves.
func (api *API) SaveCertificate(c *gin.Context) {
	var input Models.Certificate
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
		DoUpdates: clause.AssignmentColumns([]string{"kind", "days", "content", "updated_at"}),
	}).Create(&input).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Certificate saved successfully"})
}

func (api *API) GetCertificate(c *gin.Context) {
	id, ok := consultationParam(c)
	if !ok {
		return
	}
	var certificate Models.Certificate
	if err := api.DB.Where("consultation_id = ?", id).First(&certificate).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Certificate not found"})
		return
	}
	c.JSON(http.StatusOK, certificate)
}

// SaveOrientationLetter upserts the one referral letter per consultation.
func (api *API) SaveOrientationLetter(c *gin.Context) {
	var input Models.OrientationLetter
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
		DoUpdates: clause.AssignmentColumns([]string{"recipient", "content", "updated_at"}),
	}).Create(&input).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Orientation letter saved successfully"})
}

func (api *API) GetOrientationLetter(c *gin.Context) {
	id, ok := consultationParam(c)
	if !ok {
		return
	}
	var letter Models.OrientationLetter
	if err := api.DB.Where("consultation_id = ?", id).First(&letter).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Orientation letter not found"})
		return
	}
	c.JSON(http.StatusOK, letter)
}
