package Controllers

import (
	"net/http"
	"strconv"

	"github.com/samer29/vascare-sub001/Models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// Imaging report handlers. One table per modality, at most one report per
// consultation, saved with a single ON CONFLICT statement on the unique
// consultation_id.

type reportInput struct {
	ConsultationID uint   `json:"consultation_id" binding:"required"`
	Template       string `json:"template"`
	Content        string `json:"content"`
}

var reportConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "consultation_id"}},
	DoUpdates: clause.AssignmentColumns([]string{"template", "content", "updated_at"}),
}

func bindReport(c *gin.Context) (reportInput, bool) {
	var input reportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return input, false
	}
	return input, true
}

func consultationParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (api *API) SaveEchographyReport(c *gin.Context) {
	input, ok := bindReport(c)
	if !ok {
		return
	}
	report := Models.EchographyReport{ConsultationID: input.ConsultationID, Template: input.Template, Content: input.Content}
	if err := api.DB.Clauses(reportConflict).Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Echography report saved successfully"})
}

func (api *API) GetEchographyReport(c *gin.Context) {
	id, ok := consultationParam(c)
	if !ok {
		return
	}
	var report Models.EchographyReport
	if err := api.DB.Where("consultation_id = ?", id).First(&report).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (api *API) SaveDopplerReport(c *gin.Context) {
	input, ok := bindReport(c)
	if !ok {
		return
	}
	report := Models.DopplerReport{ConsultationID: input.ConsultationID, Template: input.Template, Content: input.Content}
	if err := api.DB.Clauses(reportConflict).Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doppler report saved successfully"})
}

func (api *API) GetDopplerReport(c *gin.Context) {
	id, ok := consultationParam(c)
	if !ok {
		return
	}
	var report Models.DopplerReport
	if err := api.DB.Where("consultation_id = ?", id).First(&report).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (api *API) SaveEcgReport(c *gin.Context) {
	input, ok := bindReport(c)
	if !ok {
		return
	}
	report := Models.EcgReport{ConsultationID: input.ConsultationID, Template: input.Template, Content: input.Content}
	if err := api.DB.Clauses(reportConflict).Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ECG report saved successfully"})
}

func (api *API) GetEcgReport(c *gin.Context) {
	id, ok := consultationParam(c)
	if !ok {
		return
	}
	var report Models.EcgReport
	if err := api.DB.Where("consultation_id = ?", id).First(&report).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (api *API) SaveThyroidReport(c *gin.Context) {
	input, ok := bindReport(c)
	if !ok {
		return
	}
	report := Models.ThyroidReport{ConsultationID: input.ConsultationID, Template: input.Template, Content: input.Content}
	if err := api.DB.Clauses(reportConflict).Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Thyroid report saved successfully"})
}

func (api *API) GetThyroidReport(c *gin.Context) {
	id, ok := consultationParam(c)
	if !ok {
		return
	}
	var report Models.ThyroidReport
	if err := api.DB.Where("consultation_id = ?", id).First(&report).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}
	c.JSON(http.StatusOK, report)
}
