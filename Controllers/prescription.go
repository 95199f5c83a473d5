package Controllers

import (
	"net/http"
	"strconv"

	"github.com/samer29/vascare-sub001/Models"

	"github.com/gin-gonic/gin"
)

func (api *API) FetchPrescriptions(c *gin.Context) {
	consultationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var prescriptions []Models.Prescription
	if err := api.DB.Model(&Models.Prescription{}).Where("consultation_id = ?", consultationID).Find(&prescriptions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type prescriptionWithLines struct {
		Models.Prescription
		Lines []Models.PrescriptionLine `json:"lines"`
	}

	output := make([]prescriptionWithLines, 0, len(prescriptions))
	for _, prescription := range prescriptions {
		entry := prescriptionWithLines{Prescription: prescription}
		if err := api.DB.Model(&Models.PrescriptionLine{}).Where("prescription_id = ?", prescription.ID).Find(&entry.Lines).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		output = append(output, entry)
	}
	c.JSON(http.StatusOK, output)
}

// CreatePrescription inserts the prescription and its lines together. Lines
// carry the consultation id as well, keeping them a sibling table for the
// deletion fan-out.
func (api *API) CreatePrescription(c *gin.Context) {
	var input struct {
		ConsultationID uint                      `json:"consultation_id"`
		Date           string                    `json:"date"`
		Notes          string                    `json:"notes"`
		Lines          []Models.PrescriptionLine `json:"lines"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.ConsultationID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "consultation_id is required"})
		return
	}

	tx := api.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	prescription := Models.Prescription{ConsultationID: input.ConsultationID, Date: input.Date, Notes: input.Notes}
	if err := tx.Create(&prescription).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	for index := range input.Lines {
		input.Lines[index].ID = 0
		input.Lines[index].PrescriptionID = prescription.ID
		input.Lines[index].ConsultationID = input.ConsultationID
	}
	if len(input.Lines) > 0 {
		if err := tx.Create(&input.Lines).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Prescription created successfully", "prescription": prescription})
}

// DeletePrescription removes the prescription and its lines; both are scoped
// to one consultation, so no wider cleanup is involved.
func (api *API) DeletePrescription(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	tx := api.DB.Begin()
	if err := tx.Unscoped().Where("prescription_id = ?", id).Delete(&Models.PrescriptionLine{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	res := tx.Unscoped().Delete(&Models.Prescription{}, "id = ?", id)
	if res.Error != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Prescription not found"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Prescription deleted successfully"})
}

func (api *API) FetchPrescribedExams(c *gin.Context) {
	consultationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var exams []Models.PrescribedExam
	if err := api.DB.Model(&Models.PrescribedExam{}).Where("consultation_id = ?", consultationID).Find(&exams).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, exams)
}

func (api *API) AddPrescribedExam(c *gin.Context) {
	var input Models.PrescribedExam
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.ConsultationID == 0 || input.Exam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "consultation_id and exam are required"})
		return
	}

	if err := api.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exam prescribed successfully", "exam": input})
}

func (api *API) DeletePrescribedExam(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	res := api.DB.Unscoped().Delete(&Models.PrescribedExam{}, "id = ?", id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prescribed exam not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Prescribed exam deleted successfully"})
}
