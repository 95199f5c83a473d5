package Controllers

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/samer29/vascare-sub001/Models"
	"github.com/samer29/vascare-sub001/SSE"

	"github.com/gin-gonic/gin"
)

// dependentModels lists every table keyed by consultation_id. The tables are
// siblings (prescription lines carry their own consultation_id), so the
// orchestrators may remove them in any order.
func dependentModels() []interface{} {
	return []interface{}{
		&Models.InvoiceLine{},
		&Models.InvoiceStatus{},
		&Models.PrescriptionLine{},
		&Models.Prescription{},
		&Models.PrescribedExam{},
		&Models.EchographyReport{},
		&Models.DopplerReport{},
		&Models.EcgReport{},
		&Models.ThyroidReport{},
		&Models.Certificate{},
		&Models.OrientationLetter{},
	}
}

func (api *API) FetchConsultations(c *gin.Context) {
	patientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var consultations []Models.Consultation
	if err := api.DB.Model(&Models.Consultation{}).Where("patient_id = ?", patientID).Order("id DESC").Find(&consultations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, consultations)
}

func (api *API) CreateConsultation(c *gin.Context) {
	var input Models.Consultation
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.PatientID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "patient_id is required"})
		return
	}

	var count int64
	if err := api.DB.Model(&Models.Patient{}).Where("id = ?", input.PatientID).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	if err := api.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Consultation created successfully", "consultation": input})
}

func (api *API) UpdateConsultation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var input struct {
		Date       string  `json:"date"`
		Motif      string  `json:"motif"`
		Price      float64 `json:"price"`
		Conclusion string  `json:"conclusion"`
		IsClosed   bool    `json:"is_closed"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var consultation Models.Consultation
	if err := api.DB.First(&consultation, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Consultation not found"})
		return
	}

	consultation.Date = input.Date
	consultation.Motif = input.Motif
	consultation.Price = input.Price
	consultation.Conclusion = input.Conclusion
	consultation.IsClosed = input.IsClosed

	if err := api.DB.Save(&consultation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Consultation updated successfully"})
}

// DeleteConsultation removes one visit and everything hanging off it. The
// dependent deletes run concurrently and best-effort: a table with no
// matching rows, or a failing statement, must not abort the sequence. Only
// the final consultation delete decides the response.
func (api *API) DeleteConsultation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var wg sync.WaitGroup
	for _, model := range dependentModels() {
		wg.Add(1)
		go func(m interface{}) {
			defer wg.Done()
			api.DB.Unscoped().Where("consultation_id = ?", id).Delete(m)
		}(model)
	}
	wg.Wait()

	res := api.DB.Unscoped().Delete(&Models.Consultation{}, "id = ?", id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Consultation not found"})
		return
	}

	SSE.Broadcaster.Broadcast("refresh")
	c.JSON(http.StatusOK, gin.H{"message": "Consultation deleted successfully", "affectedRows": res.RowsAffected})
}
