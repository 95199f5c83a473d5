package Controllers

import (
	"net/http"
	"strconv"

	"github.com/samer29/vascare-sub001/Models"
	"github.com/samer29/vascare-sub001/SSE"

	"github.com/gin-gonic/gin"
)

func (api *API) FetchPatients(c *gin.Context) {
	var patients []Models.Patient
	query := api.DB.Model(&Models.Patient{})
	if search := c.Query("search"); search != "" {
		query = query.Where("first_name LIKE ? OR last_name LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if err := query.Order("id DESC").Find(&patients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, patients)
}

func (api *API) GetPatient(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var patient Models.Patient
	if err := api.DB.Preload("Consultations").First(&patient, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}
	c.JSON(http.StatusOK, patient)
}

func (api *API) CreatePatient(c *gin.Context) {
	var input Models.Patient
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.FirstName == "" || input.LastName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "first_name and last_name are required"})
		return
	}

	if err := api.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Patient created successfully", "patient": input})
}

func (api *API) UpdatePatient(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var input struct {
		FirstName   string  `json:"first_name"`
		LastName    string  `json:"last_name"`
		DateOfBirth string  `json:"date_of_birth"`
		Gender      string  `json:"gender"`
		Phone       string  `json:"phone"`
		Weight      float64 `json:"weight"`
		History     string  `json:"history"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var patient Models.Patient
	if err := api.DB.First(&patient, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	patient.FirstName = input.FirstName
	patient.LastName = input.LastName
	patient.DateOfBirth = input.DateOfBirth
	patient.Gender = input.Gender
	patient.Phone = input.Phone
	patient.Weight = input.Weight
	patient.History = input.History

	if err := api.DB.Save(&patient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Patient updated successfully"})
}

// DeletePatient removes a patient, all of their consultations and every
// record hanging off those consultations, in one all-or-nothing transaction.
// Unlike the per-consultation delete, any failure here rolls the whole
// sequence back; a patient with half their dependents gone must never be
// observable.
func (api *API) DeletePatient(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	tx := api.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Leaves first: everything keyed by one of the patient's consultations.
	for _, model := range dependentModels() {
		sub := tx.Model(&Models.Consultation{}).Select("id").Where("patient_id = ?", id)
		if err := tx.Unscoped().Where("consultation_id IN (?)", sub).Delete(model).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	if err := tx.Unscoped().Where("patient_id = ?", id).Delete(&Models.Consultation{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	res := tx.Unscoped().Delete(&Models.Patient{}, "id = ?", id)
	if res.Error != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	SSE.Broadcaster.Broadcast("refresh")
	c.JSON(http.StatusOK, gin.H{"message": "Patient deleted successfully", "affectedRows": res.RowsAffected})
}
