package Controllers

import (
	"net/http"
	"strconv"

	"github.com/samer29/vascare-sub001/Models"

	"github.com/gin-gonic/gin"
)

// Catalog controllers: uniform CRUD over the reference tables the clinic
// maintains (medications, medical acts, exam types, report templates).

func (api *API) FetchMedications(c *gin.Context) {
	var medications []Models.Medication
	if err := api.DB.Model(&Models.Medication{}).Order("name").Find(&medications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, medications)
}

func (api *API) AddMedication(c *gin.Context) {
	var input Models.Medication
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if err := api.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Medication created successfully", "medication": input})
}

func (api *API) UpdateMedication(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var input Models.Medication
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res := api.DB.Model(&Models.Medication{}).Where("id = ?", id).
		Updates(map[string]interface{}{"name": input.Name, "form": input.Form, "dosage": input.Dosage})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medication not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Medication updated successfully"})
}

func (api *API) DeleteMedication(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res := api.DB.Unscoped().Delete(&Models.Medication{}, "id = ?", id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medication not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Medication deleted successfully"})
}

func (api *API) FetchMedicalActs(c *gin.Context) {
	var acts []Models.MedicalAct
	if err := api.DB.Model(&Models.MedicalAct{}).Order("label").Find(&acts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, acts)
}

func (api *API) AddMedicalAct(c *gin.Context) {
	var input Models.MedicalAct
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Label == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "label is required"})
		return
	}
	if err := api.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Medical act created successfully", "act": input})
}

func (api *API) UpdateMedicalAct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var input Models.MedicalAct
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res := api.DB.Model(&Models.MedicalAct{}).Where("id = ?", id).
		Updates(map[string]interface{}{"label": input.Label, "price": input.Price})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medical act not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Medical act updated successfully"})
}

func (api *API) DeleteMedicalAct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res := api.DB.Unscoped().Delete(&Models.MedicalAct{}, "id = ?", id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medical act not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Medical act deleted successfully"})
}

func (api *API) FetchExamTypes(c *gin.Context) {
	var exams []Models.ExamType
	query := api.DB.Model(&Models.ExamType{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("name").Find(&exams).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, exams)
}

func (api *API) AddExamType(c *gin.Context) {
	var input Models.ExamType
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if err := api.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exam type created successfully", "exam": input})
}

func (api *API) DeleteExamType(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res := api.DB.Unscoped().Delete(&Models.ExamType{}, "id = ?", id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Exam type not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exam type deleted successfully"})
}

func (api *API) FetchReportTemplates(c *gin.Context) {
	var templates []Models.ReportTemplate
	query := api.DB.Model(&Models.ReportTemplate{})
	if modality := c.Query("modality"); modality != "" {
		query = query.Where("modality = ?", modality)
	}
	if err := query.Order("name").Find(&templates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (api *API) AddReportTemplate(c *gin.Context) {
	var input Models.ReportTemplate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Name == "" || input.Modality == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and modality are required"})
		return
	}
	if err := api.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template created successfully", "template": input})
}

func (api *API) UpdateReportTemplate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var input Models.ReportTemplate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res := api.DB.Model(&Models.ReportTemplate{}).Where("id = ?", id).
		Updates(map[string]interface{}{"name": input.Name, "modality": input.Modality, "content": input.Content})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template updated successfully"})
}

func (api *API) DeleteReportTemplate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res := api.DB.Unscoped().Delete(&Models.ReportTemplate{}, "id = ?", id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully"})
}
