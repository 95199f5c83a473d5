package Controllers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/samer29/vascare-sub001/Models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

const clinicInfoPath = "./clinic_info.json"

func (api *API) FetchSettings(c *gin.Context) {
	var settings []Models.Setting
	if err := api.DB.Model(&Models.Setting{}).Find(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// SaveSettings writes the whole settings map in one batched upsert keyed on
// the unique setting key, instead of one check-then-write round-trip per key.
func (api *API) SaveSettings(c *gin.Context) {
	var input map[string]string
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(input) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no settings provided"})
		return
	}

	settings := make([]Models.Setting, 0, len(input))
	for key, value := range input {
		settings = append(settings, Models.Setting{Key: key, Value: value})
	}

	err := api.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&settings).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Settings saved successfully"})
}

// Clinic identity (letterhead, contact block) lives in a JSON file next to
// the binary, not in the database.
func (api *API) GetClinicInfo(c *gin.Context) {
	data, err := os.ReadFile(clinicInfoPath)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var info map[string]interface{}
	if err := json.Unmarshal(data, &info); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

func (api *API) SaveClinicInfo(c *gin.Context) {
	var info map[string]interface{}
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := os.WriteFile(clinicInfoPath, data, 0644); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Clinic info saved successfully"})
}
