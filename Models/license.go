package Models

import (
	"time"

	"gorm.io/gorm"
)

// License is one activation record. Registration only ever inserts; the row
// with the highest id wins and older rows are kept as history.
type License struct {
	gorm.Model
	StartDate    string `json:"start_date"`
	ExpiryDate   string `json:"expiry_date"`
	EncryptedKey string `json:"encrypted_key"`
}

// LatestLicense returns the authoritative license record.
func LatestLicense(db *gorm.DB) (License, error) {
	var license License
	err := db.Model(&License{}).Order("id DESC").First(&license).Error
	return license, err
}

// IsExpired compares the expiry date against now. An unparseable date counts
// as expired rather than granting open-ended access.
func (l *License) IsExpired(now time.Time) bool {
	expiry, err := time.Parse("2006-01-02", l.ExpiryDate)
	if err != nil {
		return true
	}
	// valid through the whole expiry day
	return now.After(expiry.Add(24 * time.Hour))
}
