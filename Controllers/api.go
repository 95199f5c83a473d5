package Controllers

import (
	"gorm.io/gorm"
)

// API holds the shared database handle. One instance is constructed in main
// and its methods are bound as route handlers.
type API struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *API {
	return &API{DB: db}
}
