package Models

import (
	"gorm.io/gorm"
)

type Patient struct {
	gorm.Model
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	DateOfBirth   string         `json:"date_of_birth"`
	Gender        string         `json:"gender"`
	Phone         string         `json:"phone"`
	Weight        float64        `json:"weight"`
	History       string         `json:"history"`
	Consultations []Consultation `json:"consultations"`
}
