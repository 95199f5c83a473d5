package Models

import (
	"gorm.io/gorm"
)

type Consultation struct {
	gorm.Model
	PatientID  uint    `json:"patient_id"`
	Date       string  `json:"date"`
	Motif      string  `json:"motif"`
	Price      float64 `json:"price"`
	Conclusion string  `json:"conclusion"`
	IsClosed   bool    `json:"is_closed"`
}

// Every record below is keyed by ConsultationID directly, including
// prescription lines, so the deletion fan-out can treat all dependent tables
// as siblings.

type InvoiceLine struct {
	gorm.Model
	ConsultationID uint    `gorm:"index" json:"consultation_id"`
	Act            string  `json:"act"`
	Quantity       int     `json:"quantity"`
	UnitPrice      float64 `json:"unit_price"`
}

type InvoiceStatus struct {
	gorm.Model
	ConsultationID uint   `gorm:"uniqueIndex" json:"consultation_id"`
	IsPaid         bool   `json:"is_paid"`
	PaymentMethod  string `json:"payment_method"`
	PaidAt         string `json:"paid_at"`
}

type Prescription struct {
	gorm.Model
	ConsultationID uint   `gorm:"index" json:"consultation_id"`
	Date           string `json:"date"`
	Notes          string `json:"notes"`
}

type PrescriptionLine struct {
	gorm.Model
	PrescriptionID uint   `gorm:"index" json:"prescription_id"`
	ConsultationID uint   `gorm:"index" json:"consultation_id"`
	Medication     string `json:"medication"`
	Dosage         string `json:"dosage"`
	Duration       string `json:"duration"`
	Instructions   string `json:"instructions"`
}

type PrescribedExam struct {
	gorm.Model
	ConsultationID uint   `gorm:"index" json:"consultation_id"`
	Exam           string `json:"exam"`
	Notes          string `json:"notes"`
}

type EchographyReport struct {
	gorm.Model
	ConsultationID uint   `gorm:"uniqueIndex" json:"consultation_id"`
	Template       string `json:"template"`
	Content        string `json:"content"`
}

type DopplerReport struct {
	gorm.Model
	ConsultationID uint   `gorm:"uniqueIndex" json:"consultation_id"`
	Template       string `json:"template"`
	Content        string `json:"content"`
}

type EcgReport struct {
	gorm.Model
	ConsultationID uint   `gorm:"uniqueIndex" json:"consultation_id"`
	Template       string `json:"template"`
	Content        string `json:"content"`
}

type ThyroidReport struct {
	gorm.Model
	ConsultationID uint   `gorm:"uniqueIndex" json:"consultation_id"`
	Template       string `json:"template"`
	Content        string `json:"content"`
}

type Certificate struct {
	gorm.Model
	ConsultationID uint   `gorm:"uniqueIndex" json:"consultation_id"`
	Kind           string `json:"kind"`
	Days           int    `json:"days"`
	Content        string `json:"content"`
}

type OrientationLetter struct {
	gorm.Model
	ConsultationID uint   `gorm:"uniqueIndex" json:"consultation_id"`
	Recipient      string `json:"recipient"`
	Content        string `json:"content"`
}
