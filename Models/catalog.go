package Models

import "gorm.io/gorm"

type Medication struct {
	gorm.Model
	Name   string `json:"name"`
	Form   string `json:"form"`
	Dosage string `json:"dosage"`
}

type MedicalAct struct {
	gorm.Model
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

type ExamType struct {
	gorm.Model
	Name     string `json:"name"`
	Category string `json:"category"`
}

type ReportTemplate struct {
	gorm.Model
	Name     string `json:"name"`
	Modality string `json:"modality"`
	Content  string `json:"content"`
}

type Setting struct {
	gorm.Model
	Key   string `gorm:"uniqueIndex" json:"key"`
	Value string `json:"value"`
}
