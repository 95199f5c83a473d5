package Models

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the clinic database and migrates the schema. The returned
// handle is the only one the process holds; controllers and middleware
// receive it at construction time.
func Connect() (*gorm.DB, error) {
	DbHost := os.Getenv("DB_HOST")
	DbUser := os.Getenv("DB_USER")
	DbPassword := os.Getenv("DB_PASSWORD")
	DbName := os.Getenv("DB_NAME")
	DbPort := os.Getenv("DB_PORT")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable", DbHost, DbUser, DbPassword, DbName, DbPort)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connection error: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the schema. Parents first, then the consultation-dependent
// tables. The storage layer declares no cascading foreign keys; deletion
// order is the controllers' responsibility, not the schema's.
func Migrate(db *gorm.DB) error {
	// Models with no dependencies
	if err := db.AutoMigrate(&User{}, &License{}, &Patient{}); err != nil {
		return err
	}

	// Consultation depends on Patient
	if err := db.AutoMigrate(&Consultation{}); err != nil {
		return err
	}

	// Everything keyed by consultation id
	if err := db.AutoMigrate(
		&InvoiceLine{},
		&InvoiceStatus{},
		&Prescription{},
		&PrescriptionLine{},
		&PrescribedExam{},
		&EchographyReport{},
		&DopplerReport{},
		&EcgReport{},
		&ThyroidReport{},
		&Certificate{},
		&OrientationLetter{},
	); err != nil {
		return err
	}

	// Catalogs and settings
	return db.AutoMigrate(&Medication{}, &MedicalAct{}, &ExamType{}, &ReportTemplate{}, &Setting{})
}
