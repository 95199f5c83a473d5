package Controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/samer29/vascare-sub001/Models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupAPI returns a handler set backed by an in-memory database. The pool is
// pinned to one connection so the database outlives individual statements and
// the concurrent deletion fan-out serializes deterministically.
func setupAPI(t *testing.T) *API {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := Models.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(db)
}

func jsonBody(t *testing.T, payload interface{}) *bytes.Reader {
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewReader(data)
}

func perform(router *gin.Engine, method, path string, body *bytes.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	if body == nil {
		body = bytes.NewReader(nil)
	}
	request := httptest.NewRequest(method, path, body)
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, request)
	return w
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func count(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	var n int64
	if err := db.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

// seedConsultation creates a patient visit with one row in every dependent
// table, returning the consultation id.
func seedConsultation(t *testing.T, api *API, patientID uint) uint {
	consultation := Models.Consultation{PatientID: patientID, Date: "2024-03-01", Motif: "epigastric pain", Price: 80}
	if err := api.DB.Create(&consultation).Error; err != nil {
		t.Fatalf("seed consultation: %v", err)
	}
	id := consultation.ID

	prescription := Models.Prescription{ConsultationID: id, Date: "2024-03-01"}
	if err := api.DB.Create(&prescription).Error; err != nil {
		t.Fatalf("seed prescription: %v", err)
	}

	records := []interface{}{
		&Models.InvoiceLine{ConsultationID: id, Act: "Consultation", Quantity: 1, UnitPrice: 80},
		&Models.InvoiceStatus{ConsultationID: id, IsPaid: true, PaymentMethod: "cash"},
		&Models.PrescriptionLine{PrescriptionID: prescription.ID, ConsultationID: id, Medication: "Omeprazole", Dosage: "20mg"},
		&Models.PrescribedExam{ConsultationID: id, Exam: "Fibroscopy"},
		&Models.EchographyReport{ConsultationID: id, Content: "normal"},
		&Models.DopplerReport{ConsultationID: id, Content: "normal"},
		&Models.EcgReport{ConsultationID: id, Content: "normal"},
		&Models.ThyroidReport{ConsultationID: id, Content: "normal"},
		&Models.Certificate{ConsultationID: id, Kind: "rest", Days: 3},
		&Models.OrientationLetter{ConsultationID: id, Recipient: "Dr. Mansouri"},
	}
	for _, record := range records {
		if err := api.DB.Create(record).Error; err != nil {
			t.Fatalf("seed dependent record %T: %v", record, err)
		}
	}
	return id
}
