package Controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/samer29/vascare-sub001/Models"

	"github.com/gin-gonic/gin"
)

func recordsRouter(api *API) *gin.Engine {
	router := gin.New()
	router.GET("/consultations/:id/invoice", api.FetchInvoice)
	router.POST("/invoice/lines", api.AddInvoiceLine)
	router.POST("/invoice/status", api.SaveInvoiceStatus)
	router.POST("/certificate", api.SaveCertificate)
	router.GET("/consultations/:id/certificate", api.GetCertificate)
	router.POST("/echography", api.SaveEchographyReport)
	router.GET("/consultations/:id/echography", api.GetEchographyReport)
	router.POST("/prescriptions", api.CreatePrescription)
	router.GET("/consultations/:id/prescriptions", api.FetchPrescriptions)
	return router
}

func seedVisit(t *testing.T, api *API) uint {
	patient := Models.Patient{FirstName: "Amine", LastName: "Soltani"}
	if err := api.DB.Create(&patient).Error; err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	consultation := Models.Consultation{PatientID: patient.ID, Date: "2024-05-10", Motif: "reflux"}
	if err := api.DB.Create(&consultation).Error; err != nil {
		t.Fatalf("seed consultation: %v", err)
	}
	return consultation.ID
}

func TestInvoiceStatusUpsert(t *testing.T) {
	api := setupAPI(t)
	router := recordsRouter(api)
	id := seedVisit(t, api)

	w := perform(router, "POST", "/invoice/status",
		jsonBody(t, gin.H{"consultation_id": id, "is_paid": false, "payment_method": ""}))
	if w.Code != http.StatusOK {
		t.Fatalf("first save status = %d (body %s)", w.Code, w.Body.String())
	}
	w = perform(router, "POST", "/invoice/status",
		jsonBody(t, gin.H{"consultation_id": id, "is_paid": true, "payment_method": "cash", "paid_at": "2024-05-10"}))
	if w.Code != http.StatusOK {
		t.Fatalf("second save status = %d (body %s)", w.Code, w.Body.String())
	}

	// Repeated saves update in place, never duplicate.
	if n := count(t, api.DB, &Models.InvoiceStatus{}, "consultation_id = ?", id); n != 1 {
		t.Errorf("invoice status rows = %d, want 1", n)
	}
	var status Models.InvoiceStatus
	if err := api.DB.Where("consultation_id = ?", id).First(&status).Error; err != nil {
		t.Fatalf("load status: %v", err)
	}
	if !status.IsPaid || status.PaymentMethod != "cash" {
		t.Errorf("status = %+v", status)
	}
}

func TestCertificateUpsert(t *testing.T) {
	api := setupAPI(t)
	router := recordsRouter(api)
	id := seedVisit(t, api)

	w := perform(router, "POST", "/certificate",
		jsonBody(t, gin.H{"consultation_id": id, "kind": "rest", "days": 3, "content": "three days rest"}))
	if w.Code != http.StatusOK {
		t.Fatalf("save status = %d (body %s)", w.Code, w.Body.String())
	}
	w = perform(router, "POST", "/certificate",
		jsonBody(t, gin.H{"consultation_id": id, "kind": "rest", "days": 5, "content": "extended to five days"}))
	if w.Code != http.StatusOK {
		t.Fatalf("resave status = %d (body %s)", w.Code, w.Body.String())
	}

	if n := count(t, api.DB, &Models.Certificate{}, "consultation_id = ?", id); n != 1 {
		t.Errorf("certificate rows = %d, want 1", n)
	}

	w = perform(router, "GET", "/consultations/"+itoa(id)+"/certificate", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var certificate Models.Certificate
	if err := json.Unmarshal(w.Body.Bytes(), &certificate); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if certificate.Days != 5 {
		t.Errorf("days = %d, want 5", certificate.Days)
	}
}

func TestEchographyReportUpsert(t *testing.T) {
	api := setupAPI(t)
	router := recordsRouter(api)
	id := seedVisit(t, api)

	w := perform(router, "POST", "/echography",
		jsonBody(t, gin.H{"consultation_id": id, "template": "abdominal", "content": "first draft"}))
	if w.Code != http.StatusOK {
		t.Fatalf("save status = %d (body %s)", w.Code, w.Body.String())
	}
	w = perform(router, "POST", "/echography",
		jsonBody(t, gin.H{"consultation_id": id, "template": "abdominal", "content": "final"}))
	if w.Code != http.StatusOK {
		t.Fatalf("resave status = %d", w.Code)
	}

	if n := count(t, api.DB, &Models.EchographyReport{}, "consultation_id = ?", id); n != 1 {
		t.Errorf("report rows = %d, want 1", n)
	}
	var report Models.EchographyReport
	if err := api.DB.Where("consultation_id = ?", id).First(&report).Error; err != nil {
		t.Fatalf("load report: %v", err)
	}
	if report.Content != "final" {
		t.Errorf("content = %q, want final", report.Content)
	}
}

func TestInvoiceTotals(t *testing.T) {
	api := setupAPI(t)
	router := recordsRouter(api)
	id := seedVisit(t, api)

	lines := []gin.H{
		{"consultation_id": id, "act": "Consultation", "quantity": 1, "unit_price": 80.0},
		{"consultation_id": id, "act": "Echography", "quantity": 2, "unit_price": 25.0},
	}
	for _, line := range lines {
		w := perform(router, "POST", "/invoice/lines", jsonBody(t, line))
		if w.Code != http.StatusOK {
			t.Fatalf("add line status = %d (body %s)", w.Code, w.Body.String())
		}
	}

	w := perform(router, "GET", "/consultations/"+itoa(id)+"/invoice", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("fetch status = %d", w.Code)
	}
	var body struct {
		Lines []Models.InvoiceLine `json:"lines"`
		Total float64              `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Lines) != 2 {
		t.Errorf("lines = %d, want 2", len(body.Lines))
	}
	if body.Total != 130 {
		t.Errorf("total = %v, want 130", body.Total)
	}
}

func TestPrescriptionWithLines(t *testing.T) {
	api := setupAPI(t)
	router := recordsRouter(api)
	id := seedVisit(t, api)

	w := perform(router, "POST", "/prescriptions", jsonBody(t, gin.H{
		"consultation_id": id,
		"date":            "2024-05-10",
		"lines": []gin.H{
			{"medication": "Omeprazole", "dosage": "20mg", "duration": "4 weeks"},
			{"medication": "Domperidone", "dosage": "10mg", "duration": "2 weeks"},
		},
	}))
	if w.Code != http.StatusOK {
		t.Fatalf("create status = %d (body %s)", w.Code, w.Body.String())
	}

	// Lines are keyed by the consultation too, so the deletion fan-out can
	// reach them without going through the prescription.
	if n := count(t, api.DB, &Models.PrescriptionLine{}, "consultation_id = ?", id); n != 2 {
		t.Errorf("line rows = %d, want 2", n)
	}

	w = perform(router, "GET", "/consultations/"+itoa(id)+"/prescriptions", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("fetch status = %d", w.Code)
	}
	var output []struct {
		Models.Prescription
		Lines []Models.PrescriptionLine `json:"lines"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &output); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(output) != 1 || len(output[0].Lines) != 2 {
		t.Errorf("unexpected shape: %d prescriptions", len(output))
	}
}
