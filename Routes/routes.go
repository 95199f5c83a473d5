package Routes

import (
	"github.com/samer29/vascare-sub001/Controllers"
	"github.com/samer29/vascare-sub001/Middleware"
	"github.com/samer29/vascare-sub001/SSE"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func ConfigRoutes(router *gin.Engine, api *Controllers.API, db *gorm.DB) {
	// Gzip Compression
	router.Use(gzip.Gzip(gzip.BestSpeed))

	// Public routes. Registered before the licence gate: login, the health
	// probe and the licence endpoints must stay reachable when the licence
	// is absent or lapsed.
	public := router.Group("/api")
	{
		public.POST("/login", api.Login)
		public.GET("/health", api.Health)
		public.GET("/licence", api.GetLicence)
		public.POST("/licence/register", api.RegisterLicence)
	}

	// Business routes: licence gate first, then token verification.
	protected := router.Group("/api")
	protected.Use(Middleware.LicenseGate(db))
	protected.Use(Middleware.JwtAuthMiddleware())
	{
		protected.GET("/user", api.CurrentUser)

		// Patient-related routes
		protected.GET("/patients", api.FetchPatients)
		protected.POST("/patients", api.CreatePatient)
		protected.GET("/patients/:id", api.GetPatient)
		protected.PUT("/patients/:id", api.UpdatePatient)
		protected.GET("/patients/:id/consultations", api.FetchConsultations)
		protected.DELETE("/patients/:id", Middleware.RequireClinicalStaff(), api.DeletePatient)

		// Consultation-related routes
		protected.POST("/consultations", api.CreateConsultation)
		protected.PUT("/consultations/:id", api.UpdateConsultation)
		protected.DELETE("/consultations/:id", api.DeleteConsultation)

		// Billing routes
		protected.GET("/consultations/:id/invoice", api.FetchInvoice)
		protected.POST("/invoice/lines", api.AddInvoiceLine)
		protected.DELETE("/invoice/lines/:id", api.DeleteInvoiceLine)
		protected.POST("/invoice/status", api.SaveInvoiceStatus)

		// Prescription-related routes
		protected.GET("/consultations/:id/prescriptions", api.FetchPrescriptions)
		protected.POST("/prescriptions", api.CreatePrescription)
		protected.DELETE("/prescriptions/:id", api.DeletePrescription)
		protected.GET("/consultations/:id/exams", api.FetchPrescribedExams)
		protected.POST("/exams", api.AddPrescribedExam)
		protected.DELETE("/exams/:id", api.DeletePrescribedExam)

		// Imaging report routes
		protected.GET("/consultations/:id/echography", api.GetEchographyReport)
		protected.POST("/echography", api.SaveEchographyReport)
		protected.GET("/consultations/:id/doppler", api.GetDopplerReport)
		protected.POST("/doppler", api.SaveDopplerReport)
		protected.GET("/consultations/:id/ecg", api.GetEcgReport)
		protected.POST("/ecg", api.SaveEcgReport)
		protected.GET("/consultations/:id/thyroid", api.GetThyroidReport)
		protected.POST("/thyroid", api.SaveThyroidReport)

		// Certificates and orientation letters
		protected.GET("/consultations/:id/certificate", api.GetCertificate)
		protected.POST("/certificate", api.SaveCertificate)
		protected.GET("/consultations/:id/orientation", api.GetOrientationLetter)
		protected.POST("/orientation", api.SaveOrientationLetter)

		// Catalog routes
		protected.GET("/medications", api.FetchMedications)
		protected.POST("/medications", api.AddMedication)
		protected.PUT("/medications/:id", api.UpdateMedication)
		protected.DELETE("/medications/:id", api.DeleteMedication)
		protected.GET("/acts", api.FetchMedicalActs)
		protected.POST("/acts", api.AddMedicalAct)
		protected.PUT("/acts/:id", api.UpdateMedicalAct)
		protected.DELETE("/acts/:id", api.DeleteMedicalAct)
		protected.GET("/examtypes", api.FetchExamTypes)
		protected.POST("/examtypes", api.AddExamType)
		protected.DELETE("/examtypes/:id", api.DeleteExamType)
		protected.GET("/templates", api.FetchReportTemplates)
		protected.POST("/templates", api.AddReportTemplate)
		protected.PUT("/templates/:id", api.UpdateReportTemplate)
		protected.DELETE("/templates/:id", api.DeleteReportTemplate)

		// Settings
		protected.GET("/settings", api.FetchSettings)
		protected.POST("/settings", api.SaveSettings)
		protected.GET("/clinic", api.GetClinicInfo)
		protected.POST("/clinic", Middleware.RequireAdmin(), api.SaveClinicInfo)

		// SSE (Server-Sent Events) route
		protected.GET("/events", SSE.RequestSSE)

		// Admin-only surface
		admin := protected.Group("")
		admin.Use(Middleware.RequireAdmin())
		{
			admin.POST("/register", api.Register)
			admin.GET("/users", api.FetchUsers)
			admin.PUT("/users/:id", api.UpdateUser)
			admin.DELETE("/users/:id", api.DeleteUser)
			admin.GET("/licence/history", api.LicenceHistory)
			admin.GET("/export/sql", api.ExportSQL)
			admin.GET("/export/csv", api.ExportCSV)
			admin.GET("/export/json", api.ExportJSON)
			admin.GET("/export/xlsx", api.ExportXLSX)
		}
	}
}
