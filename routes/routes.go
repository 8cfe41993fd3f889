package routes

import (
	"clinicdesk-backend/config"
	"clinicdesk-backend/controllers"
	"clinicdesk-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
		auth.PUT("/change-password", controllers.ChangePassword)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Queue routes (nurse)
		queue := api.Group("/queue")
		{
			queue.POST("/list", utils.RequireAction(utils.ActionCreateList), controllers.CreateTodayList)
			queue.POST("/register", utils.RequireAction(utils.ActionRegisterWalkIn), controllers.RegisterWalkIn)
			queue.GET("/today", utils.RequireAction(utils.ActionViewQueue), controllers.GetTodayQueue)
			queue.GET("/lists", utils.RequireAction(utils.ActionViewQueue), controllers.GetAppointmentLists)
		}

		// Examination routes (nurse opens records, doctor fills them)
		examinations := api.Group("/examinations")
		{
			examinations.POST("/today", utils.RequireAction(utils.ActionOpenExamination), controllers.OpenTodayExaminations)
			examinations.POST("/patient/:patientId", utils.RequireAction(utils.ActionOpenExamination), controllers.OpenExamination)
			examinations.GET("/today", utils.RequireAction(utils.ActionViewQueue), controllers.GetTodayRecords)
			examinations.GET("/patient/:patientId/today", utils.RequireAction(utils.ActionViewQueue), controllers.GetPatientRecordToday)
			examinations.POST("/:id/items", utils.RequireAction(utils.ActionPrescribe), controllers.AddLineItem)
			examinations.PUT("/:id/diagnosis", utils.RequireAction(utils.ActionRecordDiagnosis), controllers.RecordDiagnosis)
			examinations.GET("/:id/prescription", utils.RequireAction(utils.ActionViewQueue), controllers.GetPrescription)
		}

		// Billing routes (cashier)
		invoices := api.Group("/invoices")
		{
			invoices.POST("/examinations/:id", utils.RequireAction(utils.ActionBill), controllers.BillExamination)
			invoices.GET("/:id/status", utils.RequireAction(utils.ActionViewInvoices), controllers.GetInvoiceStatus)
			invoices.GET("/today", utils.RequireAction(utils.ActionViewInvoices), controllers.GetTodayInvoices)
		}

		// Patient lookup (front desk)
		patients := api.Group("/patients")
		{
			patients.GET("", utils.RequireAction(utils.ActionViewQueue), controllers.GetPatients)
			patients.GET("/:id", utils.RequireAction(utils.ActionViewQueue), controllers.GetPatient)
			patients.GET("/:id/history", utils.RequireAction(utils.ActionViewHistory), controllers.GetMedicalHistory)
		}

		// Catalog routes
		medicines := api.Group("/medicines")
		{
			medicines.GET("", controllers.GetMedicines)
			medicines.POST("", utils.RequireAction(utils.ActionManageCatalog), controllers.CreateMedicine)
			medicines.PUT("/:id", utils.RequireAction(utils.ActionManageCatalog), controllers.UpdateMedicine)
		}
		api.GET("/categories", controllers.GetMedicineCategories)
		api.GET("/diseases", controllers.GetDiseases)

		// Clinic rules (admin)
		rules := api.Group("/rules")
		{
			rules.GET("", controllers.GetRules)
			rules.PUT("", utils.RequireAction(utils.ActionUpdateRules), controllers.UpdateRules)
		}

		// Reports (admin)
		reports := api.Group("/reports", utils.RequireAction(utils.ActionViewReports))
		{
			reports.GET("/revenue", controllers.GetRevenueReport)
			reports.GET("/medicine-usage", controllers.GetMedicineUsageReport)
		}
	}

	return r
}
