package main

import (
	"fmt"
	"log"
	"os"

	"clinicdesk-backend/config"
	"clinicdesk-backend/models"
	"clinicdesk-backend/routes"
	"clinicdesk-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.MedicineCategory{},
		&models.Medicine{},
		&models.Disease{},
		&models.AppointmentList{},
		&models.AppointmentDetail{},
		&models.ExaminationRecord{},
		&models.ExaminationItem{},
		&models.MedicalHistory{},
		&models.MedicalHistoryDetail{},
		&models.Invoice{},
		&models.NotificationLog{},
	)
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	scheduler := services.StartScheduler(config.DB)
	defer scheduler.Stop()

	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
