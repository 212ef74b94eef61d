package routes

import (
	"os"
	"strings"

	"github.com/nareshagarwalTech/shree-shyam-pharmacy/config"
	"github.com/nareshagarwalTech/shree-shyam-pharmacy/controllers"
	"github.com/nareshagarwalTech/shree-shyam-pharmacy/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func allowedOrigins() []string {
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		return strings.Split(env, ",")
	}
	return []string{"http://localhost:3000"}
}

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	// Public marketing-site surface
	r.GET("/api/public/info", controllers.GetPharmacyInfo)

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)

			customers.POST("/:id/medications", controllers.CreateMedication)
			customers.PUT("/:id/medications/:medicationId", controllers.UpdateMedication)
			customers.DELETE("/:id/medications/:medicationId", controllers.DeleteMedication)
		}

		// Reminder routes
		reminders := api.Group("/reminders")
		{
			reminders.GET("/due", controllers.GetDueReminders)
			reminders.POST("/send", controllers.SendReminder)
			reminders.GET("/history", controllers.GetReminderHistory)
			reminders.GET("/templates", controllers.GetReminderTemplates)
			reminders.PUT("/templates", controllers.UpdateReminderTemplate)
		}

		// Import routes
		importGroup := api.Group("/import")
		{
			importGroup.POST("/preview", controllers.PreviewImport)
			importGroup.POST("/confirm", controllers.ConfirmImport)
			importGroup.GET("/template", controllers.DownloadImportTemplate)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
