package main

import (
	"log"
	"os"

	"thesis-management-backend/app/mailer"
	"thesis-management-backend/app/repository"
	"thesis-management-backend/app/service"
	"thesis-management-backend/database"
	"thesis-management-backend/middleware"
	"thesis-management-backend/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// =================================================================
	// LOAD ENV
	// =================================================================
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env tidak ditemukan, menggunakan environment default")
	}

	// =================================================================
	// INIT DB (POSTGRES + MONGODB)
	// =================================================================
	dbConn, err := database.InitDB()
	if err != nil {
		log.Fatalf("❌ Gagal koneksi database: %v", err)
	}

	// =================================================================
	// SEED DATA (USERS + CAPABILITIES)
	// =================================================================
	database.RunSeeders(dbConn.Postgres)

	// =================================================================
	// STORE & MAILER
	// =================================================================
	store := repository.NewStore(dbConn.Postgres, dbConn.Mongo)
	mail := mailer.NewFromEnv()

	// =================================================================
	// SERVICES
	// =================================================================
	authService := service.NewAuthService(store)
	roleService := service.NewRoleService(store)
	lecturerService := service.NewLecturerService(store)
	studentService := service.NewStudentService(store)
	supervisorService := service.NewSupervisorService(store, studentService)
	nominationService := service.NewNominationService(store, mail)
	vivaService := service.NewVivaService(store, mail)
	projectService := service.NewProjectService(store)
	fileService := service.NewFileService(store)

	// =================================================================
	// ROUTER
	// =================================================================
	r := gin.Default()
	auth := middleware.AuthMiddleware(store)

	routes.NewAuthHandler(authService).SetupAuthRoutes(r)
	routes.NewStudentHandler(studentService, vivaService, projectService).SetupStudentRoutes(r, auth)
	routes.NewLecturerHandler(lecturerService, nominationService).SetupLecturerRoutes(r, auth)
	routes.NewSupervisorHandler(roleService, supervisorService, nominationService, vivaService).SetupSupervisorRoutes(r, auth)
	routes.NewExaminerHandler(roleService, lecturerService, nominationService, vivaService).SetupExaminerRoutes(r, auth)
	routes.NewProjectHandler(projectService).SetupProjectRoutes(r, auth)
	routes.NewFileHandler(fileService).SetupFileRoutes(r, auth)

	// Root endpoint (optional)
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Thesis Management API RUNNING",
			"version": "1.0.0",
		})
	})

	// =================================================================
	// START SERVER
	// =================================================================
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("🚀 Server running at http://localhost:" + port)

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Gagal menjalankan server: %v", err)
	}
}
