package main

import (
	"log"
	"os"

	_ "backoffice/api/swagger" // swagger docs
	"backoffice/internal/database"
	"backoffice/internal/handler"
	"backoffice/internal/middleware"
	"backoffice/internal/repository"
	"backoffice/internal/service"
	"backoffice/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Back Office API
// @version         1.0
// @description     Multi-tenant back office administration API: clients, staff, approvals, stock and reports.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Repositories
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	contractorRepo := repository.NewContractorRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	approvalRepo := repository.NewApprovalRepository(db)
	stockRepo := repository.NewStockRepository(db)
	onboardingRepo := repository.NewOnboardingRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, txManager, middleware.GetJWTSecret())
	userService := service.NewUserService(userRepo, auditRepo)
	clientService := service.NewClientService(clientRepo, auditRepo)
	contractorService := service.NewContractorService(contractorRepo, auditRepo)
	employeeService := service.NewEmployeeService(employeeRepo, auditRepo)
	assetService := service.NewAssetService(assetRepo, auditRepo)
	approvalService := service.NewApprovalService(approvalRepo, clientRepo, contractorRepo, employeeRepo, auditRepo, txManager, wsHub)
	stockService := service.NewStockService(stockRepo, auditRepo, txManager, wsHub)
	onboardingService := service.NewOnboardingService(onboardingRepo)
	departmentService := service.NewDepartmentService(departmentRepo, txManager)
	auditService := service.NewAuditService(auditRepo)
	dashboardService := service.NewDashboardService(clientRepo, contractorRepo, employeeRepo, departmentRepo, service.EqualSplit{})
	spreadsheetService := service.NewSpreadsheetService(
		clientRepo, contractorRepo, employeeRepo, assetRepo,
		clientService, contractorService, employeeService, assetService,
	)
	adminService := service.NewAdminService(adminRepo, auditRepo, txManager)

	documentGenerator, err := service.NewTemplateGenerator()
	if err != nil {
		log.Fatalf("Failed to parse document templates: %v", err)
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	clientHandler := handler.NewClientHandler(clientService)
	contractorHandler := handler.NewContractorHandler(contractorService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	assetHandler := handler.NewAssetHandler(assetService)
	approvalHandler := handler.NewApprovalHandler(approvalService)
	stockHandler := handler.NewStockHandler(stockService)
	onboardingHandler := handler.NewOnboardingHandler(onboardingService)
	departmentHandler := handler.NewDepartmentHandler(departmentService)
	auditHandler := handler.NewAuditHandler(auditService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	documentHandler := handler.NewDocumentHandler(documentGenerator, userService, clientService, contractorService, employeeService)
	spreadsheetHandler := handler.NewSpreadsheetHandler(spreadsheetService)
	adminHandler := handler.NewAdminHandler(adminService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	root := router.Group("")
	authHandler.RegisterRoutes(root)
	userHandler.RegisterRoutes(root)
	clientHandler.RegisterRoutes(root)
	contractorHandler.RegisterRoutes(root)
	employeeHandler.RegisterRoutes(root)
	assetHandler.RegisterRoutes(root)
	approvalHandler.RegisterRoutes(root)
	stockHandler.RegisterRoutes(root)
	onboardingHandler.RegisterRoutes(root)
	departmentHandler.RegisterRoutes(root)
	auditHandler.RegisterRoutes(root)
	dashboardHandler.RegisterRoutes(root)
	documentHandler.RegisterRoutes(root)
	spreadsheetHandler.RegisterRoutes(root)
	adminHandler.RegisterRoutes(root)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
