package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"stockpro-backend/internal/handler"
	"stockpro-backend/internal/middleware"
	"stockpro-backend/internal/model"
	"stockpro-backend/internal/repository"
	"stockpro-backend/internal/service"
	"stockpro-backend/internal/ws"
	"stockpro-backend/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	db := database.ConnectDB()
	// Auto migrate. A production deployment should run migrations separately.
	db.AutoMigrate(
		&model.User{}, &model.Privilege{}, &model.Role{},
		&model.Category{}, &model.Brand{}, &model.Unit{}, &model.Product{},
		&model.Batch{},
		&model.PaymentMethod{}, &model.Customer{},
		&model.Sale{}, &model.SaleLine{},
		&model.CashClosing{}, &model.ClosingDetail{},
		&model.ExpenseCategory{}, &model.Expense{},
	)

	seedDefaults(db)

	wsHub := ws.NewHub()
	go wsHub.Run()

	// Repositories
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	productRepo := repository.NewProductRepo(db)
	batchRepo := repository.NewBatchRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	brandRepo := repository.NewBrandRepo(db)
	unitRepo := repository.NewUnitRepo(db)
	methodRepo := repository.NewPaymentMethodRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	closingRepo := repository.NewClosingRepo(db)
	expenseRepo := repository.NewExpenseRepo(db)

	// Services
	authService := service.NewAuthService(userRepo, wsHub)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo)
	invService := service.NewInventoryService(productRepo, batchRepo, brandRepo, db, wsHub)
	checkoutService := service.NewCheckoutService(productRepo, batchRepo, saleRepo, methodRepo, customerRepo, db, wsHub)
	closingService := service.NewClosingService(saleRepo, closingRepo, methodRepo, db)
	dashService := service.NewDashboardService(productRepo, batchRepo, saleRepo)
	financeService := service.NewFinanceService(saleRepo, expenseRepo)
	reportService := service.NewReportService(invService, financeService)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo)
	invHandler := handler.NewInventoryHandler(invService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, invService)
	closingHandler := handler.NewClosingHandler(closingService)
	catalogHandler := handler.NewCatalogHandler(categoryRepo, brandRepo, unitRepo, methodRepo)
	customerHandler := handler.NewCustomerHandler(customerRepo)
	dashHandler := handler.NewDashboardHandler(dashService)
	financeHandler := handler.NewFinanceHandler(financeService)
	reportHandler := handler.NewReportHandler(reportService)

	app := fiber.New(fiber.Config{
		AppName: "StockPro Backend v1.0",
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	api := app.Group("/api/v1")

	// Public auth routes
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat)

	// Everything below requires authentication
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard
	protected.Get("/dashboard", middleware.RequirePrivilege("dashboard:view"), dashHandler.Overview)

	// Products
	protected.Get("/products", middleware.RequirePrivilege("product:view"), invHandler.GetProducts)
	protected.Get("/products/:id", middleware.RequirePrivilege("product:view"), invHandler.GetProduct)
	protected.Post("/products", middleware.RequirePrivilege("product:create"), invHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequirePrivilege("product:update"), invHandler.UpdateProduct)
	protected.Patch("/products/:id/toggle", middleware.RequirePrivilege("product:update"), invHandler.ToggleProduct)
	protected.Delete("/products/:id", middleware.RequirePrivilege("product:delete"), invHandler.DeleteProduct)
	protected.Get("/products/:id/batches", middleware.RequirePrivilege("batch:view"), invHandler.GetBatches)

	// Stock batches
	protected.Post("/batches", middleware.RequirePrivilege("batch:create"), invHandler.ReceiveBatch)
	protected.Delete("/batches/:id", middleware.RequirePrivilege("batch:delete"), invHandler.DeleteBatch)

	// Brand-wide price update
	protected.Post("/brands/price-update", middleware.RequirePrivilege("product:update"), invHandler.UpdateBrandPrices)

	// Catalog lookups
	protected.Get("/categories", catalogHandler.GetCategories)
	protected.Post("/categories", middleware.RequirePrivilege("catalog:manage"), catalogHandler.CreateCategory)
	protected.Put("/categories/:id", middleware.RequirePrivilege("catalog:manage"), catalogHandler.UpdateCategory)
	protected.Patch("/categories/:id/toggle", middleware.RequirePrivilege("catalog:manage"), catalogHandler.ToggleCategory)
	protected.Get("/brands", catalogHandler.GetBrands)
	protected.Post("/brands", middleware.RequirePrivilege("catalog:manage"), catalogHandler.CreateBrand)
	protected.Put("/brands/:id", middleware.RequirePrivilege("catalog:manage"), catalogHandler.UpdateBrand)
	protected.Patch("/brands/:id/toggle", middleware.RequirePrivilege("catalog:manage"), catalogHandler.ToggleBrand)
	protected.Get("/units", catalogHandler.GetUnits)
	protected.Post("/units", middleware.RequirePrivilege("catalog:manage"), catalogHandler.CreateUnit)
	protected.Get("/payment-methods", catalogHandler.GetPaymentMethods)
	protected.Post("/payment-methods", middleware.RequirePrivilege("catalog:manage"), catalogHandler.CreatePaymentMethod)
	protected.Patch("/payment-methods/:id/toggle", middleware.RequirePrivilege("catalog:manage"), catalogHandler.TogglePaymentMethod)

	// Customers
	protected.Get("/customers", middleware.RequirePrivilege("sale:view"), customerHandler.Search)
	protected.Post("/customers", middleware.RequirePrivilege("sale:create"), customerHandler.Create)

	// Point of sale
	protected.Get("/sales/products", middleware.RequirePrivilege("sale:create"), checkoutHandler.GetSellableProducts)
	protected.Get("/sales", middleware.RequirePrivilege("sale:view"), checkoutHandler.GetSales)
	protected.Get("/sales/:id", middleware.RequirePrivilege("sale:view"), checkoutHandler.GetSale)
	protected.Post("/sales", middleware.RequirePrivilege("sale:create"), checkoutHandler.Checkout)

	// Cash register closings
	protected.Get("/closings/preview", middleware.RequirePrivilege("closing:create"), closingHandler.Preview)
	protected.Get("/closings", middleware.RequirePrivilege("closing:view"), closingHandler.History)
	protected.Get("/closings/:id", middleware.RequirePrivilege("closing:view"), closingHandler.GetClosing)
	protected.Post("/closings", middleware.RequirePrivilege("closing:create"), closingHandler.Close)

	// Finance
	protected.Get("/finance/summary", middleware.RequirePrivilege("expense:view"), financeHandler.Summary)
	protected.Get("/expenses", middleware.RequirePrivilege("expense:view"), financeHandler.GetExpenses)
	protected.Post("/expenses", middleware.RequirePrivilege("expense:create"), financeHandler.RecordExpense)
	protected.Delete("/expenses/:id", middleware.RequirePrivilege("expense:create"), financeHandler.DeleteExpense)
	protected.Get("/expenses/categories", middleware.RequirePrivilege("expense:view"), financeHandler.GetExpenseCategories)
	protected.Post("/expenses/categories", middleware.RequirePrivilege("expense:create"), financeHandler.CreateExpenseCategory)

	// Reports
	protected.Get("/reports/stock", middleware.RequirePrivilege("report:export"), reportHandler.StockReport)
	protected.Get("/reports/finance", middleware.RequirePrivilege("report:export"), reportHandler.FinanceReport)

	// User management
	protected.Get("/users", userHandler.GetUsers)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Post("/users", middleware.RequirePrivilege("user:create"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege("user:update"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege("user:delete"), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", middleware.RequirePrivilege("user:update_privilege"), userHandler.UpdateUserPrivileges)

	protected.Get("/roles", roleHandler.GetRoles)
	protected.Get("/privileges", func(c *fiber.Ctx) error {
		privileges, err := privilegeRepo.FindAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch privileges"})
		}
		return c.JSON(privileges)
	})

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedDefaults creates the privileges, roles, admin user, base units and
// payment methods a fresh install needs.
func seedDefaults(db *gorm.DB) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	allPrivileges, _ := privilegeRepo.FindAll()

	// ADMIN gets every privilege.
	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err == nil && len(adminRole.Privileges) == 0 {
		db.Model(&adminRole).Association("Privileges").Replace(allPrivileges)
		log.Println("ADMIN role assigned all privileges")
	}

	// SELLER gets the point-of-sale subset.
	sellerCodes := map[string]bool{
		"product:view": true, "batch:view": true,
		"sale:view": true, "sale:create": true,
		"closing:view": true, "closing:create": true,
		"dashboard:view": true,
	}
	sellerRole, err := roleRepo.FindByCode(model.RoleSeller)
	if err == nil && len(sellerRole.Privileges) == 0 {
		sellerPrivileges := []model.Privilege{}
		for _, p := range allPrivileges {
			if sellerCodes[p.Code] {
				sellerPrivileges = append(sellerPrivileges, p)
			}
		}
		db.Model(&sellerRole).Association("Privileges").Replace(sellerPrivileges)
		log.Println("SELLER role assigned point-of-sale privileges")
	}

	if _, err := userRepo.FindByEmail("admin@example.com"); err != nil {
		adminRole, _ := roleRepo.FindByCode(model.RoleAdmin)

		admin := &model.User{
			Email:      "admin@example.com",
			FullName:   "Administrator",
			RoleID:     &adminRole.ID,
			IsActive:   true,
			Privileges: adminRole.Privileges,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}
		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("Admin user created: admin@example.com / admin123")
		}
	}

	seedUnits(db)
	seedPaymentMethods(db)
}

func seedUnits(db *gorm.DB) {
	defaults := []model.Unit{
		{Name: "Unidad", Abbreviation: "und"},
		{Name: "Kilogramo", Abbreviation: "kg"},
		{Name: "Litro", Abbreviation: "lt"},
	}
	for _, unit := range defaults {
		var existing model.Unit
		if err := db.Where("name = ?", unit.Name).First(&existing).Error; err == gorm.ErrRecordNotFound {
			unit.CreatedBy = "system"
			unit.UpdatedBy = "system"
			if err := db.Create(&unit).Error; err != nil {
				log.Printf("Warning: Failed to seed unit %s: %v", unit.Name, err)
			}
		}
	}
}

func seedPaymentMethods(db *gorm.DB) {
	defaults := []model.PaymentMethod{
		{Name: "Efectivo", IsActive: true},
		{Name: "Yape", IsActive: true},
		{Name: "Tarjeta", IsActive: true},
	}
	for _, method := range defaults {
		var existing model.PaymentMethod
		if err := db.Where("name = ?", method.Name).First(&existing).Error; err == gorm.ErrRecordNotFound {
			method.CreatedBy = "system"
			method.UpdatedBy = "system"
			if err := db.Create(&method).Error; err != nil {
				log.Printf("Warning: Failed to seed payment method %s: %v", method.Name, err)
			}
		}
	}
}
