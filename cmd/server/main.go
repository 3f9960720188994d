package main

import (
	"log"
	"os"

	"task-approval-api/internal/database"
	"task-approval-api/internal/routes"
	"task-approval-api/internal/workflow"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// Init database
	db, err := database.Open(database.DefaultPath())
	if err != nil {
		log.Fatal("Failed to init database: ", err)
	}

	// First boot: create the default superadmin account. The OTP is
	// printed once and never recoverable afterwards.
	seedEmail := getEnv("SUPERADMIN_EMAIL", "superadmin@company.com")
	seedName := getEnv("SUPERADMIN_NAME", "System Administrator")
	otp, err := workflow.NewEngine(db).SeedSuperadmin(seedName, seedEmail)
	if err != nil {
		log.Fatal("Failed to seed superadmin: ", err)
	}
	if otp != "" {
		log.Println("========================================")
		log.Println("DEFAULT SUPERADMIN CREATED")
		log.Printf("  Email: %s", seedEmail)
		log.Printf("  OTP:   %s", otp)
		log.Println("  Login and provision real accounts, then rotate this one.")
		log.Println("========================================")
	}

	// Setup the routes (public and protected routes)
	ginRoutes := routes.SetupRoutes(db)

	// Start server
	port := ":" + getEnv("PORT", "8008")
	log.Printf("Server starting on port %s", port)
	log.Println("API endpoints:")
	log.Println("  POST   /api/auth/request-otp")
	log.Println("  POST   /api/auth/login")
	log.Println("  GET    /api/tasks")
	log.Println("  POST   /api/tasks")
	log.Println("  POST   /api/tasks/:id/submit")
	log.Println("  POST   /api/tasks/:id/admin-review")
	log.Println("  POST   /api/tasks/:id/superadmin-review")
	log.Println("  GET    /api/reviews/admin")
	log.Println("  GET    /api/reviews/superadmin")
	log.Println("  GET    /api/members")
	log.Println("  GET    /api/projects")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
