package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"

	"github.com/walatech/tenant-core/internal/config"
	"github.com/walatech/tenant-core/internal/domain"
	"github.com/walatech/tenant-core/internal/middleware"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Define command line flags
	userID := flag.String("user", "", "User ID for the token")
	roles := flag.String("roles", "", "Comma-separated list of roles (admin, user)")
	tenantID := flag.String("tenant", "", "Tenant ID for the token")
	superAdmin := flag.Bool("super-admin", false, "Mark the token holder as a super admin")
	flag.Parse()

	if *userID == "" {
		log.Fatal("User ID is required")
	}

	if *tenantID == "" && !*superAdmin {
		log.Fatal("Tenant ID is required unless -super-admin is set")
	}

	// Parse roles
	rolesList := []string{}
	if *roles != "" {
		for _, role := range strings.Split(*roles, ",") {
			role = strings.TrimSpace(role)
			if !domain.IsValidRole(role) {
				log.Fatalf("Unknown role %q", role)
			}
			rolesList = append(rolesList, role)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Expiry comes from JWT_EXPIRATION_HOURS
	auth := middleware.NewAuthMiddleware(cfg, nil)
	tokenString, err := auth.GenerateToken(*userID, *tenantID, rolesList, *superAdmin)
	if err != nil {
		log.Fatalf("Error signing token: %v", err)
	}

	fmt.Printf("Generated JWT Token:\n%s\n", tokenString)
}
