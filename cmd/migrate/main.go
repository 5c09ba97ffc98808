package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kbtassist/internal/database"
	"kbtassist/internal/domain"
	"kbtassist/internal/repository"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Schema and seed management",
	}

	rootCmd.AddCommand(upCmd(), seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func connect() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	return database.Connect(dsn)
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply the schema with AutoMigrate",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := connect()
			if err != nil {
				return err
			}
			log.Println("Running AutoMigrate...")
			if err := db.AutoMigrate(repository.Models()...); err != nil {
				return fmt.Errorf("auto migrate: %w", err)
			}
			log.Println("Schema is up to date")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load a small demo dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := connect()
			if err != nil {
				return err
			}
			if err := db.AutoMigrate(repository.Models()...); err != nil {
				return fmt.Errorf("auto migrate: %w", err)
			}
			return seed(db)
		},
	}
}

func seed(db *gorm.DB) error {
	ctx := context.Background()
	users := repository.NewUserRepository(db)
	properties := repository.NewPropertyRepository(db)
	jobs := repository.NewJobRepository(db)
	invoices := repository.NewInvoiceRepository(db)
	contractors := repository.NewContractorRepository(db)

	log.Println("Creating users...")
	hash := func(pw string) string {
		h, _ := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		return string(h)
	}

	agent := &domain.User{
		Email:        "agent@kbtassist.co.uk",
		PasswordHash: hash("agent123"),
		Name:         "Amelia Clarke",
		Phone:        "+44 7700 900101",
		Role:         domain.RoleAgent,
	}
	landlord := &domain.User{
		Email:        "landlord@kbtassist.co.uk",
		PasswordHash: hash("landlord123"),
		Name:         "Tom Barker",
		Phone:        "+44 7700 900102",
		Role:         domain.RoleLandlord,
	}
	tenant := &domain.User{
		Email:        "tenant@kbtassist.co.uk",
		PasswordHash: hash("tenant123"),
		Name:         "Priya Shah",
		Phone:        "+44 7700 900103",
		Role:         domain.RoleTenant,
	}
	plumber := &domain.User{
		Email:        "plumber@kbtassist.co.uk",
		PasswordHash: hash("plumber123"),
		Name:         "Dave Wilson",
		Phone:        "+44 7700 900104",
		Role:         domain.RoleContractor,
	}
	for _, u := range []*domain.User{agent, landlord, tenant, plumber} {
		if err := users.Create(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	log.Println("Creating properties...")
	flat := &domain.Property{
		Name:       "Flat 2, Maple Court",
		Address:    "12 Maple Court, Leeds",
		Postcode:   "LS1 4AB",
		RentAmount: 950,
		Bedrooms:   2,
		Bathrooms:  1,
		LandlordID: landlord.ID,
		AddedByID:  agent.ID,
	}
	if err := properties.Create(ctx, flat); err != nil {
		return fmt.Errorf("seed property: %w", err)
	}
	if err := properties.AddTenant(ctx, flat.ID, tenant.ID); err != nil {
		return fmt.Errorf("seed tenancy: %w", err)
	}

	log.Println("Creating contractor profile...")
	if err := contractors.CreateProfile(ctx, &domain.ContractorProfile{
		UserID:    plumber.ID,
		Name:      plumber.Name,
		Email:     plumber.Email,
		Phone:     plumber.Phone,
		Specialty: "plumbing",
		Location:  "Leeds",
		AddedByID: agent.ID,
	}); err != nil {
		return fmt.Errorf("seed contractor profile: %w", err)
	}

	log.Println("Creating a maintenance job...")
	if err := jobs.Create(ctx, &domain.MaintenanceJob{
		PropertyID:   flat.ID,
		ReportedByID: tenant.ID,
		Title:        "Leaking kitchen tap",
		Description:  "Cold tap drips constantly, cupboard below is getting damp.",
		JobType:      domain.JobTypePlumbing,
		Priority:     domain.PriorityMedium,
		Status:       domain.JobReported,
	}); err != nil {
		return fmt.Errorf("seed job: %w", err)
	}

	log.Println("Creating an invoice...")
	if err := invoices.Create(ctx, &domain.Invoice{
		PropertyID:  flat.ID,
		TenantID:    tenant.ID,
		Amount:      950,
		DueDate:     time.Now().AddDate(0, 0, 7),
		Description: "Monthly rent",
		Status:      domain.InvoicePending,
	}); err != nil {
		return fmt.Errorf("seed invoice: %w", err)
	}

	log.Println("Seed completed")
	log.Println("Test accounts:")
	log.Println("  agent@kbtassist.co.uk / agent123")
	log.Println("  landlord@kbtassist.co.uk / landlord123")
	log.Println("  tenant@kbtassist.co.uk / tenant123")
	log.Println("  plumber@kbtassist.co.uk / plumber123")
	return nil
}
