package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"alignai-be/internal/config"
	"alignai-be/internal/entity"
	"alignai-be/internal/repository/specification"
	"alignai-be/internal/repository/unitofwork"
	"alignai-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	path := flag.String("file", "seeds/templates.yaml", "template seed file")
	flag.Parse()

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.Options{})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	uowFactory := unitofwork.NewRepositoryFactory(db)
	ctx := context.Background()

	seeds, err := loadTemplates(*path)
	if err != nil {
		color.Red("Failed to load %s: %v", *path, err)
		os.Exit(1)
	}

	color.Cyan("Seeding %d interview templates from %s\n", len(seeds), *path)
	var created, updated, failed int
	for _, s := range seeds {
		isNew, err := upsertTemplate(ctx, uowFactory, s)
		switch {
		case err != nil:
			failed++
			color.Red("  ! %s / %s: %v", s.Category, s.Subcategory, err)
		case isNew:
			created++
			color.Green("  + %s / %s: %s", s.Category, s.Subcategory, s.Title)
		default:
			updated++
			color.Yellow("  ~ %s / %s: %s", s.Category, s.Subcategory, s.Title)
		}
	}
	color.Cyan("Templates: %d created, %d updated, %d failed", created, updated, failed)

	seedAdmin(ctx, uowFactory)

	if failed > 0 {
		os.Exit(1)
	}
}

// upsertTemplate matches on category/subcategory so reruns refresh in place.
func upsertTemplate(ctx context.Context, f unitofwork.RepositoryFactory, s templateSeed) (bool, error) {
	repo := f.NewUnitOfWork(ctx).InterviewTemplateRepository()
	existing, err := repo.FindOne(ctx, specification.ByTopic{Category: s.Category, Subcategory: s.Subcategory})
	if err != nil {
		return false, err
	}

	var description *string
	if d := strings.TrimSpace(s.Description); d != "" {
		description = &d
	}
	t := &entity.InterviewTemplate{
		Category:    s.Category,
		Subcategory: s.Subcategory,
		Title:       s.Title,
		Description: description,
		Duration:    s.Duration,
		Difficulty:  s.Difficulty,
		Questions:   s.Questions,
		IsActive:    !s.Inactive,
	}

	if existing == nil {
		t.Id = uuid.New()
		t.CreatedAt = time.Now()
		return true, repo.Create(ctx, t)
	}
	t.Id = existing.Id
	t.CreatedAt = existing.CreatedAt
	return false, repo.Update(ctx, t)
}

// seedAdmin creates the admin account named by SEED_ADMIN_EMAIL and
// SEED_ADMIN_PASSWORD when both are set and the email is free.
func seedAdmin(ctx context.Context, f unitofwork.RepositoryFactory) {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL")))
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	repo := f.NewUnitOfWork(ctx).UserRepository()
	existing, err := repo.FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		color.Red("Admin lookup failed: %v", err)
		return
	}
	if existing != nil {
		color.Yellow("Admin %s already exists, skipping", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		color.Red("Failed to hash admin password: %v", err)
		return
	}
	now := time.Now()
	admin := &entity.User{
		Id:           uuid.New(),
		Email:        email,
		Username:     strings.Split(email, "@")[0],
		PasswordHash: string(hash),
		IsActive:     true,
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(ctx, admin); err != nil {
		color.Red("Failed to create admin: %v", err)
		return
	}
	color.Green("Created admin %s", email)
}
