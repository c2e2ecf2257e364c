package main

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cfptracker/internal/config"
	"cfptracker/internal/db"
	"cfptracker/internal/model"
	"cfptracker/internal/repository"
)

const (
	demoEmail    = "demo@cfptracker.local"
	demoPassword = "demo-password"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.CFP{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	cfpRepo := repository.NewCFPRepository(gormDB)

	user, err := userRepo.FindByEmail(ctx, demoEmail)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
		if hashErr != nil {
			log.Fatalf("Failed to hash demo password: %v", hashErr)
		}
		user = &model.User{
			Email:        demoEmail,
			PasswordHash: string(hash),
			IsActive:     true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create demo user: %v", err)
		}
		log.Printf("Created demo user %s (id=%d)", user.Email, user.ID)
	} else if err != nil {
		log.Fatalf("Failed to look up demo user: %v", err)
	} else {
		log.Printf("Demo user %s already exists (id=%d)", user.Email, user.ID)
	}

	cfps := demoCFPs(user.ID)
	created := 0
	for i := range cfps {
		if err := cfpRepo.Create(ctx, &cfps[i]); err != nil {
			log.Printf("Skipping CFP %q: %v", cfps[i].Title, err)
			continue
		}
		created++
	}

	log.Printf("Seed complete: %d of %d CFPs created", created, len(cfps))
}

func demoCFPs(ownerID uint) []model.CFP {
	base := time.Now().Truncate(24 * time.Hour)
	return []model.CFP{
		{
			Title:          "GopherCon EU Call for Papers",
			Description:    "Talks on Go tooling, runtime and real-world systems.",
			EventName:      "GopherCon EU",
			EventDate:      base.AddDate(0, 4, 0),
			ClosingDate:    base.AddDate(0, 1, 15),
			Location:       "Berlin, Germany",
			TargetAudience: "Go developers",
			EventType:      "Conference",
			EventURL:       "https://gophercon.eu",
			CFPURL:         "https://gophercon.eu/cfp",
			Source:         "seed",
			CreatedByID:    ownerID,
		},
		{
			Title:          "CloudNative Days CFP",
			Description:    "Kubernetes, observability and platform engineering.",
			EventName:      "CloudNative Days",
			EventDate:      base.AddDate(0, 6, 0),
			ClosingDate:    base.AddDate(0, 2, 0),
			Location:       "Remote",
			TargetAudience: "Platform engineers",
			EventType:      "Conference",
			EventURL:       "https://cloudnativedays.example.com",
			CFPURL:         "https://cloudnativedays.example.com/cfp",
			Source:         "seed",
			CreatedByID:    ownerID,
		},
		{
			Title:          "Local DevOps Meetup Lightning Talks",
			Description:    "Five minute talks, first time speakers welcome.",
			EventName:      "DevOps Meetup",
			EventDate:      base.AddDate(0, 1, 0),
			ClosingDate:    base.AddDate(0, 0, 20),
			Location:       "Amsterdam, Netherlands",
			TargetAudience: "DevOps engineers",
			EventType:      "Meetup",
			EventURL:       "https://meetup.example.com/devops",
			CFPURL:         "https://meetup.example.com/devops/talks",
			Source:         "seed",
			CreatedByID:    ownerID,
		},
	}
}
