package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/appointment-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/appointment-scheduler/internal/db"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/logging"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// Senha de todos os usuários de demonstração.
const demoPassword = "senha12345"

type seedUser struct {
	name           string
	email          string
	role           domain.Role
	specialization string // só profissionais
}

var users = []seedUser{
	{"Admin", "admin@example.com", domain.RoleAdmin, ""},
	{"Ana Souza", "ana@example.com", domain.RoleProfessional, "Cortes"},
	{"Bruno Lima", "bruno@example.com", domain.RoleProfessional, "Barba e coloração"},
	{"Carla Dias", "carla@example.com", domain.RoleClient, ""},
}

var services = []models.Service{
	{Name: "Corte", Description: "Corte de cabelo", DurationMin: 30, Price: 50, Active: true},
	{Name: "Barba", Description: "Barba completa", DurationMin: 30, Price: 35, Active: true},
	{Name: "Coloração", Description: "Coloração completa", DurationMin: 90, Price: 180, Active: true},
}

func main() {
	if err := run(); err != nil {
		slog.Error("seed failed", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New("appointment-scheduler-seed", cfg.LogLevel)

	// NewDB also runs the migrations
	db, err := dbpkg.NewDB(cfg, logger)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, u := range users {
			row := models.User{
				ID:           uuid.NewString(),
				Name:         u.name,
				Email:        u.email,
				PasswordHash: string(hash),
				Role:         string(u.role),
			}
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "email"}},
				DoNothing: true,
			}).Create(&row)
			if res.Error != nil {
				return fmt.Errorf("seed user %s: %w", u.email, res.Error)
			}
			logger.Info("user", "email", u.email, "role", u.role, "created", res.RowsAffected == 1)

			if u.role == domain.RoleProfessional {
				if err := seedProfile(tx, u); err != nil {
					return err
				}
			}
		}

		var count int64
		if err := tx.Model(&models.Service{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			logger.Info("services already seeded", "count", count)
			return nil
		}
		for _, s := range services {
			s.ID = uuid.NewString()
			if err := tx.Create(&s).Error; err != nil {
				return fmt.Errorf("seed service %s: %w", s.Name, err)
			}
		}
		logger.Info("services seeded", "count", len(services))
		return nil
	})
}

func seedProfile(tx *gorm.DB, u seedUser) error {
	var owner models.User
	if err := tx.Where("email = ?", u.email).First(&owner).Error; err != nil {
		return fmt.Errorf("find user %s: %w", u.email, err)
	}
	profile := models.ProfessionalProfile{
		ID:             uuid.NewString(),
		UserID:         owner.ID,
		Specialization: u.specialization,
		Active:         true,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&profile).Error; err != nil {
		return fmt.Errorf("seed profile %s: %w", u.email, err)
	}
	return nil
}
