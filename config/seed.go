package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/farellandr/eventhub/internal/models"
)

type seedUser struct {
	name, email, password string
	role                  models.Role
}

var seedUsers = []seedUser{
	{"Admin User", "admin@example.com", "admin123", models.RoleAdmin},
	{"John Doe", "john@example.com", "john123", models.RoleCustomer},
	{"Jane Smith", "jane@example.com", "jane123", models.RoleCustomer},
}

func strPtr(s string) *string { return &s }

func seedEvents(adminID uint) []models.Event {
	return []models.Event{
		{
			Title:       "Tech Conference 2024",
			Date:        time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC),
			Location:    "San Francisco",
			Description: strPtr("Join industry leaders for cutting-edge technology discussions and networking."),
			Price:       decimal.RequireFromString("299.99"),
			Category:    "Corporate / Business",
			Image:       strPtr("https://images.unsplash.com/photo-1540575467063-178a50c2df87?w=400"),
			CreatedBy:   adminID,
		},
		{
			Title:       "Music Festival",
			Date:        time.Date(2024, 7, 20, 18, 0, 0, 0, time.UTC),
			Location:    "Los Angeles",
			Description: strPtr("Experience amazing live performances from top artists in a vibrant atmosphere."),
			Price:       decimal.RequireFromString("149.50"),
			Category:    "Arts & Entertainment",
			Image:       strPtr("https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?w=400"),
			CreatedBy:   adminID,
		},
		{
			Title:       "Art Exhibition",
			Date:        time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC),
			Location:    "New York",
			Description: strPtr("Discover contemporary artworks from emerging and established artists."),
			Price:       decimal.RequireFromString("75.00"),
			Category:    "Arts & Entertainment",
			Image:       strPtr("https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=400"),
			CreatedBy:   adminID,
		},
	}
}

// Seed fills empty tables with demo data. Tables that already hold rows
// are left alone.
func Seed(db *gorm.DB, log *zap.Logger) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			for _, su := range seedUsers {
				hashed, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
				if err != nil {
					return err
				}
				user := models.User{Name: su.name, Email: su.email, PasswordHash: string(hashed), Role: su.role}
				if err := tx.Omit("Tickets").Create(&user).Error; err != nil {
					return fmt.Errorf("seed user %s: %w", su.email, err)
				}
			}
		}

		var admin models.User
		if err := tx.Where("email = ?", "admin@example.com").First(&admin).Error; err != nil {
			return fmt.Errorf("seed admin lookup: %w", err)
		}

		if err := tx.Model(&models.Event{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			events := seedEvents(admin.ID)
			if err := tx.Omit("Creator", "Tickets").Create(&events).Error; err != nil {
				return fmt.Errorf("seed events: %w", err)
			}
		}

		if err := tx.Model(&models.Ticket{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			var john, jane models.User
			if err := tx.Where("email = ?", "john@example.com").First(&john).Error; err != nil {
				return err
			}
			if err := tx.Where("email = ?", "jane@example.com").First(&jane).Error; err != nil {
				return err
			}
			var events []models.Event
			if err := tx.Order("id").Limit(2).Find(&events).Error; err != nil {
				return err
			}
			if len(events) < 2 {
				return fmt.Errorf("seed tickets: need two events, found %d", len(events))
			}
			tickets := []models.Ticket{
				{Price: events[0].Price, UserID: john.ID, EventID: events[0].ID},
				{Price: events[1].Price, UserID: jane.ID, EventID: events[1].ID},
			}
			if err := tx.Omit("Event").Create(&tickets).Error; err != nil {
				return fmt.Errorf("seed tickets: %w", err)
			}
		}

		var users, events, tickets int64
		tx.Model(&models.User{}).Count(&users)
		tx.Model(&models.Event{}).Count(&events)
		tx.Model(&models.Ticket{}).Count(&tickets)
		log.Info("database seeded",
			zap.Int64("users", users),
			zap.Int64("events", events),
			zap.Int64("tickets", tickets),
		)
		return nil
	})
}
