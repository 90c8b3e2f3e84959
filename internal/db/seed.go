package db

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cleanproservices/cleanpro-api/internal/models"
)

// Seed creates the admin account, a test customer and the three cleaning
// services. It is idempotent: existing rows (matched by email / slug) are
// left untouched.
func Seed(db *gorm.DB) error {
	users := []struct {
		name     string
		email    string
		password string
		role     string
		phone    string
		address  string
	}{
		{"Admin User", "admin@cleanpro.com", "Admin123!", models.RoleAdmin, "", ""},
		{"Test User", "user@example.com", "User1234!", models.RoleUser, "+1-555-555-5555", "456 Oak Avenue, City, State 12345"},
	}

	for _, u := range users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), 12)
		if err != nil {
			return err
		}

		user := models.User{
			Name:         u.name,
			Email:        u.email,
			PasswordHash: string(hashed),
			Phone:        u.phone,
			Address:      u.address,
			Role:         u.role,
		}

		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).Create(&user)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			log.Printf("seeded user %s", u.email)
		}
	}

	services := []models.Service{
		{
			Name:        "Carpet Cleaning",
			Slug:        "carpet-cleaning",
			Description: "Our professional carpet cleaning service uses state-of-the-art hot water extraction technology to deep clean your carpets. We remove embedded dirt, allergens, dust mites, and stubborn stains while extending the life of your carpet. Our eco-friendly cleaning solutions are safe for children and pets.",
			ShortDesc:   "Deep cleaning that removes dirt, stains, and allergens from your carpets.",
			Price:       99.0,
			PriceUnit:   "per room",
			DurationMin: 60,
			Active:      true,
		},
		{
			Name:        "Sofa Cleaning",
			Slug:        "sofa-cleaning",
			Description: "Restore your sofas and couches to their original beauty with our professional upholstery cleaning. We handle all fabric types including leather, microfiber, cotton, and velvet. Our specialized treatments remove stains, odors, and allergens while being gentle on your furniture.",
			ShortDesc:   "Restore your sofas to their original beauty with our deep cleaning service.",
			Price:       79.0,
			PriceUnit:   "per seat",
			DurationMin: 45,
			Active:      true,
		},
		{
			Name:        "Upholstery Cleaning",
			Slug:        "upholstery-cleaning",
			Description: "Complete upholstery and furniture cleaning service for dining chairs, armchairs, ottomans, cushions, curtains, and more. We use safe, non-toxic cleaning products that effectively remove dirt and stains while being gentle on all fabric types.",
			ShortDesc:   "Complete cleaning for all your upholstered furniture and fabrics.",
			Price:       49.0,
			PriceUnit:   "per item",
			DurationMin: 30,
			Active:      true,
		},
	}

	for i := range services {
		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).Create(&services[i])
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			log.Printf("seeded service %s", services[i].Slug)
		}
	}

	return nil
}
