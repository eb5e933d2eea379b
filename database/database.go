// File: /database/database.go
package database

import (
	"fmt"

	"aquaevents-api/models"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Info),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Auto migrate all models
	err := db.AutoMigrate(
		&models.User{},
		&models.EventSubmission{},
		&models.Federation{},
		&models.BlogPost{},
		&models.UserFavorite{},
	)

	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Moderation queue is read by status and by submitter
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_event_submissions_status_created ON event_submissions(status, created_at)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for event_submissions status: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_event_submissions_submitted_by ON event_submissions(submitted_by, created_at)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for event_submissions submitter: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_blog_posts_status_published ON blog_posts(status, published_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for blog_posts: %v\n", err)
	}

	// One favorite per user/event pair
	if err := db.Exec("ALTER TABLE user_favorites ADD CONSTRAINT uk_user_favorites_user_event UNIQUE (user_id, event_id)").Error; err != nil {
		fmt.Printf("Warning: Could not add unique constraint for user_favorites: %v\n", err)
	}

	return nil
}

// SeedData populates reference data and promotes the configured owner to admin.
func SeedData(db *gorm.DB, ownerEmail string) error {
	var fedCount int64
	db.Model(&models.Federation{}).Count(&fedCount)

	if fedCount == 0 {
		federations := []models.Federation{
			{ID: uuid.New().String(), Name: "Real Federación Española de Natación", Region: "Nacional", Discipline: "Natación", Website: "https://rfen.es"},
			{ID: uuid.New().String(), Name: "Federación Española de Triatlón", Region: "Nacional", Discipline: "Triatlón", Website: "https://triatlon.org"},
			{ID: uuid.New().String(), Name: "Federación Andaluza de Natación", Region: "Andalucía", Discipline: "Natación", Website: "https://fan.es"},
			{ID: uuid.New().String(), Name: "Federació Catalana de Natació", Region: "Cataluña", Discipline: "Natación", Website: "https://natacio.cat"},
			{ID: uuid.New().String(), Name: "Federación Madrileña de Natación", Region: "Madrid", Discipline: "Natación", Website: "https://fmn.es"},
		}

		for _, fed := range federations {
			if err := db.Create(&fed).Error; err != nil {
				fmt.Printf("Warning: Could not seed federation %s: %v\n", fed.Name, err)
			}
		}
		fmt.Println("Database seeded with federations")
	}

	if ownerEmail != "" {
		result := db.Model(&models.User{}).
			Where("email = ? AND role <> ?", ownerEmail, models.RoleAdmin).
			Update("role", models.RoleAdmin)
		if result.Error == nil && result.RowsAffected > 0 {
			fmt.Printf("Promoted owner account %s to admin\n", ownerEmail)
		}
	}

	return nil
}
