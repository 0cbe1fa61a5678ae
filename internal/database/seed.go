package database

import (
	"fmt"

	"mindhaven/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// builtInCommunities are created once on an empty database.
var builtInCommunities = []models.Community{
	{Name: "Anxiety Support", Description: "A space to share coping strategies and day-to-day experiences with anxiety."},
	{Name: "Depression Support", Description: "Peer support for living with depression. You are not alone here."},
	{Name: "Mindfulness & Meditation", Description: "Practices, guided sessions, and discussion around mindful living."},
	{Name: "Student Life", Description: "Academic pressure, burnout, and balance for students."},
	{Name: "General Wellbeing", Description: "Everything else: sleep, habits, relationships, and self-care."},
}

// SeedCommunities creates the built-in communities if none exist yet.
func SeedCommunities(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Community{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, community := range builtInCommunities {
		c := community
		if err := db.Create(&c).Error; err != nil {
			return fmt.Errorf("create community %q: %w", c.Name, err)
		}
	}
	return nil
}

// SeedDemoData fills an empty development database with fake users, posts and
// comments so community pages are not blank. Never run in production.
func SeedDemoData(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return nil
	}

	gofakeit.Seed(0)

	hashed, err := bcrypt.GenerateFromPassword([]byte("Demo-password-123!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := make([]models.User, 0, 8)
	for i := 0; i < 8; i++ {
		users = append(users, models.User{
			Email:       gofakeit.Email(),
			DisplayName: gofakeit.Username(),
			Password:    string(hashed),
		})
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	var communities []models.Community
	if err := db.Find(&communities).Error; err != nil {
		return err
	}

	for _, community := range communities {
		for i := 0; i < 4; i++ {
			author := users[gofakeit.Number(0, len(users)-1)]
			post := models.Post{
				CommunityID: community.ID,
				UserID:      author.ID,
				Title:       gofakeit.Sentence(6),
				Content:     gofakeit.Paragraph(1, 3, 12, " "),
			}
			if err := db.Create(&post).Error; err != nil {
				return err
			}

			commenter := users[gofakeit.Number(0, len(users)-1)]
			comment := models.Comment{
				PostID:  post.ID,
				UserID:  commenter.ID,
				Content: gofakeit.Sentence(10),
			}
			if err := db.Create(&comment).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
