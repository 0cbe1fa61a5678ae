package repository

import (
	"testing"

	"mindhaven/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Community{},
		&models.Post{},
		&models.Comment{},
		&models.Vote{},
		&models.ChatSession{},
		&models.ChatMessage{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func createTestUser(t *testing.T, db *gorm.DB, email, name string) models.User {
	t.Helper()
	user := models.User{Email: email, DisplayName: name, Password: "hashed"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestCommunity(t *testing.T, db *gorm.DB, name string) models.Community {
	t.Helper()
	community := models.Community{Name: name, Description: "test community"}
	require.NoError(t, db.Create(&community).Error)
	return community
}
