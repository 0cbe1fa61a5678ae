package repository

import (
	"context"
	"time"

	"mindhaven/internal/models"

	"gorm.io/gorm"
)

// ChatRepository defines the interface for companion chat data operations
type ChatRepository interface {
	CreateSession(ctx context.Context, session *models.ChatSession) error
	GetSession(ctx context.Context, id string) (*models.ChatSession, error)
	ListSessions(ctx context.Context) ([]models.ChatSession, error)
	GetMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
	AppendTurn(ctx context.Context, sessionID, userText, assistantText string) error
	DeleteSession(ctx context.Context, id string) error
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateSession(ctx context.Context, session *models.ChatSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *chatRepository) GetSession(ctx context.Context, id string) (*models.ChatSession, error) {
	var session models.ChatSession
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		Where("id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *chatRepository) ListSessions(ctx context.Context) ([]models.ChatSession, error) {
	var sessions []models.ChatSession
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		Order("updated_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *chatRepository) GetMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("seq ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// AppendTurn appends the user message and the assistant reply and bumps the
// session's lastMessage/updatedAt in one transaction. Either both messages
// land or neither does.
func (r *chatRepository) AppendTurn(ctx context.Context, sessionID, userText, assistantText string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session models.ChatSession
		if err := tx.Where("id = ?", sessionID).First(&session).Error; err != nil {
			return err
		}

		var maxSeq int
		if err := tx.Model(&models.ChatMessage{}).
			Where("session_id = ?", sessionID).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&maxSeq).Error; err != nil {
			return err
		}

		now := time.Now()
		turn := []models.ChatMessage{
			{SessionID: sessionID, Seq: maxSeq + 1, Role: models.RoleUser, Content: userText, CreatedAt: now},
			{SessionID: sessionID, Seq: maxSeq + 2, Role: models.RoleAssistant, Content: assistantText, CreatedAt: now},
		}
		if err := tx.Create(&turn).Error; err != nil {
			return err
		}

		return tx.Model(&session).Updates(map[string]interface{}{
			"last_message": userText,
			"updated_at":   now,
		}).Error
	})
}

func (r *chatRepository) DeleteSession(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&models.ChatMessage{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.ChatSession{}).Error
	})
}
