// Package service provides application business logic (chat, communities, moderation).
package service

import (
	"context"
	"strings"
	"sync"

	"mindhaven/internal/llm"
	"mindhaven/internal/models"
	"mindhaven/internal/observability"
	"mindhaven/internal/repository"

	"github.com/google/uuid"
)

const (
	defaultSessionTitle = "New Conversation"

	greetingMessage = "Hi, I'm here to listen. How are you feeling today?"
)

// crisisKeywords trigger the crisis advisory. Matching is a case-insensitive
// substring scan of the raw user input; it never blocks the turn.
var crisisKeywords = []string{
	"suicide",
	"kill myself",
	"end it all",
	"not worth living",
	"want to die",
}

// crisisResources is surfaced alongside the model reply when a crisis
// keyword matches.
const crisisResources = "If you're in crisis or thinking about harming yourself, please reach out now: " +
	"call or text a local crisis line such as 988 (US), iCall +91 9152987821 (India), " +
	"or your local emergency number. You deserve support from a real person."

// TurnResult is the outcome of one companion exchange.
type TurnResult struct {
	Reply           string
	Crisis          bool
	CrisisResources string
}

// ChatService manages companion conversations.
type ChatService struct {
	chatRepo repository.ChatRepository
	llm      llm.Client

	// one mutex per live session so concurrent turns on the same session
	// serialize while different sessions proceed independently
	locks sync.Map
}

// NewChatService returns a new ChatService.
func NewChatService(chatRepo repository.ChatRepository, llmClient llm.Client) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
		llm:      llmClient,
	}
}

func (s *ChatService) sessionLock(sessionID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// CreateSession starts a new conversation seeded with the assistant greeting.
func (s *ChatService) CreateSession(ctx context.Context, title string) (*models.ChatSession, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = defaultSessionTitle
	}

	session := &models.ChatSession{
		ID:    uuid.NewString(),
		Title: title,
		Messages: []models.ChatMessage{
			{Seq: 1, Role: models.RoleAssistant, Content: greetingMessage},
		},
	}
	if err := s.chatRepo.CreateSession(ctx, session); err != nil {
		return nil, models.NewInternalError(err)
	}
	return session, nil
}

// ListSessions returns all conversations, most recently active first.
func (s *ChatService) ListSessions(ctx context.Context) ([]models.ChatSession, error) {
	sessions, err := s.chatRepo.ListSessions(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return sessions, nil
}

// GetMessages returns the ordered transcript of one session.
func (s *ChatService) GetMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	if _, err := s.chatRepo.GetSession(ctx, sessionID); err != nil {
		return nil, models.NewNotFoundError("chat session", sessionID)
	}
	messages, err := s.chatRepo.GetMessages(ctx, sessionID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

// DeleteSession removes a conversation and immediately starts a fresh one so
// the client always has an active session to land on.
func (s *ChatService) DeleteSession(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	if _, err := s.chatRepo.GetSession(ctx, sessionID); err != nil {
		return nil, models.NewNotFoundError("chat session", sessionID)
	}
	if err := s.chatRepo.DeleteSession(ctx, sessionID); err != nil {
		return nil, models.NewInternalError(err)
	}
	s.locks.Delete(sessionID)

	return s.CreateSession(ctx, "")
}

// SendTurn runs one exchange: the user message goes to the model with the
// full session history, and both sides of the turn are persisted atomically.
// Turns on the same session are serialized.
func (s *ChatService) SendTurn(ctx context.Context, sessionID, userText string) (*TurnResult, error) {
	userText = strings.TrimSpace(userText)
	if userText == "" {
		return nil, models.NewValidationError("Message cannot be empty")
	}
	if sessionID == "" {
		return nil, models.NewValidationError("Chat session ID is required")
	}

	mu := s.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	if _, err := s.chatRepo.GetSession(ctx, sessionID); err != nil {
		return nil, models.NewNotFoundError("chat session", sessionID)
	}

	history, err := s.chatRepo.GetMessages(ctx, sessionID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	turns := make([]llm.Message, 0, len(history)+1)
	for _, msg := range history {
		turns = append(turns, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	turns = append(turns, llm.Message{Role: models.RoleUser, Content: userText})

	reply, err := s.llm.Complete(ctx, turns)
	if err != nil {
		return nil, err
	}

	if err := s.chatRepo.AppendTurn(ctx, sessionID, userText, reply); err != nil {
		return nil, models.NewInternalError(err)
	}

	result := &TurnResult{Reply: reply}
	if detectCrisis(userText) {
		observability.CrisisDetections.Inc()
		result.Crisis = true
		result.CrisisResources = crisisResources
	}
	return result, nil
}

// detectCrisis scans the raw user input for crisis language.
func detectCrisis(text string) bool {
	lowered := strings.ToLower(text)
	for _, kw := range crisisKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
