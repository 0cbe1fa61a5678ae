package service

import (
	"context"
	"sort"
	"time"

	"mindhaven/internal/llm"
	"mindhaven/internal/models"

	"gorm.io/gorm"
)

// stubChatRepo is an in-memory ChatRepository.
type stubChatRepo struct {
	sessions map[string]*models.ChatSession
	messages map[string][]models.ChatMessage

	appendErr error
	createErr error
}

func newStubChatRepo() *stubChatRepo {
	return &stubChatRepo{
		sessions: make(map[string]*models.ChatSession),
		messages: make(map[string][]models.ChatMessage),
	}
}

func (r *stubChatRepo) CreateSession(_ context.Context, session *models.ChatSession) error {
	if r.createErr != nil {
		return r.createErr
	}
	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now
	r.sessions[session.ID] = session
	for i := range session.Messages {
		session.Messages[i].SessionID = session.ID
		r.messages[session.ID] = append(r.messages[session.ID], session.Messages[i])
	}
	return nil
}

func (r *stubChatRepo) GetSession(_ context.Context, id string) (*models.ChatSession, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return session, nil
}

func (r *stubChatRepo) ListSessions(_ context.Context) ([]models.ChatSession, error) {
	out := make([]models.ChatSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *stubChatRepo) GetMessages(_ context.Context, sessionID string) ([]models.ChatMessage, error) {
	return r.messages[sessionID], nil
}

func (r *stubChatRepo) AppendTurn(_ context.Context, sessionID, userText, assistantText string) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	session, ok := r.sessions[sessionID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	seq := len(r.messages[sessionID])
	now := time.Now()
	r.messages[sessionID] = append(r.messages[sessionID],
		models.ChatMessage{SessionID: sessionID, Seq: seq + 1, Role: models.RoleUser, Content: userText, CreatedAt: now},
		models.ChatMessage{SessionID: sessionID, Seq: seq + 2, Role: models.RoleAssistant, Content: assistantText, CreatedAt: now},
	)
	session.LastMessage = userText
	session.UpdatedAt = now
	return nil
}

func (r *stubChatRepo) DeleteSession(_ context.Context, id string) error {
	delete(r.sessions, id)
	delete(r.messages, id)
	return nil
}

// stubLLM records the history it receives and returns a canned reply.
type stubLLM struct {
	reply    string
	err      error
	received []llm.Message
	calls    int
}

func (s *stubLLM) Complete(_ context.Context, history []llm.Message) (string, error) {
	s.calls++
	s.received = history
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

// stubGate records checked texts and flags those listed in toxic.
type stubGate struct {
	toxic   map[string]bool
	checked []string
}

func newStubGate(toxic ...string) *stubGate {
	m := make(map[string]bool, len(toxic))
	for _, t := range toxic {
		m[t] = true
	}
	return &stubGate{toxic: m}
}

func (g *stubGate) Allow(_ context.Context, _, text string) bool {
	g.checked = append(g.checked, text)
	return !g.toxic[text]
}

// stubPostRepo is an in-memory PostRepository.
type stubPostRepo struct {
	posts         map[uint]*models.Post
	nextID        uint
	commentCounts map[uint]int64

	countCalls int
	createErr  error
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{
		posts:         make(map[uint]*models.Post),
		commentCounts: make(map[uint]int64),
		nextID:        1,
	}
}

func (r *stubPostRepo) Create(_ context.Context, post *models.Post) error {
	if r.createErr != nil {
		return r.createErr
	}
	post.ID = r.nextID
	r.nextID++
	post.CreatedAt = time.Now()
	r.posts[post.ID] = post
	return nil
}

func (r *stubPostRepo) GetByID(_ context.Context, id uint) (*models.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return post, nil
}

func (r *stubPostRepo) ListByCommunity(_ context.Context, communityID uint) ([]models.Post, error) {
	var out []models.Post
	for _, p := range r.posts {
		if p.CommunityID == communityID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubPostRepo) CommentCounts(_ context.Context, postIDs []uint) (map[uint]int64, error) {
	r.countCalls++
	counts := make(map[uint]int64)
	for _, id := range postIDs {
		if c, ok := r.commentCounts[id]; ok {
			counts[id] = c
		}
	}
	return counts, nil
}

// stubCommentRepo is an in-memory CommentRepository.
type stubCommentRepo struct {
	comments map[uint]*models.Comment
	nextID   uint
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: make(map[uint]*models.Comment), nextID: 1}
}

func (r *stubCommentRepo) Create(_ context.Context, comment *models.Comment) error {
	comment.ID = r.nextID
	r.nextID++
	comment.CreatedAt = time.Now()
	r.comments[comment.ID] = comment
	return nil
}

func (r *stubCommentRepo) GetByID(_ context.Context, id uint) (*models.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return comment, nil
}

func (r *stubCommentRepo) ListByPost(_ context.Context, postID uint) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// stubVoteRepo is an in-memory VoteRepository keyed on (user, type, id).
type stubVoteRepo struct {
	votes      map[[3]uint64]*models.Vote
	tallyCalls int
}

func newStubVoteRepo() *stubVoteRepo {
	return &stubVoteRepo{votes: make(map[[3]uint64]*models.Vote)}
}

func voteKey(v *models.Vote) [3]uint64 {
	var typeBit uint64
	if v.TargetType == models.VoteTargetComment {
		typeBit = 1
	}
	return [3]uint64{uint64(v.UserID), typeBit, uint64(v.TargetID)}
}

func (r *stubVoteRepo) Upsert(_ context.Context, vote *models.Vote) error {
	r.votes[voteKey(vote)] = vote
	return nil
}

func (r *stubVoteRepo) TalliesFor(_ context.Context, targetType string, targetIDs []uint) (map[uint]models.VoteTally, error) {
	r.tallyCalls++
	wanted := make(map[uint]bool, len(targetIDs))
	for _, id := range targetIDs {
		wanted[id] = true
	}

	tallies := make(map[uint]models.VoteTally)
	for _, v := range r.votes {
		if v.TargetType != targetType || !wanted[v.TargetID] {
			continue
		}
		tally := tallies[v.TargetID]
		switch v.Value {
		case 1:
			tally.Upvotes++
		case -1:
			tally.Downvotes++
		}
		tallies[v.TargetID] = tally
	}
	return tallies, nil
}

// stubUserRepo is an in-memory UserRepository.
type stubUserRepo struct {
	byID    map[uint]*models.User
	byEmail map[string]*models.User
	nextID  uint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:    make(map[uint]*models.User),
		byEmail: make(map[string]*models.User),
		nextID:  1,
	}
}

func (r *stubUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *stubUserRepo) GetDisplayNames(_ context.Context, ids []uint) (map[uint]string, error) {
	names := make(map[uint]string)
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			names[id] = u.DisplayName
		}
	}
	return names, nil
}
