package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/oggyb/gym-buddy/internal/domain"
	"github.com/oggyb/gym-buddy/internal/lifecycle"
)

// Store backs the match lifecycle with the SQL repositories.
type Store struct {
	Decisions *DecisionRepository
	Matches   *MatchRepository
	Chats     *ChatRepository
}

// NewStore wires the repositories over one DB connection.
func NewStore(database *gorm.DB) *Store {
	return &Store{
		Decisions: NewDecisionRepository(database),
		Matches:   NewMatchRepository(database),
		Chats:     NewChatRepository(database),
	}
}

var _ lifecycle.Store = (*Store)(nil)

func (s *Store) AppendDecision(ctx context.Context, d domain.Decision) error {
	return s.Decisions.Append(ctx, d)
}

func (s *Store) DecisionsBetween(ctx context.Context, a, b string) ([]domain.Decision, error) {
	return s.Decisions.Between(ctx, a, b)
}

func (s *Store) CreateMatch(ctx context.Context, m domain.Match) error {
	return s.Matches.Create(ctx, m)
}

func (s *Store) GetMatch(ctx context.Context, id string) (domain.Match, error) {
	return s.Matches.Get(ctx, id)
}

func (s *Store) ActiveMatchBetween(ctx context.Context, a, b string) (domain.Match, bool, error) {
	return s.Matches.ActiveBetween(ctx, a, b)
}

func (s *Store) ActiveMatchesFor(ctx context.Context, userID string) ([]domain.Match, error) {
	return s.Matches.ActiveFor(ctx, userID)
}

func (s *Store) SetMatchActive(ctx context.Context, id string, active bool) error {
	return s.Matches.SetActive(ctx, id, active)
}

func (s *Store) CreateThread(ctx context.Context, th domain.ChatThread) error {
	return s.Chats.CreateThread(ctx, th)
}

func (s *Store) ThreadByMatch(ctx context.Context, matchID string) (domain.ChatThread, bool, error) {
	return s.Chats.ThreadByMatch(ctx, matchID)
}

func (s *Store) GetThread(ctx context.Context, id string) (domain.ChatThread, error) {
	return s.Chats.GetThread(ctx, id)
}

func (s *Store) AppendMessage(ctx context.Context, msg domain.Message) error {
	return s.Chats.AppendMessage(ctx, msg)
}

func (s *Store) IncrementReaction(ctx context.Context, threadID, messageID, symbol string) (int, error) {
	return s.Chats.IncrementReaction(ctx, threadID, messageID, symbol)
}
