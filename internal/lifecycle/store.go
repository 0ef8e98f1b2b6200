package lifecycle

import (
	"context"

	"github.com/oggyb/gym-buddy/internal/domain"
)

// Store is the persistence boundary of the lifecycle.
//
// Lookups of a missing match, thread or message return domain.ErrMatchNotFound,
// domain.ErrThreadNotFound or domain.ErrMessageNotFound.
type Store interface {
	AppendDecision(ctx context.Context, d domain.Decision) error
	// DecisionsBetween returns decisions a→b and b→a in append order.
	DecisionsBetween(ctx context.Context, a, b string) ([]domain.Decision, error)

	CreateMatch(ctx context.Context, m domain.Match) error
	GetMatch(ctx context.Context, id string) (domain.Match, error)
	// ActiveMatchBetween finds the active match of an unordered pair.
	ActiveMatchBetween(ctx context.Context, a, b string) (domain.Match, bool, error)
	ActiveMatchesFor(ctx context.Context, userID string) ([]domain.Match, error)
	SetMatchActive(ctx context.Context, id string, active bool) error

	CreateThread(ctx context.Context, th domain.ChatThread) error
	ThreadByMatch(ctx context.Context, matchID string) (domain.ChatThread, bool, error)
	// GetThread returns the thread with its messages in append order.
	GetThread(ctx context.Context, id string) (domain.ChatThread, error)
	AppendMessage(ctx context.Context, msg domain.Message) error
	// IncrementReaction bumps symbol on the message and returns the new count.
	IncrementReaction(ctx context.Context, threadID, messageID, symbol string) (int, error)
}
