// Package lifecycle turns swipe decisions into matches and chat threads.
//
// Per unordered pair of users the states are NoRelation → Matched (active)
// → Archived (inactive). Decisions, messages and reactions are append-only.
// The lifecycle holds no locks; callers serving several users at once must
// serialize mutations per user.
package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oggyb/gym-buddy/internal/domain"
	"github.com/oggyb/gym-buddy/internal/schedule"
)

// DecisionResult describes what recording a decision produced.
type DecisionResult struct {
	Decision domain.Decision
	// Match is set when the pair is matched after the decision.
	Match *domain.Match
	// NewMatch is true when this decision created Match.
	NewMatch bool
}

// Lifecycle drives the swipe → match → chat flow over a Store.
type Lifecycle struct {
	store  Store
	policy MatchingPolicy
	now    func() time.Time
	newID  func(prefix string) string
}

// Option customizes a Lifecycle.
type Option func(*Lifecycle)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Lifecycle) { l.now = now }
}

// WithIDGenerator overrides the uuid-based id generator.
func WithIDGenerator(gen func(prefix string) string) Option {
	return func(l *Lifecycle) { l.newID = gen }
}

// New creates a Lifecycle. A nil policy means MutualLike.
func New(store Store, policy MatchingPolicy, opts ...Option) *Lifecycle {
	if policy == nil {
		policy = MutualLike
	}
	l := &Lifecycle{
		store:  store,
		policy: policy,
		now:    time.Now,
		newID:  func(prefix string) string { return prefix + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// RecordDecision appends a decision and, for likes, applies the matching policy.
//
// Behavior:
//   - The decision is always appended, repeats included.
//   - A like between users that already share an active match returns that
//     match instead of creating a second one.
//   - Otherwise the policy sees every earlier decision of the pair.
func (l *Lifecycle) RecordDecision(ctx context.Context, swiperID, targetID string, value domain.DecisionValue) (DecisionResult, error) {
	if swiperID == targetID {
		return DecisionResult{}, domain.ErrSelfDecision
	}
	if !value.Valid() {
		return DecisionResult{}, domain.ErrInvalidDecision
	}

	prior, err := l.store.DecisionsBetween(ctx, swiperID, targetID)
	if err != nil {
		return DecisionResult{}, fmt.Errorf("load prior decisions: %w", err)
	}

	d := domain.Decision{
		ID:        l.newID("s_"),
		SwiperID:  swiperID,
		TargetID:  targetID,
		Value:     value,
		CreatedAt: l.now(),
	}
	if err := l.store.AppendDecision(ctx, d); err != nil {
		return DecisionResult{}, fmt.Errorf("append decision: %w", err)
	}

	res := DecisionResult{Decision: d}
	if value != domain.DecisionLike {
		return res, nil
	}

	existing, ok, err := l.store.ActiveMatchBetween(ctx, swiperID, targetID)
	if err != nil {
		return res, fmt.Errorf("lookup match: %w", err)
	}
	if ok {
		res.Match = &existing
		return res, nil
	}

	if !l.policy.ShouldMatch(d, prior) {
		return res, nil
	}

	m, err := l.createMatch(ctx, swiperID, targetID)
	if err != nil {
		return res, err
	}
	res.Match = &m
	res.NewMatch = true
	return res, nil
}

func (l *Lifecycle) createMatch(ctx context.Context, a, b string) (domain.Match, error) {
	m := domain.Match{
		ID:        l.newID("m_"),
		UserA:     a,
		UserB:     b,
		CreatedAt: l.now(),
		Active:    true,
	}
	if err := l.store.CreateMatch(ctx, m); err != nil {
		return domain.Match{}, fmt.Errorf("create match: %w", err)
	}
	return m, nil
}

// Matches lists the active matches of userID.
func (l *Lifecycle) Matches(ctx context.Context, userID string) ([]domain.Match, error) {
	return l.store.ActiveMatchesFor(ctx, userID)
}

// Deactivate archives a match. Archiving twice is a no-op.
func (l *Lifecycle) Deactivate(ctx context.Context, matchID string) error {
	m, err := l.store.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if !m.Active {
		return nil
	}
	return l.store.SetMatchActive(ctx, matchID, false)
}

// EnsureChatThread returns the thread of a match, creating it on first use.
// Calling it again returns the same thread and leaves its messages untouched.
func (l *Lifecycle) EnsureChatThread(ctx context.Context, matchID string) (domain.ChatThread, error) {
	m, err := l.store.GetMatch(ctx, matchID)
	if err != nil {
		return domain.ChatThread{}, err
	}

	th, ok, err := l.store.ThreadByMatch(ctx, matchID)
	if err != nil {
		return domain.ChatThread{}, err
	}
	if ok {
		return th, nil
	}
	if !m.Active {
		return domain.ChatThread{}, domain.ErrMatchInactive
	}

	th = domain.ChatThread{
		ID:        l.newID("c_"),
		MatchID:   matchID,
		CreatedAt: l.now(),
		Messages:  []domain.Message{},
	}
	if err := l.store.CreateThread(ctx, th); err != nil {
		return domain.ChatThread{}, fmt.Errorf("create thread: %w", err)
	}
	return th, nil
}

// Conversation is what OpenConversation returns.
type Conversation struct {
	Match  domain.Match
	Thread domain.ChatThread
	// NewMatch is true when the call created Match.
	NewMatch bool
}

// OpenConversation starts talking to someone straight from their profile:
// it makes sure the pair has an active match, bypassing the matching policy,
// and returns the match thread.
func (l *Lifecycle) OpenConversation(ctx context.Context, userID, partnerID string) (Conversation, error) {
	if userID == partnerID {
		return Conversation{}, domain.ErrSelfDecision
	}

	m, ok, err := l.store.ActiveMatchBetween(ctx, userID, partnerID)
	if err != nil {
		return Conversation{}, err
	}
	if !ok {
		if m, err = l.createMatch(ctx, userID, partnerID); err != nil {
			return Conversation{}, err
		}
	}

	th, err := l.EnsureChatThread(ctx, m.ID)
	if err != nil {
		return Conversation{}, err
	}
	return Conversation{Match: m, Thread: th, NewMatch: !ok}, nil
}

// SendMessage appends a text message from senderID.
func (l *Lifecycle) SendMessage(ctx context.Context, threadID, senderID, text string) (domain.Message, error) {
	return l.post(ctx, threadID, senderID, text, domain.MessageText)
}

// ProposeSession posts a session-type message describing slot.
func (l *Lifecycle) ProposeSession(ctx context.Context, threadID, senderID string, slot schedule.Slot, facilityName string) (domain.Message, error) {
	text := fmt.Sprintf("Séance proposée à %s : %s – %s",
		facilityName, FormatSlot(slot.Start), slot.End().Format("15:04"))
	return l.post(ctx, threadID, senderID, text, domain.MessageSession)
}

func (l *Lifecycle) post(ctx context.Context, threadID, senderID, text string, typ domain.MessageType) (domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Message{}, domain.ErrEmptyMessage
	}

	th, err := l.store.GetThread(ctx, threadID)
	if err != nil {
		return domain.Message{}, err
	}
	m, err := l.store.GetMatch(ctx, th.MatchID)
	if err != nil {
		return domain.Message{}, err
	}
	if !m.Involves(senderID) {
		return domain.Message{}, domain.ErrNotParticipant
	}
	if !m.Active {
		return domain.Message{}, domain.ErrMatchInactive
	}

	msg := domain.Message{
		ID:        l.newID("msg_"),
		ThreadID:  threadID,
		SenderID:  senderID,
		Text:      text,
		Type:      typ,
		CreatedAt: l.now(),
		Reactions: map[string]int{},
	}
	if err := l.store.AppendMessage(ctx, msg); err != nil {
		return domain.Message{}, fmt.Errorf("append message: %w", err)
	}
	return msg, nil
}

// React increments the symbol counter of a message and returns the new count.
func (l *Lifecycle) React(ctx context.Context, threadID, messageID, symbol string) (int, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return 0, domain.ErrInvalidReaction
	}
	return l.store.IncrementReaction(ctx, threadID, messageID, symbol)
}

var frenchDays = [...]string{"Lun", "Mar", "Mer", "Jeu", "Ven", "Sam", "Dim"}

// FormatSlot renders a start time like "Ven 18:00 16/10/2026".
func FormatSlot(t time.Time) string {
	return fmt.Sprintf("%s %s", frenchDays[schedule.MondayIndex(t.Weekday())], t.Format("15:04 02/01/2006"))
}
