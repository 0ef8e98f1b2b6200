package lifecycle

import (
	"context"
	"sync"

	"github.com/oggyb/gym-buddy/internal/domain"
)

// MemoryStore keeps the lifecycle state in process memory.
type MemoryStore struct {
	mu        sync.Mutex
	decisions []domain.Decision
	matches   []domain.Match
	threads   []domain.ChatThread
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) AppendDecision(_ context.Context, d domain.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decisions = append(s.decisions, d)
	return nil
}

func (s *MemoryStore) DecisionsBetween(_ context.Context, a, b string) ([]domain.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Decision
	for _, d := range s.decisions {
		if (d.SwiperID == a && d.TargetID == b) || (d.SwiperID == b && d.TargetID == a) {
			out = append(out, d)
		}
	}
	return out, nil
}

// Decisions returns a copy of the whole decision log.
func (s *MemoryStore) Decisions() []domain.Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Decision(nil), s.decisions...)
}

func (s *MemoryStore) CreateMatch(_ context.Context, m domain.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches = append(s.matches, m)
	return nil
}

func (s *MemoryStore) GetMatch(_ context.Context, id string) (domain.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.matches {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.Match{}, domain.ErrMatchNotFound
}

func (s *MemoryStore) ActiveMatchBetween(_ context.Context, a, b string) (domain.Match, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.matches {
		if m.Active && m.Involves(a) && m.Involves(b) {
			return m, true, nil
		}
	}
	return domain.Match{}, false, nil
}

func (s *MemoryStore) ActiveMatchesFor(_ context.Context, userID string) ([]domain.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Match
	for _, m := range s.matches {
		if m.Active && m.Involves(userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *MemoryStore) SetMatchActive(_ context.Context, id string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.matches {
		if s.matches[i].ID == id {
			s.matches[i].Active = active
			return nil
		}
	}
	return domain.ErrMatchNotFound
}

func (s *MemoryStore) CreateThread(_ context.Context, th domain.ChatThread) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if th.Messages == nil {
		th.Messages = []domain.Message{}
	}
	s.threads = append(s.threads, th)
	return nil
}

func (s *MemoryStore) ThreadByMatch(_ context.Context, matchID string) (domain.ChatThread, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, th := range s.threads {
		if th.MatchID == matchID {
			return copyThread(th), true, nil
		}
	}
	return domain.ChatThread{}, false, nil
}

func (s *MemoryStore) GetThread(_ context.Context, id string) (domain.ChatThread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.threadIndex(id); i >= 0 {
		return copyThread(s.threads[i]), nil
	}
	return domain.ChatThread{}, domain.ErrThreadNotFound
}

func (s *MemoryStore) AppendMessage(_ context.Context, msg domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.threadIndex(msg.ThreadID)
	if i < 0 {
		return domain.ErrThreadNotFound
	}
	if msg.Reactions == nil {
		msg.Reactions = map[string]int{}
	}
	s.threads[i].Messages = append(s.threads[i].Messages, msg)
	return nil
}

func (s *MemoryStore) IncrementReaction(_ context.Context, threadID, messageID, symbol string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.threadIndex(threadID)
	if i < 0 {
		return 0, domain.ErrThreadNotFound
	}
	for j := range s.threads[i].Messages {
		msg := &s.threads[i].Messages[j]
		if msg.ID == messageID {
			msg.Reactions[symbol]++
			return msg.Reactions[symbol], nil
		}
	}
	return 0, domain.ErrMessageNotFound
}

func (s *MemoryStore) threadIndex(id string) int {
	for i, th := range s.threads {
		if th.ID == id {
			return i
		}
	}
	return -1
}

// copyThread detaches the returned thread from the store's internal slices.
func copyThread(th domain.ChatThread) domain.ChatThread {
	msgs := make([]domain.Message, len(th.Messages))
	for i, m := range th.Messages {
		r := make(map[string]int, len(m.Reactions))
		for k, v := range m.Reactions {
			r[k] = v
		}
		m.Reactions = r
		msgs[i] = m
	}
	th.Messages = msgs
	return th
}

var _ Store = (*MemoryStore)(nil)
