package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/gym-buddy/internal/db"
	"github.com/oggyb/gym-buddy/internal/domain"
	"github.com/oggyb/gym-buddy/internal/utils/pagination"
)

// ChatRepository stores chat threads, messages and reaction counters.
type ChatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new repository bound to the given DB connection.
func NewChatRepository(database *gorm.DB) *ChatRepository {
	return &ChatRepository{db: database}
}

// CreateThread inserts a thread. The unique index on match_id keeps threads 1:1 with matches.
func (r *ChatRepository) CreateThread(ctx context.Context, th domain.ChatThread) error {
	row := db.ChatThread{ID: th.ID, MatchID: th.MatchID, CreatedAt: th.CreatedAt}
	return r.db.WithContext(ctx).Create(&row).Error
}

// ThreadByMatch returns the thread of a match, with messages, if any.
func (r *ChatRepository) ThreadByMatch(ctx context.Context, matchID string) (domain.ChatThread, bool, error) {
	var rows []db.ChatThread
	if err := r.db.WithContext(ctx).Where("match_id = ?", matchID).Limit(1).Find(&rows).Error; err != nil {
		return domain.ChatThread{}, false, err
	}
	if len(rows) == 0 {
		return domain.ChatThread{}, false, nil
	}
	th, err := r.withMessages(ctx, rows[0])
	return th, err == nil, err
}

// GetThread loads a thread with all of its messages in append order.
func (r *ChatRepository) GetThread(ctx context.Context, id string) (domain.ChatThread, error) {
	var row db.ChatThread
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ChatThread{}, domain.ErrThreadNotFound
	}
	if err != nil {
		return domain.ChatThread{}, err
	}
	return r.withMessages(ctx, row)
}

func (r *ChatRepository) withMessages(ctx context.Context, row db.ChatThread) (domain.ChatThread, error) {
	var msgs []db.Message
	if err := r.db.WithContext(ctx).
		Where("thread_id = ?", row.ID).
		Order("position ASC").
		Find(&msgs).Error; err != nil {
		return domain.ChatThread{}, err
	}
	out, err := r.attachReactions(ctx, msgs)
	if err != nil {
		return domain.ChatThread{}, err
	}
	return domain.ChatThread{ID: row.ID, MatchID: row.MatchID, CreatedAt: row.CreatedAt, Messages: out}, nil
}

func (r *ChatRepository) attachReactions(ctx context.Context, msgs []db.Message) ([]domain.Message, error) {
	out := make([]domain.Message, 0, len(msgs))
	if len(msgs) == 0 {
		return out, nil
	}

	ids := make([]string, len(msgs))
	for i, m := range msgs {
		ids[i] = m.ID
	}
	var reactions []db.MessageReaction
	if err := r.db.WithContext(ctx).Where("message_id IN ?", ids).Find(&reactions).Error; err != nil {
		return nil, err
	}
	byMsg := make(map[string]map[string]int)
	for _, rc := range reactions {
		if byMsg[rc.MessageID] == nil {
			byMsg[rc.MessageID] = map[string]int{}
		}
		byMsg[rc.MessageID][rc.Symbol] = rc.Count
	}

	for _, m := range msgs {
		out = append(out, m.ToDomain(byMsg[m.ID]))
	}
	return out, nil
}

// AppendMessage stores msg at the next position of its thread.
func (r *ChatRepository) AppendMessage(ctx context.Context, msg domain.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var th db.ChatThread
		err := tx.First(&th, "id = ?", msg.ThreadID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrThreadNotFound
		}
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&db.Message{}).Where("thread_id = ?", msg.ThreadID).Count(&count).Error; err != nil {
			return err
		}

		row := db.Message{
			ID:        msg.ID,
			ThreadID:  msg.ThreadID,
			Position:  int(count),
			SenderID:  msg.SenderID,
			Text:      msg.Text,
			Type:      string(msg.Type),
			CreatedAt: msg.CreatedAt,
		}
		return tx.Create(&row).Error
	})
}

// IncrementReaction bumps symbol on a message of threadID and returns the new count.
//
// Behavior:
//   - Inserts the counter at 1 on first use, otherwise adds 1 (upsert).
//   - Returns domain.ErrMessageNotFound if the message is not in threadID.
func (r *ChatRepository) IncrementReaction(ctx context.Context, threadID, messageID, symbol string) (int, error) {
	var count int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&db.ChatThread{}).Where("id = ?", threadID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrThreadNotFound
		}
		if err := tx.Model(&db.Message{}).Where("id = ? AND thread_id = ?", messageID, threadID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrMessageNotFound
		}

		reaction := db.MessageReaction{MessageID: messageID, Symbol: symbol, Count: 1}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}, {Name: "symbol"}},
			DoUpdates: clause.Assignments(map[string]any{"count": gorm.Expr("message_reactions.count + ?", 1)}),
		}).Create(&reaction).Error; err != nil {
			return err
		}

		var stored db.MessageReaction
		if err := tx.First(&stored, "message_id = ? AND symbol = ?", messageID, symbol).Error; err != nil {
			return err
		}
		count = stored.Count
		return nil
	})
	return count, err
}

// ListMessages pages through a thread in append order.
//
// Behavior:
//   - Returns up to limit messages after the cursor position.
//   - nextToken is nil on the last page.
//   - A token minted for another thread is rejected.
func (r *ChatRepository) ListMessages(ctx context.Context, threadID string, paginationToken *string, limit int) ([]domain.Message, *string, error) {
	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, err
	}
	if cursor.ThreadID != "" && cursor.ThreadID != threadID {
		return nil, nil, pagination.ErrInvalidToken
	}

	var msgs []db.Message
	if err := r.db.WithContext(ctx).
		Where("thread_id = ? AND position > ?", threadID, cursor.Position).
		Order("position ASC").
		Limit(limit + 1).
		Find(&msgs).Error; err != nil {
		return nil, nil, err
	}

	// pagination: build next cursor if needed
	var nextToken *string
	msgs, more := pagination.Trim(msgs, limit)
	if more && len(msgs) > 0 {
		last := msgs[len(msgs)-1]
		token, err := pagination.Encode(pagination.Cursor{ThreadID: threadID, Position: last.Position})
		if err != nil {
			return nil, nil, err
		}
		nextToken = &token
	}

	out, err := r.attachReactions(ctx, msgs)
	if err != nil {
		return nil, nil, err
	}
	return out, nextToken, nil
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
