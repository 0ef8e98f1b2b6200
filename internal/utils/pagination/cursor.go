package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// Cursor is the opaque pagination state we encode/decode.
// ThreadID pins the cursor to one chat thread; Position is the last message
// returned on the previous page.
type Cursor struct {
	ThreadID string `json:"thread_id"`
	Position int    `json:"position"`
}

// Encode converts a Cursor into a Base64 string.
func Encode(c Cursor) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// Decode parses a Base64 string into a Cursor.
// Empty token → empty cursor (first page).
func Decode(token string) (Cursor, error) {
	if token == "" {
		return Cursor{Position: -1}, nil
	}

	b, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrInvalidToken
	}

	var c Cursor
	if err := json.Unmarshal(b, &c); err != nil {
		return Cursor{}, ErrInvalidToken
	}
	return c, nil
}

// ErrInvalidToken is returned for tokens that were not produced by Encode.
var ErrInvalidToken = errors.New("invalid pagination token")

// Trim cuts a "limit+1" query result back to limit and reports whether
// another page exists.
func Trim[T any](items []T, limit int) ([]T, bool) {
	if limit < 0 || len(items) <= limit {
		return items, false
	}
	return items[:limit], true
}
