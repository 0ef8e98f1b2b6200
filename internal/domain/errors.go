package domain

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrFacilityNotFound = errors.New("facility not found")
	ErrMatchNotFound    = errors.New("match not found")
	ErrThreadNotFound   = errors.New("chat thread not found")
	ErrMessageNotFound  = errors.New("message not found")

	ErrSelfDecision    = errors.New("cannot decide on yourself")
	ErrInvalidDecision = errors.New("decision must be like or pass")
	ErrNotParticipant  = errors.New("user is not part of this match")
	ErrMatchInactive   = errors.New("match is no longer active")
	ErrEmptyMessage    = errors.New("message text is empty")
	ErrInvalidReaction = errors.New("reaction symbol is empty")
)
