package buddy

type userRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type recommendationsRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Limit  int    `json:"limit" validate:"min=0,max=100"`
}

type decisionRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	TargetID string `json:"target_id" validate:"required,nefield=UserID"`
	Value    string `json:"value" validate:"required,oneof=like pass"`
}

type searchRequest struct {
	UserID         string `json:"user_id" validate:"required"`
	Level          *int   `json:"level" validate:"omitempty,min=0,max=3"`
	Weekday        *int   `json:"weekday" validate:"omitempty,min=0,max=6"`
	ChainID        string `json:"chain_id"`
	RegionCode     string `json:"region_code"`
	DepartmentCode string `json:"department_code"`
	City           string `json:"city"`
	Text           string `json:"text" validate:"max=100"`
}

type updateProfileRequest struct {
	UserID           string    `json:"user_id" validate:"required"`
	Name             *string   `json:"name" validate:"omitempty,max=128"`
	PhotoURL         *string   `json:"photo_url" validate:"omitempty,max=512"`
	Bio              *string   `json:"bio" validate:"omitempty,max=1024"`
	BirthDate        *string   `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Level            *int      `json:"level" validate:"omitempty,min=0,max=3"`
	Goal             *string   `json:"goal" validate:"omitempty,max=64"`
	AvailabilityMask *string   `json:"availability_mask" validate:"omitempty,max=64"`
	RegionCode       *string   `json:"region_code" validate:"omitempty,max=16"`
	DepartmentCode   *string   `json:"department_code" validate:"omitempty,max=16"`
	City             *string   `json:"city" validate:"omitempty,max=128"`
	Favorites        *[]string `json:"favorites" validate:"omitempty,max=20"`
}

type matchRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	MatchID string `json:"match_id" validate:"required"`
}

type openChatRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	MatchID   string `json:"match_id"`
	PartnerID string `json:"partner_id" validate:"required_without=MatchID"`
}

type sendMessageRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	ThreadID string `json:"thread_id" validate:"required"`
	Text     string `json:"text" validate:"max=2000"`
}

type reactRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	ThreadID  string `json:"thread_id" validate:"required"`
	MessageID string `json:"message_id" validate:"required"`
	Symbol    string `json:"symbol" validate:"max=32"`
}

type listMessagesRequest struct {
	UserID    string  `json:"user_id" validate:"required"`
	ThreadID  string  `json:"thread_id" validate:"required"`
	PageToken *string `json:"page_token"`
	Limit     int     `json:"limit" validate:"min=0,max=100"`
}

type sessionsRequest struct {
	UserID      string   `json:"user_id" validate:"required"`
	PartnerID   string   `json:"partner_id" validate:"required,nefield=UserID"`
	FacilityIDs []string `json:"facility_ids"`
	HorizonDays int      `json:"horizon_days" validate:"min=0,max=60"`
	MaxResults  int      `json:"max_results" validate:"min=0,max=50"`
}

type proposeRequest struct {
	UserID     string `json:"user_id" validate:"required"`
	ThreadID   string `json:"thread_id" validate:"required"`
	FacilityID string `json:"facility_id" validate:"required"`
	Start      string `json:"start" validate:"required"`
}

type exportRequest struct {
	UserID     string `json:"user_id" validate:"required"`
	PartnerID  string `json:"partner_id" validate:"required"`
	FacilityID string `json:"facility_id" validate:"required"`
	Start      string `json:"start" validate:"required"`
}
