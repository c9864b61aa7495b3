package lead

type CreateLeadRequest struct {
	Name            string  `json:"name" binding:"required"`
	Email           string  `json:"email" binding:"omitempty,email"`
	Phone           string  `json:"phone"`
	ServiceInterest string  `json:"service_interest"`
	Source          string  `json:"source"`
	Stage           string  `json:"stage"`
	DealAmount      float64 `json:"deal_amount" binding:"omitempty,gte=0"`
	FollowUpDate    string  `json:"follow_up_date"`
	AssignedTo      string  `json:"assigned_to" binding:"omitempty,uuid"`
	LeadNumber      string  `json:"lead_number"`
}

type UpdateLeadRequest struct {
	Name            string  `json:"name" binding:"required"`
	Email           string  `json:"email" binding:"omitempty,email"`
	Phone           string  `json:"phone"`
	ServiceInterest string  `json:"service_interest"`
	Source          string  `json:"source"`
	Stage           string  `json:"stage"`
	DealAmount      float64 `json:"deal_amount" binding:"omitempty,gte=0"`
	FollowUpDate    string  `json:"follow_up_date"`
	AssignedTo      string  `json:"assigned_to" binding:"omitempty,uuid"`
}

type LeadResponse struct {
	ID              string  `json:"id"`
	LeadNumber      string  `json:"lead_number"`
	Name            string  `json:"name"`
	Email           string  `json:"email,omitempty"`
	Phone           string  `json:"phone,omitempty"`
	PhoneDigits     string  `json:"phone_digits,omitempty"`
	ServiceInterest string  `json:"service_interest,omitempty"`
	Source          string  `json:"source,omitempty"`
	Stage           string  `json:"stage"`
	IsWon           bool    `json:"is_won"`
	DealAmount      float64 `json:"deal_amount"`
	FollowUpDate    string  `json:"follow_up_date,omitempty"`
	AssignedTo      string  `json:"assigned_to,omitempty"`
	Score           int     `json:"score"`
	Probability     int     `json:"probability"`
	Priority        string  `json:"priority"`
	CompanyID       string  `json:"company_id"`
}

type MergeLeadsRequest struct {
	PrimaryID    string   `json:"primary_id" binding:"required,uuid"`
	DuplicateIDs []string `json:"duplicate_ids" binding:"required,min=1,dive,uuid"`
}

// DuplicateGroupResponse.Confidence deterministik dari sinyal yang cocok:
// email 95, phone 90, name 72; +3 per sinyal tambahan, maksimum 99.
type DuplicateGroupResponse struct {
	Leads      []LeadResponse `json:"leads"`
	Signals    []string       `json:"signals"`
	Confidence int            `json:"confidence"`
}

type ScoringConditionPayload struct {
	Field    string  `json:"field" binding:"required"`
	Operator string  `json:"operator" binding:"required,oneof=equals contains greater_than not_null"`
	Value    string  `json:"value"`
	Points   float64 `json:"points" binding:"gte=0"`
}

type UpdateScoringRuleRequest struct {
	Category   string                    `json:"category" binding:"required"`
	Weight     int                       `json:"weight" binding:"gte=0,lte=100"`
	Enabled    bool                      `json:"enabled"`
	Conditions []ScoringConditionPayload `json:"conditions" binding:"required,min=1,dive"`
}

type ScoringRuleResponse struct {
	ID         string                    `json:"id"`
	Category   string                    `json:"category"`
	Weight     int                       `json:"weight"`
	Enabled    bool                      `json:"enabled"`
	Conditions []ScoringConditionPayload `json:"conditions"`
}
