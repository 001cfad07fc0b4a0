package dto

// SpeakerSummary aggregates all evaluations one speaker received in a meeting.
type SpeakerSummary struct {
	SpeakerName     string `json:"speaker_name"`
	SpeechType      string `json:"speech_type"`
	EvaluationCount int    `json:"evaluation_count"`
	CommendCount    int    `json:"commend_count"`
	RecommendCount  int    `json:"recommend_count"`
	ChallengeCount  int    `json:"challenge_count"`
	TotalTags       int    `json:"total_tags"`
}

// MeetingSummaryResponse is the admin aggregation view for one meeting.
type MeetingSummaryResponse struct {
	Meeting          MeetingResponse  `json:"meeting"`
	TotalEvaluations int              `json:"total_evaluations"`
	Speakers         []SpeakerSummary `json:"speakers"`
	CacheHit         bool             `json:"cache_hit,omitempty"`
}

// MailExportResponse carries a ready-to-compose plain text report.
type MailExportResponse struct {
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	MailtoURL string `json:"mailto_url"`
}

// LoginRequest authenticates an admin.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries a signed admin bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}
