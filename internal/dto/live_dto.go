package dto

// Live feed event types pushed to subscribed dashboards.
const (
	LiveEventEvaluationCreated = "evaluation.created"
	LiveEventReportSaved       = "report.saved"
	LiveEventReportDeleted     = "report.deleted"
)

// LiveEvent is one message on a meeting's live feed.
type LiveEvent struct {
	Type      string      `json:"type"`
	MeetingID uint        `json:"meeting_id"`
	Payload   interface{} `json:"payload,omitempty"`
}
