package models

import (
	"time"

	"gorm.io/datatypes"
)

// ReportKind discriminates the four functionary report tables.
type ReportKind string

const (
	ReportKindAhUm             ReportKind = "ah_um"
	ReportKindGrammarian       ReportKind = "grammarian"
	ReportKindTimer            ReportKind = "timer"
	ReportKindGeneralEvaluator ReportKind = "general_evaluator"
)

// ValidReportKind reports whether the given value names a report table.
func ValidReportKind(value string) bool {
	switch ReportKind(value) {
	case ReportKindAhUm, ReportKindGrammarian, ReportKindTimer, ReportKindGeneralEvaluator:
		return true
	}
	return false
}

// AhUmReport tallies filler words per speaker.
type AhUmReport struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	MeetingID    uint           `gorm:"not null;index" json:"meeting_id"`
	ReporterName string         `gorm:"size:255;not null" json:"reporter_name"`
	Entries      datatypes.JSON `gorm:"type:json" json:"entries"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Meeting      *Meeting       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// GrammarianReport records language observations and the word of the day.
type GrammarianReport struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	MeetingID           uint           `gorm:"not null;index" json:"meeting_id"`
	ReporterName        string         `gorm:"size:255;not null" json:"reporter_name"`
	WordOfDay           string         `gorm:"size:255" json:"word_of_day"`
	WordOfDayDefinition string         `gorm:"type:text" json:"word_of_day_definition"`
	Entries             datatypes.JSON `gorm:"type:json" json:"entries"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	Meeting             *Meeting       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TimerReport logs how long each agenda slot ran.
type TimerReport struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	MeetingID    uint           `gorm:"not null;index" json:"meeting_id"`
	ReporterName string         `gorm:"size:255;not null" json:"reporter_name"`
	MeetingStart string         `gorm:"size:50" json:"meeting_start"`
	MeetingEnd   string         `gorm:"size:50" json:"meeting_end"`
	Entries      datatypes.JSON `gorm:"type:json" json:"entries"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Meeting      *Meeting       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// GeneralEvaluatorReport reviews the evaluators and functionaries themselves
// and summarises the meeting.
type GeneralEvaluatorReport struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	MeetingID            uint           `gorm:"not null;index" json:"meeting_id"`
	ReporterName         string         `gorm:"size:255;not null" json:"reporter_name"`
	EvaluatorFeedbacks   datatypes.JSON `gorm:"type:json" json:"evaluator_feedbacks"`
	FunctionaryFeedbacks datatypes.JSON `gorm:"type:json" json:"functionary_feedbacks"`
	MeetingHighlights    string         `gorm:"type:text" json:"meeting_highlights"`
	MeetingImprovements  string         `gorm:"type:text" json:"meeting_improvements"`
	OverallComments      string         `gorm:"type:text" json:"overall_comments"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	Meeting              *Meeting       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
