package models

import "time"

// Meeting is the root aggregate every evaluation and report is scoped to.
// Meetings are immutable once created; there is no update path.
type Meeting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Date      time.Time `gorm:"type:date;not null;index" json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// SpeechType values accepted on evaluations.
const (
	SpeechTypePrepared    = "prepared"
	SpeechTypeTableTopics = "table_topics"
)

// SpeechTypeLabels maps stored speech types to their display names.
var SpeechTypeLabels = map[string]string{
	SpeechTypePrepared:    "Prepared Speech",
	SpeechTypeTableTopics: "Table Topics",
}

// ValidSpeechType reports whether the given value is a known speech type.
func ValidSpeechType(value string) bool {
	_, ok := SpeechTypeLabels[value]
	return ok
}
