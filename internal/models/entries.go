package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Report entry lists are stored as untyped JSON documents, so older rows may
// carry shapes written by incompatible versions. Every decode below validates
// each entry on its own and drops the ones that fail; a document that is not
// even a JSON array degrades to an empty list.

// TimerStatus values an entry may carry.
const (
	TimerStatusGreen  = "green"
	TimerStatusYellow = "yellow"
	TimerStatusRed    = "red"
	TimerStatusOver   = "over"
)

// ValidTimerStatus reports whether the value is one of the fixed timer lights.
func ValidTimerStatus(value string) bool {
	switch value {
	case TimerStatusGreen, TimerStatusYellow, TimerStatusRed, TimerStatusOver:
		return true
	}
	return false
}

// FunctionaryRoles lists the roles a functionary feedback entry may target.
var FunctionaryRoles = []string{
	"Timer",
	"Grammarian",
	"Ah-Um Counter",
	"Table Topics Master",
	"Toastmaster",
	"Other",
}

// ValidFunctionaryRole reports whether the role belongs to the fixed set.
func ValidFunctionaryRole(role string) bool {
	for _, known := range FunctionaryRoles {
		if role == known {
			return true
		}
	}
	return false
}

// AhUmEntry is one speaker's filler-word tally.
type AhUmEntry struct {
	SpeakerName string `json:"speaker_name"`
	AhUm        int    `json:"ah_um"`
	Like        int    `json:"like"`
	So          int    `json:"so"`
	But         int    `json:"but"`
	Other       int    `json:"other"`
}

// Valid reports whether the entry can be trusted.
func (e AhUmEntry) Valid() bool {
	return e.SpeakerName != "" && e.AhUm >= 0 && e.Like >= 0 && e.So >= 0 && e.But >= 0 && e.Other >= 0
}

// Total sums all filler-word counters.
func (e AhUmEntry) Total() int {
	return e.AhUm + e.Like + e.So + e.But + e.Other
}

// GrammarEntry is one language observation.
type GrammarEntry struct {
	SpeakerName string `json:"speaker_name"`
	Phrase      string `json:"phrase"`
	IsPositive  bool   `json:"is_positive"`
	Comment     string `json:"comment"`
}

// grammarEntryDoc distinguishes a missing is_positive from an explicit false.
type grammarEntryDoc struct {
	SpeakerName string `json:"speaker_name"`
	Phrase      string `json:"phrase"`
	IsPositive  *bool  `json:"is_positive"`
	Comment     string `json:"comment"`
}

// TimerEntry is one timed agenda slot.
type TimerEntry struct {
	Role            string `json:"role"`
	SpeakerName     string `json:"speaker_name"`
	TitleTopic      string `json:"title_topic"`
	DurationSeconds int    `json:"duration_seconds"`
	Status          string `json:"status"`
}

// Valid reports whether the entry can be trusted.
func (e TimerEntry) Valid() bool {
	return e.SpeakerName != "" && e.DurationSeconds >= 0 && ValidTimerStatus(e.Status)
}

// EvaluatorFeedback rates one speech evaluator.
type EvaluatorFeedback struct {
	EvaluatorName    string `json:"evaluator_name"`
	SpeakerEvaluated string `json:"speaker_evaluated"`
	Rating           int    `json:"rating"`
	Strengths        string `json:"strengths"`
	AreasToImprove   string `json:"areas_to_improve"`
	Comments         string `json:"comments"`
}

// Valid reports whether the feedback can be trusted.
func (f EvaluatorFeedback) Valid() bool {
	return f.EvaluatorName != "" && f.Rating >= 1 && f.Rating <= 5
}

// FunctionaryFeedback rates one meeting functionary.
type FunctionaryFeedback struct {
	Role       string `json:"role"`
	PersonName string `json:"person_name"`
	Rating     int    `json:"rating"`
	Feedback   string `json:"feedback"`
}

// Valid reports whether the feedback can be trusted.
func (f FunctionaryFeedback) Valid() bool {
	return ValidFunctionaryRole(f.Role) && f.PersonName != "" && f.Rating >= 1 && f.Rating <= 5
}

// DecodeAhUmEntries parses a stored entry document, keeping valid entries in
// their original order.
func DecodeAhUmEntries(doc datatypes.JSON) []AhUmEntry {
	entries := make([]AhUmEntry, 0)
	for _, raw := range rawEntries(doc) {
		var entry AhUmEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		if entry.Valid() {
			entries = append(entries, entry)
		}
	}
	return entries
}

// DecodeGrammarEntries parses a stored grammar entry document.
func DecodeGrammarEntries(doc datatypes.JSON) []GrammarEntry {
	entries := make([]GrammarEntry, 0)
	for _, raw := range rawEntries(doc) {
		var parsed grammarEntryDoc
		if err := json.Unmarshal(raw, &parsed); err != nil {
			continue
		}
		if parsed.SpeakerName == "" || parsed.Phrase == "" || parsed.IsPositive == nil {
			continue
		}
		entries = append(entries, GrammarEntry{
			SpeakerName: parsed.SpeakerName,
			Phrase:      parsed.Phrase,
			IsPositive:  *parsed.IsPositive,
			Comment:     parsed.Comment,
		})
	}
	return entries
}

// DecodeTimerEntries parses a stored timer entry document.
func DecodeTimerEntries(doc datatypes.JSON) []TimerEntry {
	entries := make([]TimerEntry, 0)
	for _, raw := range rawEntries(doc) {
		var entry TimerEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		if entry.Valid() {
			entries = append(entries, entry)
		}
	}
	return entries
}

// DecodeEvaluatorFeedbacks parses a stored evaluator feedback document.
func DecodeEvaluatorFeedbacks(doc datatypes.JSON) []EvaluatorFeedback {
	feedbacks := make([]EvaluatorFeedback, 0)
	for _, raw := range rawEntries(doc) {
		var feedback EvaluatorFeedback
		if err := json.Unmarshal(raw, &feedback); err != nil {
			continue
		}
		if feedback.Valid() {
			feedbacks = append(feedbacks, feedback)
		}
	}
	return feedbacks
}

// DecodeFunctionaryFeedbacks parses a stored functionary feedback document.
func DecodeFunctionaryFeedbacks(doc datatypes.JSON) []FunctionaryFeedback {
	feedbacks := make([]FunctionaryFeedback, 0)
	for _, raw := range rawEntries(doc) {
		var feedback FunctionaryFeedback
		if err := json.Unmarshal(raw, &feedback); err != nil {
			continue
		}
		if feedback.Valid() {
			feedbacks = append(feedbacks, feedback)
		}
	}
	return feedbacks
}

// EncodeEntries serialises an entry list for storage, writing an empty array
// instead of NULL for nil slices.
func EncodeEntries(entries interface{}) datatypes.JSON {
	data, err := json.Marshal(entries)
	if err != nil || string(data) == "null" {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(data)
}

func rawEntries(doc datatypes.JSON) []json.RawMessage {
	if len(doc) == 0 {
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil
	}
	return raw
}
