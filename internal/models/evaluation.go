package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Evaluation is one speaker assessment submitted by one evaluator. The three
// tag lists are stored as JSON documents and must stay pairwise disjoint.
type Evaluation struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	MeetingID     uint           `gorm:"not null;index" json:"meeting_id"`
	EvaluatorName string         `gorm:"size:255;not null" json:"evaluator_name"`
	SpeakerName   string         `gorm:"size:255;not null;index" json:"speaker_name"`
	SpeechType    string         `gorm:"size:50;not null" json:"speech_type"`
	CommendTags   datatypes.JSON `gorm:"type:json" json:"commend_tags"`
	RecommendTags datatypes.JSON `gorm:"type:json" json:"recommend_tags"`
	ChallengeTags datatypes.JSON `gorm:"type:json" json:"challenge_tags"`
	Comments      string         `gorm:"type:text" json:"comments"`
	CreatedAt     time.Time      `json:"created_at"`
	Meeting       *Meeting       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Commend returns the decoded commend tag list.
func (e Evaluation) Commend() []string { return decodeTagList(e.CommendTags) }

// Recommend returns the decoded recommend tag list.
func (e Evaluation) Recommend() []string { return decodeTagList(e.RecommendTags) }

// Challenge returns the decoded challenge tag list.
func (e Evaluation) Challenge() []string { return decodeTagList(e.ChallengeTags) }

// TagCount is the combined size of the three decoded tag lists.
func (e Evaluation) TagCount() int {
	return len(e.Commend()) + len(e.Recommend()) + len(e.Challenge())
}

// EncodeTagList serialises a tag list for storage. A nil slice is stored as
// an empty array so reads never see a SQL NULL.
func EncodeTagList(tags []string) datatypes.JSON {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(data)
}

// decodeTagList reads a stored tag document. A malformed document degrades to
// an empty list and non-string elements are dropped.
func decodeTagList(doc datatypes.JSON) []string {
	if len(doc) == 0 {
		return []string{}
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(doc, &raw); err != nil {
		return []string{}
	}
	tags := make([]string, 0, len(raw))
	for _, item := range raw {
		var tag string
		if err := json.Unmarshal(item, &tag); err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}
