package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FeedbackAnalysis rows are produced by an external analysis worker and
// joined in read paths; this service never computes sentiment itself.
type FeedbackAnalysis struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FeedbackID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex;column:feedback_id" json:"feedback_id"`
	SentimentScore    float64        `gorm:"not null;column:sentiment_score" json:"sentiment_score"`
	SentimentLabel    string         `gorm:"column:sentiment_label" json:"sentiment_label"`
	ToxicityScore     *float64       `gorm:"column:toxicity_score" json:"toxicity_score,omitempty"`
	KeyPhrases        datatypes.JSON `gorm:"type:jsonb;column:key_phrases" json:"key_phrases,omitempty"`
	CategorizedIssues datatypes.JSON `gorm:"type:jsonb;column:categorized_issues" json:"categorized_issues,omitempty"`
	AISummary         string         `gorm:"column:ai_summary" json:"ai_summary"`
	RecommendedAction string         `gorm:"column:recommended_action" json:"recommended_action"`
	ConfidenceScore   *float64       `gorm:"column:confidence_score" json:"confidence_score,omitempty"`
	AIModel           string         `gorm:"column:ai_model" json:"ai_model"`
	ProcessingTimeMs  int            `gorm:"column:processing_time_ms" json:"processing_time_ms"`
	CreatedAt         time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (FeedbackAnalysis) TableName() string {
	return "feedback_analysis"
}
