package types

import (
	"time"

	"github.com/google/uuid"
)

// SettingKeyTransferThresholds is the system_setting key holding the
// monitoring threshold configuration.
const SettingKeyTransferThresholds = "feedback_transfer_thresholds"

// ThresholdConfig is the admin-tunable limit set for teacher feedback
// monitoring. It is loaded fresh from the settings store on every
// evaluation; there is no cached copy anywhere.
type ThresholdConfig struct {
	// Ratings at or below this value count as negative feedback.
	MinNegativeRating int `json:"minNegativeRating"`
	// Flag when at least this many negative feedbacks fall in the window.
	MinNegativeCount int `json:"minNegativeCount"`
	// Flag when the negative share (0..100) reaches this value.
	MinNegativePercentage float64 `json:"minNegativePercentage"`
	// Flag when the joined sentiment average drops below this value.
	MinSentimentScore float64 `json:"minSentimentScore"`
	// Trailing window length in days.
	PeriodDays int `json:"periodDays"`
	// When set, the average rating dropping below this floor fires the
	// avgRatingLow check. Absent means the check never fires.
	MinAvgRating *float64 `json:"minAvgRating,omitempty"`
	// Consumed by the transfer workflow, never by the evaluator.
	AutoCreateTransfer bool `json:"autoCreateTransfer"`
}

// FeedbackAggregate is the typed result of the aggregation query over
// the feedback window. Recomputed per call, never persisted.
type FeedbackAggregate struct {
	TotalFeedbacks     int64         `json:"total_feedbacks"`
	AvgRating          float64       `json:"avg_rating"`
	NegativeCount      int64         `json:"negative_count"`
	NegativePercentage float64       `json:"negative_percentage"`
	SentimentAvg       float64       `json:"sentiment_avg"`
	SentimentSamples   int64         `json:"sentiment_samples"`
	PerRatingCounts    map[int]int64 `json:"per_rating_counts"`
}

// ThresholdChecks records which individual limits fired.
type ThresholdChecks struct {
	AvgRatingLow           bool `json:"avgRatingLow"`
	NegativeCountHigh      bool `json:"negativeCountHigh"`
	NegativePercentageHigh bool `json:"negativePercentageHigh"`
	SentimentLow           bool `json:"sentimentLow"`
}

func (tc ThresholdChecks) Any() bool {
	return tc.AvgRatingLow || tc.NegativeCountHigh || tc.NegativePercentageHigh || tc.SentimentLow
}

// EvaluationResult is the full outcome of one teacher evaluation.
type EvaluationResult struct {
	TeacherID      uuid.UUID         `json:"teacher_id"`
	TeacherName    string            `json:"teacher_name,omitempty"`
	ClassID        *uuid.UUID        `json:"class_id,omitempty"`
	PeriodDays     int               `json:"period_days"`
	WindowStart    time.Time         `json:"window_start"`
	Metrics        FeedbackAggregate `json:"metrics"`
	Thresholds     ThresholdConfig   `json:"thresholds"`
	Checks         ThresholdChecks   `json:"checks"`
	ShouldTransfer bool              `json:"should_transfer"`
	Reason         string            `json:"reason"`
}
