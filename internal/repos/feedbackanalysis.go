package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/types"
)

type FeedbackAnalysisRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, analysis *types.FeedbackAnalysis) error
	GetByFeedbackIDs(ctx context.Context, tx *gorm.DB, feedbackIDs []uuid.UUID) ([]*types.FeedbackAnalysis, error)
}

type feedbackAnalysisRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFeedbackAnalysisRepo(db *gorm.DB, baseLog *logger.Logger) FeedbackAnalysisRepo {
	repoLog := baseLog.With("repo", "FeedbackAnalysisRepo")
	return &feedbackAnalysisRepo{db: db, log: repoLog}
}

func (far *feedbackAnalysisRepo) Upsert(ctx context.Context, tx *gorm.DB, analysis *types.FeedbackAnalysis) error {
	transaction := tx
	if transaction == nil {
		transaction = far.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "feedback_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"sentiment_score", "sentiment_label", "toxicity_score",
				"key_phrases", "categorized_issues", "ai_summary",
				"recommended_action", "confidence_score", "ai_model",
				"processing_time_ms", "updated_at",
			}),
		}).
		Create(analysis).Error
}

func (far *feedbackAnalysisRepo) GetByFeedbackIDs(ctx context.Context, tx *gorm.DB, feedbackIDs []uuid.UUID) ([]*types.FeedbackAnalysis, error) {
	transaction := tx
	if transaction == nil {
		transaction = far.db
	}
	var results []*types.FeedbackAnalysis
	if len(feedbackIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("feedback_id IN ?", feedbackIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
