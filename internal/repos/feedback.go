package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/types"
)

type FeedbackFilter struct {
	TeacherID *uuid.UUID
	ClassID   *uuid.UUID
	ParentID  *uuid.UUID
	Since     *time.Time
	MaxRating int
	Page      int
	Limit     int
}

type FeedbackRepo interface {
	Create(ctx context.Context, tx *gorm.DB, feedbacks []*types.Feedback) ([]*types.Feedback, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, feedbackIDs []uuid.UUID) ([]*types.Feedback, error)
	List(ctx context.Context, tx *gorm.DB, filter FeedbackFilter) ([]*types.Feedback, int64, error)
	Aggregate(ctx context.Context, tx *gorm.DB, teacherID uuid.UUID, classID *uuid.UUID, since time.Time, negativeCeiling int) (*types.FeedbackAggregate, error)
}

type feedbackRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFeedbackRepo(db *gorm.DB, baseLog *logger.Logger) FeedbackRepo {
	repoLog := baseLog.With("repo", "FeedbackRepo")
	return &feedbackRepo{db: db, log: repoLog}
}

func (fr *feedbackRepo) Create(ctx context.Context, tx *gorm.DB, feedbacks []*types.Feedback) ([]*types.Feedback, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	if len(feedbacks) == 0 {
		return []*types.Feedback{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&feedbacks).Error; err != nil {
		return nil, err
	}
	return feedbacks, nil
}

func (fr *feedbackRepo) GetByIDs(ctx context.Context, tx *gorm.DB, feedbackIDs []uuid.UUID) ([]*types.Feedback, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var results []*types.Feedback
	if len(feedbackIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", feedbackIDs).
		Preload("Analysis").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *feedbackRepo) List(ctx context.Context, tx *gorm.DB, filter FeedbackFilter) ([]*types.Feedback, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	q := transaction.WithContext(ctx).Model(&types.Feedback{})
	if filter.TeacherID != nil {
		q = q.Where("teacher_id = ?", *filter.TeacherID)
	}
	if filter.ClassID != nil {
		q = q.Where("class_id = ?", *filter.ClassID)
	}
	if filter.ParentID != nil {
		q = q.Where("parent_id = ?", *filter.ParentID)
	}
	if filter.Since != nil {
		q = q.Where("created_at >= ?", *filter.Since)
	}
	if filter.MaxRating > 0 {
		q = q.Where("rating <= ?", filter.MaxRating)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	var results []*types.Feedback
	if err := q.
		Preload("Analysis").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// Aggregate computes the monitoring window metrics in three bounded
// queries: totals, per-rating histogram, and the sentiment average over
// the feedback_analysis join. Rows without an analysis row count toward
// the totals but not toward the sentiment average. An unknown teacher
// simply produces an all-zero aggregate.
func (fr *feedbackRepo) Aggregate(ctx context.Context, tx *gorm.DB, teacherID uuid.UUID, classID *uuid.UUID, since time.Time, negativeCeiling int) (*types.FeedbackAggregate, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	base := func() *gorm.DB {
		q := transaction.WithContext(ctx).
			Model(&types.Feedback{}).
			Where("feedback.teacher_id = ? AND feedback.created_at >= ?", teacherID, since)
		if classID != nil {
			q = q.Where("feedback.class_id = ?", *classID)
		}
		return q
	}

	var totals struct {
		Total         int64
		AvgRating     float64
		NegativeCount int64
	}
	if err := base().
		Select(
			"COUNT(*) AS total, "+
				"COALESCE(AVG(rating), 0) AS avg_rating, "+
				"COUNT(*) FILTER (WHERE rating <= ?) AS negative_count",
			negativeCeiling,
		).
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	type ratingRow struct {
		Rating int
		Count  int64
	}
	var histogram []ratingRow
	if err := base().
		Select("rating, COUNT(*) AS count").
		Group("rating").
		Scan(&histogram).Error; err != nil {
		return nil, err
	}

	var sentiment struct {
		Avg     float64
		Samples int64
	}
	if err := base().
		Joins("JOIN feedback_analysis ON feedback_analysis.feedback_id = feedback.id").
		Select("COALESCE(AVG(feedback_analysis.sentiment_score), 0) AS avg, COUNT(*) AS samples").
		Scan(&sentiment).Error; err != nil {
		return nil, err
	}

	agg := &types.FeedbackAggregate{
		TotalFeedbacks:   totals.Total,
		AvgRating:        totals.AvgRating,
		NegativeCount:    totals.NegativeCount,
		SentimentAvg:     sentiment.Avg,
		SentimentSamples: sentiment.Samples,
		PerRatingCounts:  map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	for _, row := range histogram {
		if row.Rating >= 1 && row.Rating <= 5 {
			agg.PerRatingCounts[row.Rating] = row.Count
		}
	}
	if agg.TotalFeedbacks > 0 {
		agg.NegativePercentage = float64(agg.NegativeCount) / float64(agg.TotalFeedbacks) * 100
	}
	return agg, nil
}
