package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/repos"
	"github.com/edunexa/educenter-backend/internal/requestdata"
	"github.com/edunexa/educenter-backend/internal/types"
)

type FeedbackService interface {
	Submit(ctx context.Context, feedback *types.Feedback) (*types.Feedback, error)
	List(ctx context.Context, filter repos.FeedbackFilter) ([]*types.Feedback, int64, error)
	IngestAnalysis(ctx context.Context, analysis *types.FeedbackAnalysis) error
}

type feedbackService struct {
	db           *gorm.DB
	log          *logger.Logger
	feedbackRepo repos.FeedbackRepo
	analysisRepo repos.FeedbackAnalysisRepo
	teacherRepo  repos.TeacherRepo
	parentRepo   repos.ParentRepo
	studentRepo  repos.StudentRepo
}

func NewFeedbackService(
	db *gorm.DB,
	log *logger.Logger,
	feedbackRepo repos.FeedbackRepo,
	analysisRepo repos.FeedbackAnalysisRepo,
	teacherRepo repos.TeacherRepo,
	parentRepo repos.ParentRepo,
	studentRepo repos.StudentRepo,
) FeedbackService {
	serviceLog := log.With("service", "FeedbackService")
	return &feedbackService{
		db:           db,
		log:          serviceLog,
		feedbackRepo: feedbackRepo,
		analysisRepo: analysisRepo,
		teacherRepo:  teacherRepo,
		parentRepo:   parentRepo,
		studentRepo:  studentRepo,
	}
}

// Submit records a parent's rating of a teacher. The parent identity
// always comes from the authenticated context; the isAnonymous flag
// only controls whether it is shown to staff, never whether it is
// stored.
func (fs *feedbackService) Submit(ctx context.Context, feedback *types.Feedback) (*types.Feedback, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("no authenticated user in context")
	}
	parent, pErr := fs.parentRepo.GetByUserID(ctx, nil, rd.UserID)
	if pErr != nil {
		return nil, fmt.Errorf("load parent profile: %w", pErr)
	}
	if parent == nil {
		return nil, fmt.Errorf("caller has no parent profile")
	}
	feedback.ParentID = parent.ID

	if feedback.Rating < 1 || feedback.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}
	if feedback.TeacherID == uuid.Nil {
		return nil, fmt.Errorf("teacher id is required")
	}
	teachers, tErr := fs.teacherRepo.GetByIDs(ctx, nil, []uuid.UUID{feedback.TeacherID})
	if tErr != nil {
		return nil, fmt.Errorf("load teacher: %w", tErr)
	}
	if len(teachers) == 0 {
		return nil, fmt.Errorf("teacher %s not found", feedback.TeacherID)
	}
	if feedback.StudentID != nil {
		students, sErr := fs.studentRepo.GetByIDs(ctx, nil, []uuid.UUID{*feedback.StudentID})
		if sErr != nil {
			return nil, fmt.Errorf("load student: %w", sErr)
		}
		if len(students) == 0 || students[0].ParentID != parent.ID {
			return nil, fmt.Errorf("student does not belong to the calling parent")
		}
	}

	feedback.ID = uuid.New()
	feedback.Status = types.FeedbackStatusActive
	if _, err := fs.feedbackRepo.Create(ctx, nil, []*types.Feedback{feedback}); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	return feedback, nil
}

func (fs *feedbackService) List(ctx context.Context, filter repos.FeedbackFilter) ([]*types.Feedback, int64, error) {
	return fs.feedbackRepo.List(ctx, nil, filter)
}

// IngestAnalysis stores or replaces the sentiment analysis attached to
// a feedback record. Re-ingesting overwrites the previous result.
func (fs *feedbackService) IngestAnalysis(ctx context.Context, analysis *types.FeedbackAnalysis) error {
	if analysis.FeedbackID == uuid.Nil {
		return fmt.Errorf("feedback id is required")
	}
	if analysis.SentimentScore < -1 || analysis.SentimentScore > 1 {
		return fmt.Errorf("sentiment score must be within [-1, 1]")
	}
	feedbacks, fErr := fs.feedbackRepo.GetByIDs(ctx, nil, []uuid.UUID{analysis.FeedbackID})
	if fErr != nil {
		return fmt.Errorf("load feedback: %w", fErr)
	}
	if len(feedbacks) == 0 {
		return fmt.Errorf("feedback %s not found", analysis.FeedbackID)
	}
	if analysis.ID == uuid.Nil {
		analysis.ID = uuid.New()
	}
	if err := fs.analysisRepo.Upsert(ctx, nil, analysis); err != nil {
		return fmt.Errorf("upsert feedback analysis: %w", err)
	}
	return nil
}
