package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	redisclient "github.com/edunexa/educenter-backend/internal/clients/redis"
	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/repos"
	"github.com/edunexa/educenter-backend/internal/types"
)

// EvaluateOptions narrows a single evaluation: an optional class filter
// and an optional window override in days. Zero values fall back to the
// stored threshold configuration.
type EvaluateOptions struct {
	ClassID    *uuid.UUID
	PeriodDays int
}

// MonitorSummary is the outcome of a full sweep.
type MonitorSummary struct {
	Checked    int                       `json:"checked"`
	Alerts     int                       `json:"alerts"`
	AlertsList []*types.EvaluationResult `json:"alertsList"`
}

// TeacherFeedbackReview bundles the raw feedback page an admin reviews
// together with the window metrics and the current threshold decision.
type TeacherFeedbackReview struct {
	Feedbacks      []*types.Feedback       `json:"feedbacks"`
	Total          int64                   `json:"total"`
	ThresholdCheck *types.EvaluationResult `json:"thresholdCheck"`
}

type MonitoringService interface {
	EvaluateTeacher(ctx context.Context, teacherID uuid.UUID, opts EvaluateOptions) (*types.EvaluationResult, error)
	TeachersAtRisk(ctx context.Context, page, limit int) ([]*types.EvaluationResult, int64, error)
	MonitorAll(ctx context.Context) (*MonitorSummary, error)
	TeacherFeedbacks(ctx context.Context, teacherID uuid.UUID, filter repos.FeedbackFilter) (*TeacherFeedbackReview, error)
}

type monitoringService struct {
	db              *gorm.DB
	log             *logger.Logger
	teacherRepo     repos.TeacherRepo
	feedbackRepo    repos.FeedbackRepo
	transferRepo    repos.TransferRequestRepo
	settingsService SettingsService
	alertBus        redisclient.AlertBus
}

// NewMonitoringService wires the feedback monitoring core. alertBus may
// be nil; flagged teachers are then only reported, not published.
func NewMonitoringService(
	db *gorm.DB,
	log *logger.Logger,
	teacherRepo repos.TeacherRepo,
	feedbackRepo repos.FeedbackRepo,
	transferRepo repos.TransferRequestRepo,
	settingsService SettingsService,
	alertBus redisclient.AlertBus,
) MonitoringService {
	serviceLog := log.With("service", "MonitoringService")
	return &monitoringService{
		db:              db,
		log:             serviceLog,
		teacherRepo:     teacherRepo,
		feedbackRepo:    feedbackRepo,
		transferRepo:    transferRepo,
		settingsService: settingsService,
		alertBus:        alertBus,
	}
}

// EvaluateTeacher loads the threshold configuration fresh, aggregates
// the teacher's feedback window and applies the threshold checks. It is
// read-only: no transfer record is ever created here, regardless of the
// autoCreateTransfer flag.
func (ms *monitoringService) EvaluateTeacher(ctx context.Context, teacherID uuid.UUID, opts EvaluateOptions) (*types.EvaluationResult, error) {
	if teacherID == uuid.Nil {
		return nil, fmt.Errorf("teacher id is required")
	}
	cfg, err := ms.settingsService.GetTransferThresholds(ctx)
	if err != nil {
		return nil, fmt.Errorf("load thresholds: %w", err)
	}

	periodDays := cfg.PeriodDays
	if opts.PeriodDays > 0 {
		periodDays = opts.PeriodDays
	}
	windowStart := time.Now().UTC().AddDate(0, 0, -periodDays)

	agg, err := ms.feedbackRepo.Aggregate(ctx, nil, teacherID, opts.ClassID, windowStart, cfg.MinNegativeRating)
	if err != nil {
		return nil, fmt.Errorf("aggregate feedback for teacher %s: %w", teacherID, err)
	}

	checks, shouldTransfer, reason := evaluateChecks(*agg, cfg)

	result := &types.EvaluationResult{
		TeacherID:      teacherID,
		ClassID:        opts.ClassID,
		PeriodDays:     periodDays,
		WindowStart:    windowStart,
		Metrics:        *agg,
		Thresholds:     cfg,
		Checks:         checks,
		ShouldTransfer: shouldTransfer,
		Reason:         reason,
	}

	if teachers, err := ms.teacherRepo.GetByIDs(ctx, nil, []uuid.UUID{teacherID}); err == nil && len(teachers) == 1 {
		result.TeacherName = teachers[0].FullName
	}
	return result, nil
}

// TeachersAtRisk sweeps the active roster and returns only teachers
// currently exceeding thresholds, paginated over the flagged list.
func (ms *monitoringService) TeachersAtRisk(ctx context.Context, page, limit int) ([]*types.EvaluationResult, int64, error) {
	flagged, _, err := ms.sweep(ctx)
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(flagged))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	start := (page - 1) * limit
	if start >= len(flagged) {
		return []*types.EvaluationResult{}, total, nil
	}
	end := start + limit
	if end > len(flagged) {
		end = len(flagged)
	}
	return flagged[start:end], total, nil
}

// MonitorAll sweeps every active teacher and, when the stored
// configuration asks for it, opens a de-duplicated pending transfer
// request per flagged teacher. Flagged teachers are also published on
// the alert bus when one is attached.
func (ms *monitoringService) MonitorAll(ctx context.Context) (*MonitorSummary, error) {
	tracer := otel.Tracer("monitoring")
	ctx, span := tracer.Start(ctx, "MonitorAll")
	defer span.End()

	flagged, checked, err := ms.sweep(ctx)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("teachers.checked", checked),
		attribute.Int("teachers.flagged", len(flagged)),
	)

	for _, result := range flagged {
		if result.Thresholds.AutoCreateTransfer {
			if err := ms.autoCreateTransfer(ctx, result); err != nil {
				ms.log.Error("auto transfer request failed", "teacher_id", result.TeacherID, "error", err)
			}
		}
		if ms.alertBus != nil {
			alert := redisclient.TeacherAlert{
				TeacherID:   result.TeacherID,
				TeacherName: result.TeacherName,
				Reason:      result.Reason,
				FlaggedAt:   time.Now().UTC(),
			}
			if err := ms.alertBus.Publish(ctx, alert); err != nil {
				ms.log.Warn("alert publish failed", "teacher_id", result.TeacherID, "error", err)
			}
		}
	}

	return &MonitorSummary{
		Checked:    checked,
		Alerts:     len(flagged),
		AlertsList: flagged,
	}, nil
}

func (ms *monitoringService) TeacherFeedbacks(ctx context.Context, teacherID uuid.UUID, filter repos.FeedbackFilter) (*TeacherFeedbackReview, error) {
	if teacherID == uuid.Nil {
		return nil, fmt.Errorf("teacher id is required")
	}
	filter.TeacherID = &teacherID

	feedbacks, total, err := ms.feedbackRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, fmt.Errorf("list feedback for teacher %s: %w", teacherID, err)
	}
	check, err := ms.EvaluateTeacher(ctx, teacherID, EvaluateOptions{ClassID: filter.ClassID})
	if err != nil {
		return nil, err
	}
	return &TeacherFeedbackReview{
		Feedbacks:      feedbacks,
		Total:          total,
		ThresholdCheck: check,
	}, nil
}

// sweep evaluates every active teacher, skipping and logging individual
// failures so one bad record never aborts the scan.
func (ms *monitoringService) sweep(ctx context.Context) ([]*types.EvaluationResult, int, error) {
	const batchSize = 200

	checked := 0
	var flagged []*types.EvaluationResult
	for page := 1; ; page++ {
		teachers, _, err := ms.teacherRepo.List(ctx, nil, repos.TeacherFilter{
			Status: types.TeacherStatusActive,
			Page:   page,
			Limit:  batchSize,
		})
		if err != nil {
			return nil, 0, fmt.Errorf("list teachers: %w", err)
		}
		if len(teachers) == 0 {
			break
		}
		for _, teacher := range teachers {
			checked++
			result, err := ms.EvaluateTeacher(ctx, teacher.ID, EvaluateOptions{})
			if err != nil {
				ms.log.Warn("teacher evaluation failed, skipping", "teacher_id", teacher.ID, "error", err)
				continue
			}
			result.TeacherName = teacher.FullName
			if result.ShouldTransfer {
				flagged = append(flagged, result)
			}
		}
		if len(teachers) < batchSize {
			break
		}
	}
	return flagged, checked, nil
}

func (ms *monitoringService) autoCreateTransfer(ctx context.Context, result *types.EvaluationResult) error {
	exists, err := ms.transferRepo.ExistsPendingForTeacher(ctx, nil, result.TeacherID)
	if err != nil {
		return fmt.Errorf("check pending transfer: %w", err)
	}
	if exists {
		return nil
	}
	request := &types.TransferRequest{
		ID:        uuid.New(),
		TeacherID: result.TeacherID,
		Reason:    result.Reason,
		Source:    types.TransferSourceAuto,
		Status:    types.TransferStatusPending,
	}
	if _, err := ms.transferRepo.Create(ctx, nil, []*types.TransferRequest{request}); err != nil {
		return fmt.Errorf("create transfer request: %w", err)
	}
	ms.log.Info("auto transfer request created", "teacher_id", result.TeacherID, "reason", result.Reason)
	return nil
}

// evaluateChecks applies the four threshold checks to an aggregated
// window. A teacher with no feedback in the window is never flagged,
// whatever the thresholds say.
func evaluateChecks(metrics types.FeedbackAggregate, cfg types.ThresholdConfig) (types.ThresholdChecks, bool, string) {
	if metrics.TotalFeedbacks == 0 {
		return types.ThresholdChecks{}, false, "no feedback in window"
	}

	checks := types.ThresholdChecks{
		NegativeCountHigh:      metrics.NegativeCount >= int64(cfg.MinNegativeCount),
		NegativePercentageHigh: metrics.NegativePercentage >= cfg.MinNegativePercentage,
		SentimentLow:           metrics.SentimentSamples > 0 && metrics.SentimentAvg < cfg.MinSentimentScore,
	}
	if cfg.MinAvgRating != nil {
		checks.AvgRatingLow = metrics.AvgRating < *cfg.MinAvgRating
	}

	if !checks.Any() {
		return checks, false, "all metrics within thresholds"
	}

	var reasons []string
	if checks.AvgRatingLow {
		reasons = append(reasons, fmt.Sprintf("average rating %.2f below %.2f", metrics.AvgRating, *cfg.MinAvgRating))
	}
	if checks.NegativeCountHigh {
		reasons = append(reasons, fmt.Sprintf("negative feedback count %d reached %d", metrics.NegativeCount, cfg.MinNegativeCount))
	}
	if checks.NegativePercentageHigh {
		reasons = append(reasons, fmt.Sprintf("negative feedback share %.1f%% reached %.1f%%", metrics.NegativePercentage, cfg.MinNegativePercentage))
	}
	if checks.SentimentLow {
		reasons = append(reasons, fmt.Sprintf("average sentiment %.2f below %.2f", metrics.SentimentAvg, cfg.MinSentimentScore))
	}
	return checks, true, strings.Join(reasons, "; ")
}
