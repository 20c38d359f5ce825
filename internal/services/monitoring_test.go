package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/repos"
	"github.com/edunexa/educenter-backend/internal/types"
)

func floatPtr(f float64) *float64 { return &f }

func baseThresholds() types.ThresholdConfig {
	return types.ThresholdConfig{
		MinNegativeRating:     2,
		MinNegativeCount:      3,
		MinNegativePercentage: 30,
		MinSentimentScore:     -0.2,
		PeriodDays:            30,
	}
}

func TestEvaluateChecks(t *testing.T) {
	tests := []struct {
		name           string
		metrics        types.FeedbackAggregate
		cfg            types.ThresholdConfig
		wantChecks     types.ThresholdChecks
		wantTransfer   bool
		wantReasonPart string
	}{
		{
			name:           "no feedback never flags",
			metrics:        types.FeedbackAggregate{},
			cfg:            baseThresholds(),
			wantChecks:     types.ThresholdChecks{},
			wantTransfer:   false,
			wantReasonPart: "no feedback in window",
		},
		{
			// Ratings 1,1,2,5,5 with negatives at <=2: three negatives
			// out of five is both a count and a percentage breach.
			name: "negative count and share fire together",
			metrics: types.FeedbackAggregate{
				TotalFeedbacks:     5,
				AvgRating:          2.8,
				NegativeCount:      3,
				NegativePercentage: 60,
			},
			cfg: baseThresholds(),
			wantChecks: types.ThresholdChecks{
				NegativeCountHigh:      true,
				NegativePercentageHigh: true,
			},
			wantTransfer:   true,
			wantReasonPart: "negative feedback count 3",
		},
		{
			name: "all metrics within thresholds",
			metrics: types.FeedbackAggregate{
				TotalFeedbacks:     4,
				AvgRating:          4.5,
				NegativeCount:      1,
				NegativePercentage: 25,
				SentimentAvg:       0.6,
				SentimentSamples:   4,
			},
			cfg:            baseThresholds(),
			wantChecks:     types.ThresholdChecks{},
			wantTransfer:   false,
			wantReasonPart: "all metrics within thresholds",
		},
		{
			name: "sentiment only fires with samples",
			metrics: types.FeedbackAggregate{
				TotalFeedbacks:   3,
				AvgRating:        3,
				SentimentAvg:     -0.5,
				SentimentSamples: 2,
			},
			cfg:            baseThresholds(),
			wantChecks:     types.ThresholdChecks{SentimentLow: true},
			wantTransfer:   true,
			wantReasonPart: "average sentiment",
		},
		{
			name: "bad sentiment without samples is ignored",
			metrics: types.FeedbackAggregate{
				TotalFeedbacks: 3,
				AvgRating:      3,
				SentimentAvg:   -0.5,
			},
			cfg:          baseThresholds(),
			wantChecks:   types.ThresholdChecks{},
			wantTransfer: false,
		},
		{
			name: "avg rating floor off by default",
			metrics: types.FeedbackAggregate{
				TotalFeedbacks: 2,
				AvgRating:      1.0,
			},
			cfg:          baseThresholds(),
			wantChecks:   types.ThresholdChecks{},
			wantTransfer: false,
		},
		{
			name: "avg rating floor fires when configured",
			metrics: types.FeedbackAggregate{
				TotalFeedbacks: 2,
				AvgRating:      1.0,
			},
			cfg: func() types.ThresholdConfig {
				cfg := baseThresholds()
				cfg.MinAvgRating = floatPtr(2.5)
				return cfg
			}(),
			wantChecks:     types.ThresholdChecks{AvgRatingLow: true},
			wantTransfer:   true,
			wantReasonPart: "average rating",
		},
		{
			name: "boundary values count as breaches",
			metrics: types.FeedbackAggregate{
				TotalFeedbacks:     10,
				AvgRating:          3,
				NegativeCount:      3,
				NegativePercentage: 30,
			},
			cfg: baseThresholds(),
			wantChecks: types.ThresholdChecks{
				NegativeCountHigh:      true,
				NegativePercentageHigh: true,
			},
			wantTransfer: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			checks, shouldTransfer, reason := evaluateChecks(tc.metrics, tc.cfg)
			if checks != tc.wantChecks {
				t.Errorf("checks = %+v, want %+v", checks, tc.wantChecks)
			}
			if shouldTransfer != tc.wantTransfer {
				t.Errorf("shouldTransfer = %v, want %v", shouldTransfer, tc.wantTransfer)
			}
			if tc.wantReasonPart != "" && !strings.Contains(reason, tc.wantReasonPart) {
				t.Errorf("reason %q does not mention %q", reason, tc.wantReasonPart)
			}
		})
	}
}

func TestEvaluateChecksMonotonic(t *testing.T) {
	// Loosening a threshold must never flag a teacher that strict
	// thresholds let pass.
	metrics := types.FeedbackAggregate{
		TotalFeedbacks:     10,
		AvgRating:          3.4,
		NegativeCount:      2,
		NegativePercentage: 20,
		SentimentAvg:       0.1,
		SentimentSamples:   10,
	}
	strict := baseThresholds()
	_, strictFlag, _ := evaluateChecks(metrics, strict)

	loose := strict
	loose.MinNegativeCount = 5
	loose.MinNegativePercentage = 50
	loose.MinSentimentScore = -0.9
	_, looseFlag, _ := evaluateChecks(metrics, loose)

	if !strictFlag && looseFlag {
		t.Fatalf("loosening thresholds flagged a previously passing teacher")
	}
}

// --- sweep behavior with fake repos ---

type fakeTeacherRepo struct {
	teachers []*types.Teacher
}

func (f *fakeTeacherRepo) Create(ctx context.Context, tx *gorm.DB, teachers []*types.Teacher) ([]*types.Teacher, error) {
	return teachers, nil
}

func (f *fakeTeacherRepo) GetByIDs(ctx context.Context, tx *gorm.DB, teacherIDs []uuid.UUID) ([]*types.Teacher, error) {
	var out []*types.Teacher
	for _, teacher := range f.teachers {
		for _, id := range teacherIDs {
			if teacher.ID == id {
				out = append(out, teacher)
			}
		}
	}
	return out, nil
}

func (f *fakeTeacherRepo) List(ctx context.Context, tx *gorm.DB, filter repos.TeacherFilter) ([]*types.Teacher, int64, error) {
	if filter.Page > 1 {
		return nil, int64(len(f.teachers)), nil
	}
	return f.teachers, int64(len(f.teachers)), nil
}

func (f *fakeTeacherRepo) Update(ctx context.Context, tx *gorm.DB, teacher *types.Teacher) error {
	return nil
}

func (f *fakeTeacherRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, teacherIDs []uuid.UUID) error {
	return nil
}

type fakeFeedbackRepo struct {
	aggregates map[uuid.UUID]*types.FeedbackAggregate
	failFor    map[uuid.UUID]bool
}

func (f *fakeFeedbackRepo) Create(ctx context.Context, tx *gorm.DB, feedbacks []*types.Feedback) ([]*types.Feedback, error) {
	return feedbacks, nil
}

func (f *fakeFeedbackRepo) GetByIDs(ctx context.Context, tx *gorm.DB, feedbackIDs []uuid.UUID) ([]*types.Feedback, error) {
	return nil, nil
}

func (f *fakeFeedbackRepo) List(ctx context.Context, tx *gorm.DB, filter repos.FeedbackFilter) ([]*types.Feedback, int64, error) {
	return nil, 0, nil
}

func (f *fakeFeedbackRepo) Aggregate(ctx context.Context, tx *gorm.DB, teacherID uuid.UUID, classID *uuid.UUID, since time.Time, negativeCeiling int) (*types.FeedbackAggregate, error) {
	if f.failFor[teacherID] {
		return nil, fmt.Errorf("synthetic aggregate failure")
	}
	if agg, ok := f.aggregates[teacherID]; ok {
		return agg, nil
	}
	return &types.FeedbackAggregate{}, nil
}

type fakeTransferRepo struct {
	created []*types.TransferRequest
	pending map[uuid.UUID]bool
}

func (f *fakeTransferRepo) Create(ctx context.Context, tx *gorm.DB, requests []*types.TransferRequest) ([]*types.TransferRequest, error) {
	f.created = append(f.created, requests...)
	return requests, nil
}

func (f *fakeTransferRepo) GetByIDs(ctx context.Context, tx *gorm.DB, requestIDs []uuid.UUID) ([]*types.TransferRequest, error) {
	return nil, nil
}

func (f *fakeTransferRepo) List(ctx context.Context, tx *gorm.DB, filter repos.TransferRequestFilter) ([]*types.TransferRequest, int64, error) {
	return nil, 0, nil
}

func (f *fakeTransferRepo) ExistsPendingForTeacher(ctx context.Context, tx *gorm.DB, teacherID uuid.UUID) (bool, error) {
	return f.pending[teacherID], nil
}

func (f *fakeTransferRepo) Decide(ctx context.Context, tx *gorm.DB, requestID uuid.UUID, status string, decidedBy uuid.UUID, note string) error {
	return nil
}

type fakeSettingsService struct {
	cfg types.ThresholdConfig
}

func (f *fakeSettingsService) GetTransferThresholds(ctx context.Context) (types.ThresholdConfig, error) {
	return f.cfg, nil
}

func (f *fakeSettingsService) UpdateTransferThresholds(ctx context.Context, cfg types.ThresholdConfig, updatedBy uuid.UUID) (types.ThresholdConfig, error) {
	f.cfg = cfg
	return cfg, nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func TestMonitorAllSkipsFailingTeacher(t *testing.T) {
	good := &types.Teacher{ID: uuid.New(), FullName: "Good Teacher", Status: types.TeacherStatusActive}
	broken := &types.Teacher{ID: uuid.New(), FullName: "Broken Teacher", Status: types.TeacherStatusActive}
	flaggedTeacher := &types.Teacher{ID: uuid.New(), FullName: "Flagged Teacher", Status: types.TeacherStatusActive}

	feedbackRepo := &fakeFeedbackRepo{
		aggregates: map[uuid.UUID]*types.FeedbackAggregate{
			good.ID: {TotalFeedbacks: 4, AvgRating: 4.8},
			flaggedTeacher.ID: {
				TotalFeedbacks:     5,
				AvgRating:          1.8,
				NegativeCount:      4,
				NegativePercentage: 80,
			},
		},
		failFor: map[uuid.UUID]bool{broken.ID: true},
	}
	transferRepo := &fakeTransferRepo{pending: map[uuid.UUID]bool{}}

	svc := NewMonitoringService(
		nil,
		testLogger(t),
		&fakeTeacherRepo{teachers: []*types.Teacher{good, broken, flaggedTeacher}},
		feedbackRepo,
		transferRepo,
		&fakeSettingsService{cfg: baseThresholds()},
		nil,
	)

	summary, err := svc.MonitorAll(context.Background())
	if err != nil {
		t.Fatalf("MonitorAll: %v", err)
	}
	if summary.Checked != 3 {
		t.Errorf("Checked = %d, want 3", summary.Checked)
	}
	if summary.Alerts != 1 {
		t.Errorf("Alerts = %d, want 1", summary.Alerts)
	}
	if len(summary.AlertsList) != 1 || summary.AlertsList[0].TeacherID != flaggedTeacher.ID {
		t.Fatalf("AlertsList does not contain the flagged teacher: %+v", summary.AlertsList)
	}
	if summary.AlertsList[0].TeacherName != "Flagged Teacher" {
		t.Errorf("TeacherName = %q", summary.AlertsList[0].TeacherName)
	}
	if len(transferRepo.created) != 0 {
		t.Errorf("transfer requests created with autoCreateTransfer off: %d", len(transferRepo.created))
	}
}

func TestMonitorAllAutoCreatesTransfer(t *testing.T) {
	flagged := &types.Teacher{ID: uuid.New(), FullName: "Flagged", Status: types.TeacherStatusActive}
	alreadyPending := &types.Teacher{ID: uuid.New(), FullName: "Pending", Status: types.TeacherStatusActive}

	badWindow := &types.FeedbackAggregate{
		TotalFeedbacks:     6,
		AvgRating:          1.5,
		NegativeCount:      5,
		NegativePercentage: 83.3,
	}
	feedbackRepo := &fakeFeedbackRepo{
		aggregates: map[uuid.UUID]*types.FeedbackAggregate{
			flagged.ID:        badWindow,
			alreadyPending.ID: badWindow,
		},
	}
	transferRepo := &fakeTransferRepo{pending: map[uuid.UUID]bool{alreadyPending.ID: true}}

	cfg := baseThresholds()
	cfg.AutoCreateTransfer = true

	svc := NewMonitoringService(
		nil,
		testLogger(t),
		&fakeTeacherRepo{teachers: []*types.Teacher{flagged, alreadyPending}},
		feedbackRepo,
		transferRepo,
		&fakeSettingsService{cfg: cfg},
		nil,
	)

	summary, err := svc.MonitorAll(context.Background())
	if err != nil {
		t.Fatalf("MonitorAll: %v", err)
	}
	if summary.Alerts != 2 {
		t.Errorf("Alerts = %d, want 2", summary.Alerts)
	}
	// A teacher with a pending request is still reported but not
	// duplicated.
	if len(transferRepo.created) != 1 {
		t.Fatalf("created %d transfer requests, want 1", len(transferRepo.created))
	}
	request := transferRepo.created[0]
	if request.TeacherID != flagged.ID {
		t.Errorf("transfer request teacher = %s, want %s", request.TeacherID, flagged.ID)
	}
	if request.Source != types.TransferSourceAuto {
		t.Errorf("transfer request source = %q, want auto", request.Source)
	}
	if request.Status != types.TransferStatusPending {
		t.Errorf("transfer request status = %q, want pending", request.Status)
	}
	if request.Reason == "" {
		t.Error("transfer request has empty reason")
	}
}

func TestTeachersAtRiskPagination(t *testing.T) {
	var teachers []*types.Teacher
	aggregates := map[uuid.UUID]*types.FeedbackAggregate{}
	for i := 0; i < 5; i++ {
		teacher := &types.Teacher{ID: uuid.New(), FullName: fmt.Sprintf("Teacher %d", i), Status: types.TeacherStatusActive}
		teachers = append(teachers, teacher)
		aggregates[teacher.ID] = &types.FeedbackAggregate{
			TotalFeedbacks:     4,
			AvgRating:          1.5,
			NegativeCount:      4,
			NegativePercentage: 100,
		}
	}

	svc := NewMonitoringService(
		nil,
		testLogger(t),
		&fakeTeacherRepo{teachers: teachers},
		&fakeFeedbackRepo{aggregates: aggregates},
		&fakeTransferRepo{pending: map[uuid.UUID]bool{}},
		&fakeSettingsService{cfg: baseThresholds()},
		nil,
	)

	pageOne, total, err := svc.TeachersAtRisk(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("TeachersAtRisk: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(pageOne) != 2 {
		t.Errorf("page one has %d entries, want 2", len(pageOne))
	}

	pageThree, _, err := svc.TeachersAtRisk(context.Background(), 3, 2)
	if err != nil {
		t.Fatalf("TeachersAtRisk page 3: %v", err)
	}
	if len(pageThree) != 1 {
		t.Errorf("page three has %d entries, want 1", len(pageThree))
	}

	empty, _, err := svc.TeachersAtRisk(context.Background(), 9, 2)
	if err != nil {
		t.Fatalf("TeachersAtRisk past end: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("page past the end has %d entries, want 0", len(empty))
	}
}
