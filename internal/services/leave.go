package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/repos"
	"github.com/edunexa/educenter-backend/internal/requestdata"
	"github.com/edunexa/educenter-backend/internal/types"
)

type LeaveService interface {
	Submit(ctx context.Context, studentID, sessionID uuid.UUID, reason string) (*types.LeaveRequest, error)
	List(ctx context.Context, filter repos.LeaveRequestFilter) ([]*types.LeaveRequest, int64, error)
	Decide(ctx context.Context, requestID uuid.UUID, approve bool, note string) error
}

type leaveService struct {
	db          *gorm.DB
	log         *logger.Logger
	leaveRepo   repos.LeaveRequestRepo
	studentRepo repos.StudentRepo
	sessionRepo repos.ClassSessionRepo
	parentRepo  repos.ParentRepo
}

func NewLeaveService(
	db *gorm.DB,
	log *logger.Logger,
	leaveRepo repos.LeaveRequestRepo,
	studentRepo repos.StudentRepo,
	sessionRepo repos.ClassSessionRepo,
	parentRepo repos.ParentRepo,
) LeaveService {
	serviceLog := log.With("service", "LeaveService")
	return &leaveService{
		db:          db,
		log:         serviceLog,
		leaveRepo:   leaveRepo,
		studentRepo: studentRepo,
		sessionRepo: sessionRepo,
		parentRepo:  parentRepo,
	}
}

// Submit files a leave request on behalf of the calling parent. Only a
// parent's own student qualifies, and only for a session that has not
// started yet.
func (ls *leaveService) Submit(ctx context.Context, studentID, sessionID uuid.UUID, reason string) (*types.LeaveRequest, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("no authenticated user in context")
	}
	parent, pErr := ls.parentRepo.GetByUserID(ctx, nil, rd.UserID)
	if pErr != nil {
		return nil, fmt.Errorf("load parent profile: %w", pErr)
	}
	if parent == nil {
		return nil, fmt.Errorf("caller has no parent profile")
	}

	students, sErr := ls.studentRepo.GetByIDs(ctx, nil, []uuid.UUID{studentID})
	if sErr != nil {
		return nil, fmt.Errorf("load student: %w", sErr)
	}
	if len(students) == 0 {
		return nil, fmt.Errorf("student %s not found", studentID)
	}
	if students[0].ParentID != parent.ID {
		return nil, fmt.Errorf("student does not belong to the calling parent")
	}

	sessions, seErr := ls.sessionRepo.GetByIDs(ctx, nil, []uuid.UUID{sessionID})
	if seErr != nil {
		return nil, fmt.Errorf("load session: %w", seErr)
	}
	if len(sessions) == 0 {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}
	if sessions[0].StartsAt.Before(time.Now()) {
		return nil, fmt.Errorf("cannot request leave for a session that already started")
	}

	request := &types.LeaveRequest{
		ID:             uuid.New(),
		StudentID:      studentID,
		ClassSessionID: sessionID,
		ParentID:       parent.ID,
		Reason:         reason,
		Status:         types.RequestStatusPending,
	}
	if _, err := ls.leaveRepo.Create(ctx, nil, []*types.LeaveRequest{request}); err != nil {
		return nil, fmt.Errorf("create leave request: %w", err)
	}
	return request, nil
}

func (ls *leaveService) List(ctx context.Context, filter repos.LeaveRequestFilter) ([]*types.LeaveRequest, int64, error) {
	return ls.leaveRepo.List(ctx, nil, filter)
}

func (ls *leaveService) Decide(ctx context.Context, requestID uuid.UUID, approve bool, note string) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("no authenticated user in context")
	}
	status := types.RequestStatusRejected
	if approve {
		status = types.RequestStatusApproved
	}
	if err := ls.leaveRepo.Decide(ctx, nil, requestID, status, rd.UserID, note); err != nil {
		return fmt.Errorf("decide leave request: %w", err)
	}
	return nil
}
