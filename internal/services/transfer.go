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

type TransferService interface {
	CreateManual(ctx context.Context, teacherID uuid.UUID, reason string) (*types.TransferRequest, error)
	List(ctx context.Context, filter repos.TransferRequestFilter) ([]*types.TransferRequest, int64, error)
	Decide(ctx context.Context, requestID uuid.UUID, approve bool, note string) error
}

type transferService struct {
	db           *gorm.DB
	log          *logger.Logger
	transferRepo repos.TransferRequestRepo
	teacherRepo  repos.TeacherRepo
}

func NewTransferService(db *gorm.DB, log *logger.Logger, transferRepo repos.TransferRequestRepo, teacherRepo repos.TeacherRepo) TransferService {
	serviceLog := log.With("service", "TransferService")
	return &transferService{db: db, log: serviceLog, transferRepo: transferRepo, teacherRepo: teacherRepo}
}

func (ts *transferService) CreateManual(ctx context.Context, teacherID uuid.UUID, reason string) (*types.TransferRequest, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("no authenticated user in context")
	}
	if teacherID == uuid.Nil {
		return nil, fmt.Errorf("teacher id is required")
	}
	teachers, tErr := ts.teacherRepo.GetByIDs(ctx, nil, []uuid.UUID{teacherID})
	if tErr != nil {
		return nil, fmt.Errorf("load teacher: %w", tErr)
	}
	if len(teachers) == 0 {
		return nil, fmt.Errorf("teacher %s not found", teacherID)
	}
	exists, eErr := ts.transferRepo.ExistsPendingForTeacher(ctx, nil, teacherID)
	if eErr != nil {
		return nil, fmt.Errorf("check pending transfer: %w", eErr)
	}
	if exists {
		return nil, fmt.Errorf("teacher already has a pending transfer request")
	}

	request := &types.TransferRequest{
		ID:        uuid.New(),
		TeacherID: teacherID,
		Reason:    reason,
		Source:    types.TransferSourceManual,
		Status:    types.TransferStatusPending,
		CreatedBy: &rd.UserID,
	}
	if _, err := ts.transferRepo.Create(ctx, nil, []*types.TransferRequest{request}); err != nil {
		return nil, fmt.Errorf("create transfer request: %w", err)
	}
	return request, nil
}

func (ts *transferService) List(ctx context.Context, filter repos.TransferRequestFilter) ([]*types.TransferRequest, int64, error) {
	return ts.transferRepo.List(ctx, nil, filter)
}

// Decide resolves a pending transfer request. Approval marks the
// teacher transferred, which drops them out of future monitoring
// sweeps.
func (ts *transferService) Decide(ctx context.Context, requestID uuid.UUID, approve bool, note string) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("no authenticated user in context")
	}

	if !approve {
		if err := ts.transferRepo.Decide(ctx, nil, requestID, types.TransferStatusRejected, rd.UserID, note); err != nil {
			return fmt.Errorf("reject transfer request: %w", err)
		}
		return nil
	}

	return ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		requests, rErr := ts.transferRepo.GetByIDs(ctx, tx, []uuid.UUID{requestID})
		if rErr != nil {
			return fmt.Errorf("load transfer request: %w", rErr)
		}
		if len(requests) == 0 {
			return fmt.Errorf("transfer request %s not found", requestID)
		}
		request := requests[0]
		if request.Status != types.TransferStatusPending {
			return fmt.Errorf("transfer request is not pending")
		}

		teachers, tErr := ts.teacherRepo.GetByIDs(ctx, tx, []uuid.UUID{request.TeacherID})
		if tErr != nil {
			return fmt.Errorf("load teacher: %w", tErr)
		}
		if len(teachers) == 0 {
			return fmt.Errorf("teacher %s not found", request.TeacherID)
		}
		teacher := teachers[0]
		teacher.Status = types.TeacherStatusTransferred
		if uErr := ts.teacherRepo.Update(ctx, tx, teacher); uErr != nil {
			return fmt.Errorf("mark teacher transferred: %w", uErr)
		}
		if dErr := ts.transferRepo.Decide(ctx, tx, requestID, types.TransferStatusApproved, rd.UserID, note); dErr != nil {
			return fmt.Errorf("approve transfer request: %w", dErr)
		}
		return nil
	})
}
