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

type SessionChangeService interface {
	Submit(ctx context.Context, request *types.SessionChangeRequest) (*types.SessionChangeRequest, error)
	List(ctx context.Context, filter repos.SessionChangeFilter) ([]*types.SessionChangeRequest, int64, error)
	Decide(ctx context.Context, requestID uuid.UUID, approve bool, note string) error
}

type sessionChangeService struct {
	db          *gorm.DB
	log         *logger.Logger
	changeRepo  repos.SessionChangeRepo
	sessionRepo repos.ClassSessionRepo
	classRepo   repos.ClassRepo
}

func NewSessionChangeService(
	db *gorm.DB,
	log *logger.Logger,
	changeRepo repos.SessionChangeRepo,
	sessionRepo repos.ClassSessionRepo,
	classRepo repos.ClassRepo,
) SessionChangeService {
	serviceLog := log.With("service", "SessionChangeService")
	return &sessionChangeService{
		db:          db,
		log:         serviceLog,
		changeRepo:  changeRepo,
		sessionRepo: sessionRepo,
		classRepo:   classRepo,
	}
}

func (scs *sessionChangeService) Submit(ctx context.Context, request *types.SessionChangeRequest) (*types.SessionChangeRequest, error) {
	if request.ClassSessionID == uuid.Nil {
		return nil, fmt.Errorf("session id is required")
	}
	if !request.ProposedEndsAt.After(request.ProposedStartsAt) {
		return nil, fmt.Errorf("proposed slot must end after it starts")
	}

	sessions, sErr := scs.sessionRepo.GetByIDs(ctx, nil, []uuid.UUID{request.ClassSessionID})
	if sErr != nil {
		return nil, fmt.Errorf("load session: %w", sErr)
	}
	if len(sessions) == 0 {
		return nil, fmt.Errorf("session %s not found", request.ClassSessionID)
	}
	session := sessions[0]
	if session.Status == types.SessionStatusCancelled || session.Status == types.SessionStatusDone {
		return nil, fmt.Errorf("session can no longer be moved")
	}

	classes, cErr := scs.classRepo.GetByIDs(ctx, nil, []uuid.UUID{session.ClassID})
	if cErr != nil {
		return nil, fmt.Errorf("load class: %w", cErr)
	}
	if len(classes) == 0 {
		return nil, fmt.Errorf("class %s not found", session.ClassID)
	}
	request.TeacherID = classes[0].TeacherID

	request.ID = uuid.New()
	request.Status = types.RequestStatusPending
	if _, err := scs.changeRepo.Create(ctx, nil, []*types.SessionChangeRequest{request}); err != nil {
		return nil, fmt.Errorf("create session change request: %w", err)
	}
	return request, nil
}

func (scs *sessionChangeService) List(ctx context.Context, filter repos.SessionChangeFilter) ([]*types.SessionChangeRequest, int64, error) {
	return scs.changeRepo.List(ctx, nil, filter)
}

// Decide resolves a pending request. Approval moves the session to the
// proposed slot; the move is re-checked for overlap at decision time,
// not submission time, since the calendar may have changed in between.
func (scs *sessionChangeService) Decide(ctx context.Context, requestID uuid.UUID, approve bool, note string) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("no authenticated user in context")
	}

	if !approve {
		if err := scs.changeRepo.Decide(ctx, nil, requestID, types.RequestStatusRejected, rd.UserID, note); err != nil {
			return fmt.Errorf("reject session change: %w", err)
		}
		return nil
	}

	return scs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		requests, rErr := scs.changeRepo.GetByIDs(ctx, tx, []uuid.UUID{requestID})
		if rErr != nil {
			return fmt.Errorf("load session change request: %w", rErr)
		}
		if len(requests) == 0 {
			return fmt.Errorf("session change request %s not found", requestID)
		}
		request := requests[0]
		if request.Status != types.RequestStatusPending {
			return fmt.Errorf("session change request is not pending")
		}

		sessions, sErr := scs.sessionRepo.GetByIDs(ctx, tx, []uuid.UUID{request.ClassSessionID})
		if sErr != nil {
			return fmt.Errorf("load session: %w", sErr)
		}
		if len(sessions) == 0 {
			return fmt.Errorf("session %s not found", request.ClassSessionID)
		}
		session := sessions[0]

		overlap, oErr := scs.sessionRepo.ExistsOverlap(ctx, tx, session.ClassID, request.ProposedStartsAt, request.ProposedEndsAt, &session.ID)
		if oErr != nil {
			return fmt.Errorf("check session overlap: %w", oErr)
		}
		if overlap {
			return fmt.Errorf("proposed slot overlaps another session of this class")
		}

		session.StartsAt = request.ProposedStartsAt
		session.EndsAt = request.ProposedEndsAt
		session.Status = types.SessionStatusMoved
		if uErr := scs.sessionRepo.Update(ctx, tx, session); uErr != nil {
			return fmt.Errorf("move session: %w", uErr)
		}
		if dErr := scs.changeRepo.Decide(ctx, tx, requestID, types.RequestStatusApproved, rd.UserID, note); dErr != nil {
			return fmt.Errorf("approve session change: %w", dErr)
		}
		return nil
	})
}
