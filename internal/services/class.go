package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/repos"
	"github.com/edunexa/educenter-backend/internal/types"
)

type ClassService interface {
	CreateClass(ctx context.Context, class *types.Class) (*types.Class, error)
	GetClass(ctx context.Context, classID uuid.UUID) (*types.Class, error)
	ListClasses(ctx context.Context, filter repos.ClassFilter) ([]*types.Class, int64, error)
	UpdateClass(ctx context.Context, class *types.Class) (*types.Class, error)
	ArchiveClass(ctx context.Context, classID uuid.UUID) error
	CreateSession(ctx context.Context, session *types.ClassSession) (*types.ClassSession, error)
	CancelSession(ctx context.Context, sessionID uuid.UUID) error
}

type classService struct {
	db          *gorm.DB
	log         *logger.Logger
	classRepo   repos.ClassRepo
	sessionRepo repos.ClassSessionRepo
	teacherRepo repos.TeacherRepo
}

func NewClassService(db *gorm.DB, log *logger.Logger, classRepo repos.ClassRepo, sessionRepo repos.ClassSessionRepo, teacherRepo repos.TeacherRepo) ClassService {
	serviceLog := log.With("service", "ClassService")
	return &classService{
		db:          db,
		log:         serviceLog,
		classRepo:   classRepo,
		sessionRepo: sessionRepo,
		teacherRepo: teacherRepo,
	}
}

func (cs *classService) CreateClass(ctx context.Context, class *types.Class) (*types.Class, error) {
	class.Name = strings.TrimSpace(class.Name)
	if class.Name == "" {
		return nil, fmt.Errorf("class name is required")
	}
	if class.TeacherID == uuid.Nil {
		return nil, fmt.Errorf("class teacher is required")
	}
	if class.Capacity < 0 {
		return nil, fmt.Errorf("class capacity cannot be negative")
	}
	teachers, tErr := cs.teacherRepo.GetByIDs(ctx, nil, []uuid.UUID{class.TeacherID})
	if tErr != nil {
		return nil, fmt.Errorf("load teacher: %w", tErr)
	}
	if len(teachers) == 0 {
		return nil, fmt.Errorf("teacher %s not found", class.TeacherID)
	}
	if class.Status == "" {
		class.Status = types.ClassStatusDraft
	}
	class.ID = uuid.New()
	if _, err := cs.classRepo.Create(ctx, nil, []*types.Class{class}); err != nil {
		return nil, fmt.Errorf("create class: %w", err)
	}
	return class, nil
}

func (cs *classService) GetClass(ctx context.Context, classID uuid.UUID) (*types.Class, error) {
	classes, err := cs.classRepo.GetByIDs(ctx, nil, []uuid.UUID{classID})
	if err != nil {
		return nil, fmt.Errorf("load class: %w", err)
	}
	if len(classes) == 0 {
		return nil, fmt.Errorf("class %s not found", classID)
	}
	return classes[0], nil
}

func (cs *classService) ListClasses(ctx context.Context, filter repos.ClassFilter) ([]*types.Class, int64, error) {
	return cs.classRepo.List(ctx, nil, filter)
}

func (cs *classService) UpdateClass(ctx context.Context, class *types.Class) (*types.Class, error) {
	if class.ID == uuid.Nil {
		return nil, fmt.Errorf("class id is required")
	}
	existing, err := cs.GetClass(ctx, class.ID)
	if err != nil {
		return nil, err
	}
	if class.Name == "" {
		class.Name = existing.Name
	}
	if class.TeacherID == uuid.Nil {
		class.TeacherID = existing.TeacherID
	}
	if class.Status == "" {
		class.Status = existing.Status
	}
	if uErr := cs.classRepo.Update(ctx, nil, class); uErr != nil {
		return nil, fmt.Errorf("update class: %w", uErr)
	}
	return class, nil
}

func (cs *classService) ArchiveClass(ctx context.Context, classID uuid.UUID) error {
	class, err := cs.GetClass(ctx, classID)
	if err != nil {
		return err
	}
	class.Status = types.ClassStatusArchived
	if uErr := cs.classRepo.Update(ctx, nil, class); uErr != nil {
		return fmt.Errorf("archive class: %w", uErr)
	}
	return nil
}

// CreateSession rejects sessions that overlap another non-cancelled
// session of the same class.
func (cs *classService) CreateSession(ctx context.Context, session *types.ClassSession) (*types.ClassSession, error) {
	if session.ClassID == uuid.Nil {
		return nil, fmt.Errorf("session class is required")
	}
	if !session.EndsAt.After(session.StartsAt) {
		return nil, fmt.Errorf("session must end after it starts")
	}
	if _, err := cs.GetClass(ctx, session.ClassID); err != nil {
		return nil, err
	}
	overlap, oErr := cs.sessionRepo.ExistsOverlap(ctx, nil, session.ClassID, session.StartsAt, session.EndsAt, nil)
	if oErr != nil {
		return nil, fmt.Errorf("check session overlap: %w", oErr)
	}
	if overlap {
		return nil, fmt.Errorf("session overlaps an existing session of this class")
	}
	if session.Status == "" {
		session.Status = types.SessionStatusScheduled
	}
	session.ID = uuid.New()
	if _, err := cs.sessionRepo.Create(ctx, nil, []*types.ClassSession{session}); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

func (cs *classService) CancelSession(ctx context.Context, sessionID uuid.UUID) error {
	sessions, err := cs.sessionRepo.GetByIDs(ctx, nil, []uuid.UUID{sessionID})
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if len(sessions) == 0 {
		return fmt.Errorf("session %s not found", sessionID)
	}
	session := sessions[0]
	if session.Status == types.SessionStatusDone {
		return fmt.Errorf("cannot cancel a finished session")
	}
	if session.StartsAt.Before(time.Now()) && session.Status != types.SessionStatusScheduled {
		return fmt.Errorf("cannot cancel a past session")
	}
	session.Status = types.SessionStatusCancelled
	if uErr := cs.sessionRepo.Update(ctx, nil, session); uErr != nil {
		return fmt.Errorf("cancel session: %w", uErr)
	}
	return nil
}
