package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/repos"
	"github.com/edunexa/educenter-backend/internal/types"
)

type TeacherService interface {
	CreateTeacher(ctx context.Context, teacher *types.Teacher) (*types.Teacher, error)
	GetTeacher(ctx context.Context, teacherID uuid.UUID) (*types.Teacher, error)
	ListTeachers(ctx context.Context, filter repos.TeacherFilter) ([]*types.Teacher, int64, error)
	UpdateTeacher(ctx context.Context, teacher *types.Teacher) (*types.Teacher, error)
	DeactivateTeacher(ctx context.Context, teacherID uuid.UUID) error
}

type teacherService struct {
	db          *gorm.DB
	log         *logger.Logger
	teacherRepo repos.TeacherRepo
}

func NewTeacherService(db *gorm.DB, log *logger.Logger, teacherRepo repos.TeacherRepo) TeacherService {
	serviceLog := log.With("service", "TeacherService")
	return &teacherService{db: db, log: serviceLog, teacherRepo: teacherRepo}
}

func (ts *teacherService) CreateTeacher(ctx context.Context, teacher *types.Teacher) (*types.Teacher, error) {
	teacher.FullName = strings.TrimSpace(teacher.FullName)
	if teacher.FullName == "" {
		return nil, fmt.Errorf("teacher full name is required")
	}
	if teacher.Status == "" {
		teacher.Status = types.TeacherStatusActive
	}
	switch teacher.Status {
	case types.TeacherStatusActive, types.TeacherStatusTransferred, types.TeacherStatusInactive:
	default:
		return nil, fmt.Errorf("unknown teacher status %q", teacher.Status)
	}
	teacher.ID = uuid.New()
	if _, err := ts.teacherRepo.Create(ctx, nil, []*types.Teacher{teacher}); err != nil {
		return nil, fmt.Errorf("create teacher: %w", err)
	}
	return teacher, nil
}

func (ts *teacherService) GetTeacher(ctx context.Context, teacherID uuid.UUID) (*types.Teacher, error) {
	teachers, err := ts.teacherRepo.GetByIDs(ctx, nil, []uuid.UUID{teacherID})
	if err != nil {
		return nil, fmt.Errorf("load teacher: %w", err)
	}
	if len(teachers) == 0 {
		return nil, fmt.Errorf("teacher %s not found", teacherID)
	}
	return teachers[0], nil
}

func (ts *teacherService) ListTeachers(ctx context.Context, filter repos.TeacherFilter) ([]*types.Teacher, int64, error) {
	return ts.teacherRepo.List(ctx, nil, filter)
}

func (ts *teacherService) UpdateTeacher(ctx context.Context, teacher *types.Teacher) (*types.Teacher, error) {
	if teacher.ID == uuid.Nil {
		return nil, fmt.Errorf("teacher id is required")
	}
	existing, err := ts.GetTeacher(ctx, teacher.ID)
	if err != nil {
		return nil, err
	}
	if teacher.FullName == "" {
		teacher.FullName = existing.FullName
	}
	if teacher.Status == "" {
		teacher.Status = existing.Status
	}
	if uErr := ts.teacherRepo.Update(ctx, nil, teacher); uErr != nil {
		return nil, fmt.Errorf("update teacher: %w", uErr)
	}
	return teacher, nil
}

func (ts *teacherService) DeactivateTeacher(ctx context.Context, teacherID uuid.UUID) error {
	teacher, err := ts.GetTeacher(ctx, teacherID)
	if err != nil {
		return err
	}
	teacher.Status = types.TeacherStatusInactive
	if uErr := ts.teacherRepo.Update(ctx, nil, teacher); uErr != nil {
		return fmt.Errorf("deactivate teacher: %w", uErr)
	}
	return nil
}
