package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/repos"
	"github.com/edunexa/educenter-backend/internal/types"
)

type EnrollmentService interface {
	Enroll(ctx context.Context, classID, studentID uuid.UUID, tuitionCents int64) (*types.Enrollment, error)
	Withdraw(ctx context.Context, enrollmentID uuid.UUID) error
	ListByClass(ctx context.Context, classID uuid.UUID) ([]*types.Enrollment, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*types.Enrollment, error)
}

type enrollmentService struct {
	db             *gorm.DB
	log            *logger.Logger
	enrollmentRepo repos.EnrollmentRepo
	classRepo      repos.ClassRepo
	studentRepo    repos.StudentRepo
	invoiceRepo    repos.InvoiceRepo
}

func NewEnrollmentService(
	db *gorm.DB,
	log *logger.Logger,
	enrollmentRepo repos.EnrollmentRepo,
	classRepo repos.ClassRepo,
	studentRepo repos.StudentRepo,
	invoiceRepo repos.InvoiceRepo,
) EnrollmentService {
	serviceLog := log.With("service", "EnrollmentService")
	return &enrollmentService{
		db:             db,
		log:            serviceLog,
		enrollmentRepo: enrollmentRepo,
		classRepo:      classRepo,
		studentRepo:    studentRepo,
		invoiceRepo:    invoiceRepo,
	}
}

// Enroll places a student into an open class and raises the tuition
// invoice in the same transaction, so a failed invoice never leaves a
// half-enrolled student.
func (es *enrollmentService) Enroll(ctx context.Context, classID, studentID uuid.UUID, tuitionCents int64) (*types.Enrollment, error) {
	if tuitionCents < 0 {
		return nil, fmt.Errorf("tuition cannot be negative")
	}

	var enrollment *types.Enrollment
	err := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		classes, cErr := es.classRepo.GetByIDs(ctx, tx, []uuid.UUID{classID})
		if cErr != nil {
			return fmt.Errorf("load class: %w", cErr)
		}
		if len(classes) == 0 {
			return fmt.Errorf("class %s not found", classID)
		}
		class := classes[0]
		if class.Status != types.ClassStatusOpen {
			return fmt.Errorf("class %s is not open for enrollment", classID)
		}

		students, sErr := es.studentRepo.GetByIDs(ctx, tx, []uuid.UUID{studentID})
		if sErr != nil {
			return fmt.Errorf("load student: %w", sErr)
		}
		if len(students) == 0 {
			return fmt.Errorf("student %s not found", studentID)
		}
		student := students[0]

		exists, eErr := es.enrollmentRepo.ExistsActive(ctx, tx, classID, studentID)
		if eErr != nil {
			return fmt.Errorf("check existing enrollment: %w", eErr)
		}
		if exists {
			return fmt.Errorf("student is already enrolled in this class")
		}

		if class.Capacity > 0 {
			active, aErr := es.enrollmentRepo.CountActiveByClassID(ctx, tx, classID)
			if aErr != nil {
				return fmt.Errorf("count enrollments: %w", aErr)
			}
			if active >= int64(class.Capacity) {
				return fmt.Errorf("class %s is full", classID)
			}
		}

		enrollment = &types.Enrollment{
			ID:         uuid.New(),
			ClassID:    classID,
			StudentID:  studentID,
			Status:     types.EnrollmentStatusActive,
			EnrolledAt: time.Now().UTC(),
		}
		if _, crErr := es.enrollmentRepo.Create(ctx, tx, []*types.Enrollment{enrollment}); crErr != nil {
			return fmt.Errorf("create enrollment: %w", crErr)
		}

		if tuitionCents > 0 {
			invoice := &types.Invoice{
				ID:           uuid.New(),
				EnrollmentID: &enrollment.ID,
				ParentID:     student.ParentID,
				Description:  fmt.Sprintf("Tuition for %s", class.Name),
				AmountCents:  tuitionCents,
				DueDate:      time.Now().UTC().AddDate(0, 0, 14),
				Status:       types.InvoiceStatusPending,
			}
			if _, iErr := es.invoiceRepo.Create(ctx, tx, []*types.Invoice{invoice}); iErr != nil {
				return fmt.Errorf("create tuition invoice: %w", iErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (es *enrollmentService) Withdraw(ctx context.Context, enrollmentID uuid.UUID) error {
	enrollments, err := es.enrollmentRepo.GetByIDs(ctx, nil, []uuid.UUID{enrollmentID})
	if err != nil {
		return fmt.Errorf("load enrollment: %w", err)
	}
	if len(enrollments) == 0 {
		return fmt.Errorf("enrollment %s not found", enrollmentID)
	}
	if enrollments[0].Status != types.EnrollmentStatusActive {
		return fmt.Errorf("enrollment is not active")
	}
	if uErr := es.enrollmentRepo.UpdateStatus(ctx, nil, enrollmentID, types.EnrollmentStatusWithdrawn); uErr != nil {
		return fmt.Errorf("withdraw enrollment: %w", uErr)
	}
	return nil
}

func (es *enrollmentService) ListByClass(ctx context.Context, classID uuid.UUID) ([]*types.Enrollment, error) {
	return es.enrollmentRepo.ListByClassID(ctx, nil, classID)
}

func (es *enrollmentService) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*types.Enrollment, error) {
	return es.enrollmentRepo.ListByStudentID(ctx, nil, studentID)
}
