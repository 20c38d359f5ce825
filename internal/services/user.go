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

// Profile is the authenticated user's account plus the role-specific
// record attached to it, when one exists.
type Profile struct {
	User     *types.User      `json:"user"`
	Parent   *types.Parent    `json:"parent,omitempty"`
	Students []*types.Student `json:"students,omitempty"`
}

type UserService interface {
	GetMe(ctx context.Context) (*Profile, error)
}

type userService struct {
	db          *gorm.DB
	log         *logger.Logger
	userRepo    repos.UserRepo
	parentRepo  repos.ParentRepo
	studentRepo repos.StudentRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, parentRepo repos.ParentRepo, studentRepo repos.StudentRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:          db,
		log:         serviceLog,
		userRepo:    userRepo,
		parentRepo:  parentRepo,
		studentRepo: studentRepo,
	}
}

func (us *userService) GetMe(ctx context.Context) (*Profile, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("no authenticated user in context")
	}
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user %s not found", rd.UserID)
	}
	profile := &Profile{User: users[0]}

	if users[0].Role == types.RoleParent {
		parent, pErr := us.parentRepo.GetByUserID(ctx, nil, rd.UserID)
		if pErr != nil {
			return nil, fmt.Errorf("load parent profile: %w", pErr)
		}
		if parent != nil {
			profile.Parent = parent
			students, sErr := us.studentRepo.ListByParentID(ctx, nil, parent.ID)
			if sErr != nil {
				return nil, fmt.Errorf("load students: %w", sErr)
			}
			profile.Students = students
		}
	}
	return profile, nil
}
