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

const (
	ScheduleViewDay   = "day"
	ScheduleViewWeek  = "week"
	ScheduleViewMonth = "month"
)

// ScheduleWindow is a resolved calendar range plus the sessions that
// intersect it.
type ScheduleWindow struct {
	View     string                `json:"view"`
	From     time.Time             `json:"from"`
	To       time.Time             `json:"to"`
	Sessions []*types.ClassSession `json:"sessions"`
}

type ScheduleService interface {
	View(ctx context.Context, view string, anchor time.Time, classID, teacherID *uuid.UUID) (*ScheduleWindow, error)
}

type scheduleService struct {
	db          *gorm.DB
	log         *logger.Logger
	sessionRepo repos.ClassSessionRepo
}

func NewScheduleService(db *gorm.DB, log *logger.Logger, sessionRepo repos.ClassSessionRepo) ScheduleService {
	serviceLog := log.With("service", "ScheduleService")
	return &scheduleService{db: db, log: serviceLog, sessionRepo: sessionRepo}
}

// View resolves the anchor date into a day, ISO week (Monday start) or
// calendar month range and returns every intersecting session.
func (ss *scheduleService) View(ctx context.Context, view string, anchor time.Time, classID, teacherID *uuid.UUID) (*ScheduleWindow, error) {
	from, to, err := resolveRange(view, anchor)
	if err != nil {
		return nil, err
	}
	sessions, lErr := ss.sessionRepo.ListBetween(ctx, nil, repos.SessionFilter{
		ClassID:   classID,
		TeacherID: teacherID,
		From:      from,
		To:        to,
	})
	if lErr != nil {
		return nil, fmt.Errorf("list sessions: %w", lErr)
	}
	return &ScheduleWindow{View: view, From: from, To: to, Sessions: sessions}, nil
}

func resolveRange(view string, anchor time.Time) (time.Time, time.Time, error) {
	day := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())
	switch view {
	case ScheduleViewDay:
		return day, day.AddDate(0, 0, 1), nil
	case ScheduleViewWeek:
		weekday := int(day.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		monday := day.AddDate(0, 0, -(weekday - 1))
		return monday, monday.AddDate(0, 0, 7), nil
	case ScheduleViewMonth:
		first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		return first, first.AddDate(0, 1, 0), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown schedule view %q", view)
	}
}
