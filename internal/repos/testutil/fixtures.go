package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edunexa/educenter-backend/internal/types"
)

func SeedTeacher(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Teacher {
	tb.Helper()
	t := &types.Teacher{
		ID:       uuid.New(),
		FullName: name,
		Subject:  "math",
		Status:   types.TeacherStatusActive,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed teacher: %v", err)
	}
	return t
}

func SeedParent(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Parent {
	tb.Helper()
	p := &types.Parent{
		ID:       uuid.New(),
		FullName: name,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed parent: %v", err)
	}
	return p
}

func SeedStudent(tb testing.TB, ctx context.Context, tx *gorm.DB, parentID uuid.UUID, name string) *types.Student {
	tb.Helper()
	s := &types.Student{
		ID:       uuid.New(),
		ParentID: parentID,
		FullName: name,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed student: %v", err)
	}
	return s
}

func SeedClass(tb testing.TB, ctx context.Context, tx *gorm.DB, teacherID uuid.UUID, name string) *types.Class {
	tb.Helper()
	c := &types.Class{
		ID:        uuid.New(),
		Name:      name,
		TeacherID: teacherID,
		Capacity:  10,
		Status:    types.ClassStatusOpen,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed class: %v", err)
	}
	return c
}

func SeedClassSession(tb testing.TB, ctx context.Context, tx *gorm.DB, classID uuid.UUID, startsAt time.Time) *types.ClassSession {
	tb.Helper()
	s := &types.ClassSession{
		ID:       uuid.New(),
		ClassID:  classID,
		StartsAt: startsAt,
		EndsAt:   startsAt.Add(time.Hour),
		Status:   types.SessionStatusScheduled,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed class session: %v", err)
	}
	return s
}

func SeedFeedback(tb testing.TB, ctx context.Context, tx *gorm.DB, teacherID, parentID uuid.UUID, classID *uuid.UUID, rating int, createdAt time.Time) *types.Feedback {
	tb.Helper()
	f := &types.Feedback{
		ID:        uuid.New(),
		TeacherID: teacherID,
		ClassID:   classID,
		ParentID:  parentID,
		Rating:    rating,
		Status:    types.FeedbackStatusActive,
		CreatedAt: createdAt,
	}
	if err := tx.WithContext(ctx).Create(f).Error; err != nil {
		tb.Fatalf("seed feedback: %v", err)
	}
	return f
}

func SeedFeedbackAnalysis(tb testing.TB, ctx context.Context, tx *gorm.DB, feedbackID uuid.UUID, sentiment float64) *types.FeedbackAnalysis {
	tb.Helper()
	a := &types.FeedbackAnalysis{
		ID:             uuid.New(),
		FeedbackID:     feedbackID,
		SentimentScore: sentiment,
		SentimentLabel: "neutral",
		AIModel:        "test-model",
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed feedback analysis: %v", err)
	}
	return a
}
