package seeds

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/repos"
	"github.com/edunexa/educenter-backend/internal/types"
)

// Fixture is the YAML shape consumed by the seed command. Nested
// records reference their owners positionally, so a fixture file stays
// readable without hand-written UUIDs.
type Fixture struct {
	Teachers []struct {
		FullName string `yaml:"full_name"`
		Email    string `yaml:"email"`
		Subject  string `yaml:"subject"`
		Status   string `yaml:"status"`
	} `yaml:"teachers"`
	Parents []struct {
		FullName string `yaml:"full_name"`
		Email    string `yaml:"email"`
		Phone    string `yaml:"phone"`
		Students []struct {
			FullName string `yaml:"full_name"`
			Grade    string `yaml:"grade"`
		} `yaml:"students"`
	} `yaml:"parents"`
	Classes []struct {
		Name     string `yaml:"name"`
		Subject  string `yaml:"subject"`
		Teacher  int    `yaml:"teacher"`
		Capacity int    `yaml:"capacity"`
		Status   string `yaml:"status"`
	} `yaml:"classes"`
	Feedback []struct {
		Teacher   int     `yaml:"teacher"`
		Parent    int     `yaml:"parent"`
		Rating    int     `yaml:"rating"`
		Comment   string  `yaml:"comment"`
		DaysAgo   int     `yaml:"days_ago"`
		Sentiment *float64 `yaml:"sentiment"`
	} `yaml:"feedback"`
	Thresholds *types.ThresholdConfig `yaml:"thresholds"`
}

type Seeder struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSeeder(db *gorm.DB, log *logger.Logger) *Seeder {
	return &Seeder{db: db, log: log.With("component", "Seeder")}
}

func LoadFixture(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var fixture Fixture
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &fixture, nil
}

// Apply inserts the fixture in one transaction. Positional references
// (teacher: 0) resolve against the order records appear in the file.
func (s *Seeder) Apply(ctx context.Context, fixture *Fixture) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		teacherRepo := repos.NewTeacherRepo(tx, s.log)
		parentRepo := repos.NewParentRepo(tx, s.log)
		studentRepo := repos.NewStudentRepo(tx, s.log)
		classRepo := repos.NewClassRepo(tx, s.log)
		feedbackRepo := repos.NewFeedbackRepo(tx, s.log)
		analysisRepo := repos.NewFeedbackAnalysisRepo(tx, s.log)
		settingRepo := repos.NewSettingRepo(tx, s.log)

		var teachers []*types.Teacher
		for _, t := range fixture.Teachers {
			status := t.Status
			if status == "" {
				status = types.TeacherStatusActive
			}
			teachers = append(teachers, &types.Teacher{
				ID:       uuid.New(),
				FullName: t.FullName,
				Email:    t.Email,
				Subject:  t.Subject,
				Status:   status,
			})
		}
		if _, err := teacherRepo.Create(ctx, nil, teachers); err != nil {
			return fmt.Errorf("seed teachers: %w", err)
		}

		var parents []*types.Parent
		for _, p := range fixture.Parents {
			parent := &types.Parent{
				ID:       uuid.New(),
				FullName: p.FullName,
				Email:    p.Email,
				Phone:    p.Phone,
			}
			parents = append(parents, parent)
			if _, err := parentRepo.Create(ctx, nil, []*types.Parent{parent}); err != nil {
				return fmt.Errorf("seed parent %s: %w", p.FullName, err)
			}
			for _, st := range p.Students {
				student := &types.Student{
					ID:       uuid.New(),
					ParentID: parent.ID,
					FullName: st.FullName,
					Grade:    st.Grade,
				}
				if _, err := studentRepo.Create(ctx, nil, []*types.Student{student}); err != nil {
					return fmt.Errorf("seed student %s: %w", st.FullName, err)
				}
			}
		}

		for _, cl := range fixture.Classes {
			if cl.Teacher < 0 || cl.Teacher >= len(teachers) {
				return fmt.Errorf("class %s references unknown teacher index %d", cl.Name, cl.Teacher)
			}
			status := cl.Status
			if status == "" {
				status = types.ClassStatusOpen
			}
			class := &types.Class{
				ID:        uuid.New(),
				Name:      cl.Name,
				Subject:   cl.Subject,
				TeacherID: teachers[cl.Teacher].ID,
				Capacity:  cl.Capacity,
				Status:    status,
			}
			if _, err := classRepo.Create(ctx, nil, []*types.Class{class}); err != nil {
				return fmt.Errorf("seed class %s: %w", cl.Name, err)
			}
		}

		for i, fb := range fixture.Feedback {
			if fb.Teacher < 0 || fb.Teacher >= len(teachers) {
				return fmt.Errorf("feedback %d references unknown teacher index %d", i, fb.Teacher)
			}
			if fb.Parent < 0 || fb.Parent >= len(parents) {
				return fmt.Errorf("feedback %d references unknown parent index %d", i, fb.Parent)
			}
			feedback := &types.Feedback{
				ID:        uuid.New(),
				TeacherID: teachers[fb.Teacher].ID,
				ParentID:  parents[fb.Parent].ID,
				Rating:    fb.Rating,
				Comment:   fb.Comment,
				Status:    types.FeedbackStatusActive,
				CreatedAt: time.Now().UTC().AddDate(0, 0, -fb.DaysAgo),
			}
			if _, err := feedbackRepo.Create(ctx, nil, []*types.Feedback{feedback}); err != nil {
				return fmt.Errorf("seed feedback %d: %w", i, err)
			}
			if fb.Sentiment != nil {
				analysis := &types.FeedbackAnalysis{
					ID:             uuid.New(),
					FeedbackID:     feedback.ID,
					SentimentScore: *fb.Sentiment,
				}
				if err := analysisRepo.Upsert(ctx, nil, analysis); err != nil {
					return fmt.Errorf("seed feedback analysis %d: %w", i, err)
				}
			}
		}

		if fixture.Thresholds != nil {
			raw, err := json.Marshal(fixture.Thresholds)
			if err != nil {
				return fmt.Errorf("marshal thresholds: %w", err)
			}
			if _, err := settingRepo.Upsert(ctx, nil, types.SettingKeyTransferThresholds, datatypes.JSON(raw), uuid.Nil); err != nil {
				return fmt.Errorf("seed thresholds: %w", err)
			}
		}
		s.log.Info("fixture applied",
			"teachers", len(teachers),
			"parents", len(parents),
			"classes", len(fixture.Classes),
			"feedback", len(fixture.Feedback))
		return nil
	})
}
