package service

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/learnhub/learnhub-backend/internal/model"
)

// Course operation errors.
var (
	ErrCourseNotFound = errors.New("course not found")
	ErrNotCourseOwner = errors.New("course belongs to another administrator")
	ErrMediaUpload    = errors.New("media host upload failed")
)

// CourseStore is the persistence seam for course records.
type CourseStore interface {
	Create(ctx context.Context, c *model.Course) error
	GetByID(ctx context.Context, id string) (*model.Course, error)
	Update(ctx context.Context, c *model.Course) error
	ListByCreator(ctx context.Context, creatorID string) ([]model.Course, error)
}

// MediaHost is the external video storage seam.
type MediaHost interface {
	UploadVideo(ctx context.Context, path, publicID string, overwrite bool) (string, error)
	DeleteVideo(ctx context.Context, publicID string) error
}

// CleanupQueue accepts deferred remote-delete jobs for media objects whose
// immediate compensation failed.
type CleanupQueue interface {
	Enqueue(ctx context.Context, publicID, reason string) error
}

// OrphanStore records media objects that could not be cleaned up at all.
type OrphanStore interface {
	Record(ctx context.Context, publicID, reason string) error
}

// CourseService implements course creation, update and listing.
type CourseService struct {
	courses CourseStore
	media   MediaHost
	cleanup CleanupQueue
	orphans OrphanStore
	log     zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(courses CourseStore, media MediaHost, cleanup CleanupQueue, orphans OrphanStore, log zerolog.Logger) *CourseService {
	return &CourseService{
		courses: courses,
		media:   media,
		cleanup: cleanup,
		orphans: orphans,
		log:     log.With().Str("component", "course_service").Logger(),
	}
}

// CreateCourseInput carries validated course-creation fields plus the
// location of the staged upload.
type CreateCourseInput struct {
	Title       string
	Description string
	Price       float64
	CreatorID   string

	// StagedPath is the temp file written by the upload middleware;
	// StagedName doubles as the remote object's public id.
	StagedPath string
	StagedName string
}

// Create runs the two-phase course-creation flow: forward the staged file to
// the media host, then insert the record. The staged file is removed as soon
// as the upload succeeds, whatever happens afterwards. If the insert fails
// the remote object is deleted again; when that compensation also fails the
// object is handed to the cleanup queue so it is never silently orphaned.
func (s *CourseService) Create(ctx context.Context, in CreateCourseInput) (*model.Course, error) {
	videoURL, err := s.media.UploadVideo(ctx, in.StagedPath, in.StagedName, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMediaUpload, err)
	}

	if err := os.Remove(in.StagedPath); err != nil {
		s.log.Warn().Err(err).Str("path", in.StagedPath).Msg("Failed to delete staged upload")
	}

	course := &model.Course{
		ID:          model.NewID(),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		VideoURL:    videoURL,
		CreatorID:   in.CreatorID,
	}

	if err := s.courses.Create(ctx, course); err != nil {
		s.compensateUpload(ctx, in.StagedName, err)
		return nil, fmt.Errorf("create course: %w", err)
	}

	return course, nil
}

// compensateUpload undoes a remote upload after the local insert failed.
func (s *CourseService) compensateUpload(ctx context.Context, publicID string, cause error) {
	err := s.media.DeleteVideo(ctx, publicID)
	if err == nil {
		s.log.Info().Str("public_id", publicID).Msg("Rolled back remote upload after insert failure")
		return
	}
	s.log.Warn().Err(err).Str("public_id", publicID).Msg("Immediate rollback of remote upload failed, queueing cleanup")

	reason := "course insert failed: " + cause.Error()
	if err := s.cleanup.Enqueue(ctx, publicID, reason); err != nil {
		s.log.Error().Err(err).Str("public_id", publicID).Msg("Cleanup enqueue failed, recording orphaned media")
		if rerr := s.orphans.Record(ctx, publicID, reason); rerr != nil {
			s.log.Error().Err(rerr).Str("public_id", publicID).Msg("Failed to record orphaned media")
		}
	}
}

// UpdateCourseInput carries validated course-update fields.
type UpdateCourseInput struct {
	CourseID    string
	Title       string
	Description string
	Price       float64
	ImageURL    string
}

// Update mutates a course after an explicit ownership check: a missing
// course is ErrCourseNotFound, someone else's course is ErrNotCourseOwner.
func (s *CourseService) Update(ctx context.Context, creatorID string, in UpdateCourseInput) error {
	course, err := s.courses.GetByID(ctx, in.CourseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("find course: %w", err)
	}

	if course.CreatorID != creatorID {
		return ErrNotCourseOwner
	}

	course.Title = in.Title
	course.Description = in.Description
	course.Price = in.Price
	course.ImageURL = in.ImageURL

	if err := s.courses.Update(ctx, course); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

// ListByCreator returns every course owned by the given administrator.
func (s *CourseService) ListByCreator(ctx context.Context, creatorID string) ([]model.Course, error) {
	return s.courses.ListByCreator(ctx, creatorID)
}
