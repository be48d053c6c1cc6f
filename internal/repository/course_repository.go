package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/learnhub/learnhub-backend/internal/model"
)

// CourseRepository handles course data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO courses (id, title, description, price, video_url, image_url, creator_id)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
		 RETURNING created_at, updated_at`,
		c.ID, c.Title, c.Description, c.Price, c.VideoURL, c.ImageURL, c.CreatorID,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

// GetByID retrieves a course by ID.
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*model.Course, error) {
	c := &model.Course{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, price, video_url, COALESCE(image_url, ''), creator_id, created_at, updated_at
		 FROM courses
		 WHERE id = $1`, id,
	).Scan(&c.ID, &c.Title, &c.Description, &c.Price, &c.VideoURL, &c.ImageURL, &c.CreatorID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Update rewrites the mutable course fields. Both id and creator_id are
// constrained so a stale ownership check can never overwrite a foreign row.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE courses
		 SET title = $1, description = $2, price = $3, image_url = NULLIF($4, ''), updated_at = NOW()
		 WHERE id = $5 AND creator_id = $6`,
		c.Title, c.Description, c.Price, c.ImageURL, c.ID, c.CreatorID,
	)
	return err
}

// ListByCreator returns all courses created by the given administrator.
func (r *CourseRepository) ListByCreator(ctx context.Context, creatorID string) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, price, video_url, COALESCE(image_url, ''), creator_id, created_at, updated_at
		 FROM courses
		 WHERE creator_id = $1
		 ORDER BY created_at ASC`, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Price, &c.VideoURL, &c.ImageURL, &c.CreatorID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}
