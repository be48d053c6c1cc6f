package model

import "time"

// Course is a priced content item with a video reference, owned by the
// administrator who created it.
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	VideoURL    string    `json:"videoUrl"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatorID   string    `json:"creatorId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateCourseRequest is the multipart form payload for course creation.
// The video file itself is staged by the upload middleware and checked
// separately by the handler. Price arrives as a form string and is coerced
// to a number by binding.
type CreateCourseRequest struct {
	Title       string  `form:"title" binding:"required,min=3,max=100"`
	Description string  `form:"description" binding:"required,min=40,max=1000"`
	Price       float64 `form:"price" binding:"required,gte=0"`
}

// UpdateCourseRequest is the JSON payload for course updates.
type UpdateCourseRequest struct {
	Title       string  `json:"title" binding:"required,min=3,max=100"`
	Description string  `json:"description" binding:"required,min=40,max=1000"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	ImageURL    string  `json:"imageUrl" binding:"required"`
	CourseID    string  `json:"courseId" binding:"required,len=24,hexadecimal"`
}
