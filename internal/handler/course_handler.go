package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/learnhub/learnhub-backend/internal/middleware"
	"github.com/learnhub/learnhub-backend/internal/model"
	"github.com/learnhub/learnhub-backend/internal/response"
	"github.com/learnhub/learnhub-backend/internal/service"
	"github.com/learnhub/learnhub-backend/internal/validator"
)

// CourseHandler handles course creation, update and listing.
type CourseHandler struct {
	courseService *service.CourseService
	log           zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService *service.CourseService, log zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		log:           log.With().Str("component", "course_handler").Logger(),
	}
}

// Create godoc
// POST /course (multipart)
// Creates a course from form fields plus a video file staged by the upload
// middleware. The file check runs after form validation, so a request that
// is malformed AND missing its file reports the format problem first.
func (h *CourseHandler) Create(c *gin.Context) {
	var req model.CreateCourseRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, "wrong input format", fields)
		return
	}

	stagedPath, stagedName, ok := middleware.GetStagedUpload(c)
	if !ok {
		response.Fail(c, http.StatusBadRequest, "File is required")
		return
	}

	creatorID := middleware.GetAdminID(c)

	course, err := h.courseService.Create(c.Request.Context(), service.CreateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		CreatorID:   creatorID,
		StagedPath:  stagedPath,
		StagedName:  stagedName,
	})
	if err != nil {
		if errors.Is(err, service.ErrMediaUpload) {
			h.log.Error().Err(err).Msg("Media host upload failed")
			response.Fail(c, http.StatusBadGateway, "error uploading file to media host")
			return
		}
		h.log.Error().Err(err).Msg("Course insert failed")
		response.Fail(c, http.StatusInternalServerError, "error creating the course")
		return
	}

	h.log.Info().Str("course_id", course.ID).Str("creator_id", creatorID).Msg("Course created")
	response.Message(c, http.StatusOK, "course added successfully")
}

// Update godoc
// PUT /course
// Updates a course after an explicit ownership check.
func (h *CourseHandler) Update(c *gin.Context) {
	var req model.UpdateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, "wrong format of input", fields)
		return
	}

	creatorID := middleware.GetAdminID(c)

	err := h.courseService.Update(c.Request.Context(), creatorID, service.UpdateCourseInput{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			response.Fail(c, http.StatusNotFound, "course not found")
		case errors.Is(err, service.ErrNotCourseOwner):
			response.Fail(c, http.StatusForbidden, "you do not own this course")
		default:
			h.log.Error().Err(err).Str("course_id", req.CourseID).Msg("Course update failed")
			response.Fail(c, http.StatusInternalServerError, "error changing the course data: "+err.Error())
		}
		return
	}

	response.Message(c, http.StatusOK, "data changed successfully for courseId: "+req.CourseID)
}

// List godoc
// GET /course/bulk
// Returns every course owned by the authenticated administrator.
func (h *CourseHandler) List(c *gin.Context) {
	creatorID := middleware.GetAdminID(c)

	courses, err := h.courseService.ListByCreator(c.Request.Context(), creatorID)
	if err != nil {
		h.log.Error().Err(err).Str("creator_id", creatorID).Msg("Course list failed")
		response.Fail(c, http.StatusInternalServerError, "error finding courses for this creator")
		return
	}

	if courses == nil {
		courses = []model.Course{}
	}

	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}
