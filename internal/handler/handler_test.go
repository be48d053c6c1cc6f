package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/learnhub/learnhub-backend/internal/config"
	"github.com/learnhub/learnhub-backend/internal/middleware"
	"github.com/learnhub/learnhub-backend/internal/model"
	"github.com/learnhub/learnhub-backend/internal/service"
	"github.com/learnhub/learnhub-backend/internal/validator"
)

// ─── In-memory fakes ────────────────────────────────────────────────────────

type memAdminStore struct {
	byEmail map[string]*model.Admin
}

func newMemAdminStore() *memAdminStore {
	return &memAdminStore{byEmail: make(map[string]*model.Admin)}
}

func (s *memAdminStore) Create(_ context.Context, a *model.Admin) error {
	if _, ok := s.byEmail[a.Email]; ok {
		return &pgconn.PgError{Code: "23505", ConstraintName: "admins_email_key"}
	}
	cp := *a
	s.byEmail[a.Email] = &cp
	return nil
}

func (s *memAdminStore) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	a, ok := s.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

type memCourseStore struct {
	order   []string
	courses map[string]*model.Course
}

func newMemCourseStore() *memCourseStore {
	return &memCourseStore{courses: make(map[string]*model.Course)}
}

func (s *memCourseStore) Create(_ context.Context, c *model.Course) error {
	cp := *c
	s.courses[c.ID] = &cp
	s.order = append(s.order, c.ID)
	return nil
}

func (s *memCourseStore) GetByID(_ context.Context, id string) (*model.Course, error) {
	c, ok := s.courses[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (s *memCourseStore) Update(_ context.Context, c *model.Course) error {
	cp := *c
	s.courses[c.ID] = &cp
	return nil
}

func (s *memCourseStore) ListByCreator(_ context.Context, creatorID string) ([]model.Course, error) {
	var out []model.Course
	for _, id := range s.order {
		if c := s.courses[id]; c.CreatorID == creatorID {
			out = append(out, *c)
		}
	}
	return out, nil
}

type memMediaHost struct {
	uploads []string
}

func (m *memMediaHost) UploadVideo(_ context.Context, _, publicID string, _ bool) (string, error) {
	m.uploads = append(m.uploads, publicID)
	return "https://media.test/videos/" + publicID, nil
}

func (m *memMediaHost) DeleteVideo(_ context.Context, _ string) error { return nil }

type memCleanupQueue struct{}

func (memCleanupQueue) Enqueue(_ context.Context, _, _ string) error { return nil }

type memOrphanStore struct{}

func (memOrphanStore) Record(_ context.Context, _, _ string) error { return nil }

// ─── Fixture ────────────────────────────────────────────────────────────────

type apiFixture struct {
	router  *gin.Engine
	admins  *memAdminStore
	courses *memCourseStore
	media   *memMediaHost
	auth    *service.AuthService
	tempDir string
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.Setup()

	cfg := &config.Config{
		JWTSecret:      "handler-test-secret",
		BcryptCost:     bcrypt.MinCost,
		TempDir:        t.TempDir(),
		MaxUploadBytes: 10 << 20,
	}

	f := &apiFixture{
		admins:  newMemAdminStore(),
		courses: newMemCourseStore(),
		media:   &memMediaHost{},
		tempDir: cfg.TempDir,
	}

	log := zerolog.Nop()
	f.auth = service.NewAuthService(cfg)
	adminService := service.NewAdminService(f.admins, f.auth)
	courseService := service.NewCourseService(f.courses, f.media, memCleanupQueue{}, memOrphanStore{}, log)

	authHandler := NewAuthHandler(adminService, log)
	courseHandler := NewCourseHandler(courseService, log)

	r := gin.New()
	r.POST("/signup", authHandler.Signup)
	r.POST("/signin", authHandler.Signin)

	courses := r.Group("/course")
	courses.Use(middleware.RequireAdminJWT(f.auth))
	{
		courses.POST("", middleware.StageUpload(cfg, log, "file"), courseHandler.Create)
		courses.PUT("", courseHandler.Update)
		courses.GET("/bulk", courseHandler.List)
	}

	f.router = r
	return f
}

// seedAdmin registers an administrator directly and returns it with a token.
func (f *apiFixture) seedAdmin(t *testing.T, email string) (*model.Admin, string) {
	t.Helper()
	adminService := service.NewAdminService(f.admins, f.auth)
	admin, err := adminService.Register(context.Background(), service.SignupInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Password:  "secret",
	})
	require.NoError(t, err)

	token, err := f.auth.GenerateAdminToken(admin.ID)
	require.NoError(t, err)
	return admin, token
}

func (f *apiFixture) doJSON(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) doMultipart(t *testing.T, token string, fields map[string]string, withFile bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if withFile {
		part, err := mw.CreateFormFile("file", "lecture.mp4")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake video bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/course", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

const longDescription = "This description is comfortably longer than the forty character minimum required."

func validCourseFields() map[string]string {
	return map[string]string{
		"title":       "abc",
		"description": longDescription,
		"price":       "9.99",
	}
}
