package handler

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnhub/learnhub-backend/internal/model"
)

func TestCreateCourse(t *testing.T) {
	f := newAPIFixture(t)
	admin, token := f.seedAdmin(t, "a@b.com")

	rec := f.doMultipart(t, token, validCourseFields(), true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.Len(t, f.courses.order, 1)
	course := f.courses.courses[f.courses.order[0]]
	assert.Equal(t, admin.ID, course.CreatorID, "creator must be the token's subject")
	assert.Equal(t, 9.99, course.Price, "price must be coerced to a number")
	assert.Equal(t, "abc", course.Title)
	assert.Contains(t, course.VideoURL, "https://media.test/videos/")
}

func TestCreateCourseMissingFile(t *testing.T) {
	f := newAPIFixture(t)
	_, token := f.seedAdmin(t, "a@b.com")

	rec := f.doMultipart(t, token, validCourseFields(), false)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "File is required", decodeBody(t, rec)["message"])
	assert.Empty(t, f.courses.order, "no course may be persisted without a file")
	assert.Empty(t, f.media.uploads, "nothing may reach the media host without a file")
}

func TestCreateCourseInvalidForm(t *testing.T) {
	f := newAPIFixture(t)
	_, token := f.seedAdmin(t, "a@b.com")

	fields := validCourseFields()
	fields["description"] = "too short"

	rec := f.doMultipart(t, token, fields, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.courses.order)
	assert.Empty(t, f.media.uploads, "validation failure must halt before the upload")
}

func TestCreateCourseRequiresAuth(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.doMultipart(t, "", validCourseFields(), true)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, f.courses.order)
}

func seedCourseFor(t *testing.T, f *apiFixture, creatorID string) *model.Course {
	t.Helper()
	c := &model.Course{
		ID:          model.NewID(),
		Title:       "Original Title",
		Description: longDescription,
		Price:       10,
		VideoURL:    "https://media.test/videos/orig.mp4",
		CreatorID:   creatorID,
	}
	require.NoError(t, f.courses.Create(context.Background(), c))
	return c
}

func updatePayload(courseID string) map[string]interface{} {
	return map[string]interface{}{
		"title":       "New Title",
		"description": longDescription,
		"price":       19.99,
		"imageUrl":    "https://media.test/images/cover.png",
		"courseId":    courseID,
	}
}

func TestUpdateCourse(t *testing.T) {
	f := newAPIFixture(t)
	admin, token := f.seedAdmin(t, "a@b.com")
	c := seedCourseFor(t, f, admin.ID)

	rec := f.doJSON(t, http.MethodPut, "/course", token, updatePayload(c.ID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, decodeBody(t, rec)["message"], c.ID)

	updated := f.courses.courses[c.ID]
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, 19.99, updated.Price)
}

func TestUpdateCourseNotOwned(t *testing.T) {
	f := newAPIFixture(t)
	owner, _ := f.seedAdmin(t, "owner@b.com")
	_, intruderToken := f.seedAdmin(t, "intruder@b.com")
	c := seedCourseFor(t, f, owner.ID)

	rec := f.doJSON(t, http.MethodPut, "/course", intruderToken, updatePayload(c.ID))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Original Title", f.courses.courses[c.ID].Title, "record must be unchanged")
}

func TestUpdateCourseUnknownID(t *testing.T) {
	f := newAPIFixture(t)
	_, token := f.seedAdmin(t, "a@b.com")

	rec := f.doJSON(t, http.MethodPut, "/course", token, updatePayload("aaaaaaaaaaaaaaaaaaaaaaaa"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateCourseMalformedID(t *testing.T) {
	f := newAPIFixture(t)
	admin, token := f.seedAdmin(t, "a@b.com")
	c := seedCourseFor(t, f, admin.ID)

	rec := f.doJSON(t, http.MethodPut, "/course", token, updatePayload("not-hex"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Original Title", f.courses.courses[c.ID].Title,
		"a validation failure must halt before any store access")
}

func TestListCourses(t *testing.T) {
	f := newAPIFixture(t)
	alice, aliceToken := f.seedAdmin(t, "alice@b.com")
	bob, _ := f.seedAdmin(t, "bob@b.com")
	seedCourseFor(t, f, alice.ID)
	seedCourseFor(t, f, alice.ID)
	seedCourseFor(t, f, bob.ID)

	rec := f.doJSON(t, http.MethodGet, "/course/bulk", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	courses, ok := decodeBody(t, rec)["courses"].([]interface{})
	require.True(t, ok)
	assert.Len(t, courses, 2)
	for _, raw := range courses {
		course := raw.(map[string]interface{})
		assert.Equal(t, alice.ID, course["creatorId"])
	}

	// Idempotent: a second call with no writes in between matches the first.
	again := f.doJSON(t, http.MethodGet, "/course/bulk", aliceToken, nil)
	assert.Equal(t, rec.Body.String(), again.Body.String())
}

func TestListCoursesEmpty(t *testing.T) {
	f := newAPIFixture(t)
	_, token := f.seedAdmin(t, "lonely@b.com")

	rec := f.doJSON(t, http.MethodGet, "/course/bulk", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	courses, ok := decodeBody(t, rec)["courses"].([]interface{})
	require.True(t, ok, "courses must be an array, not null")
	assert.Empty(t, courses)
}

func TestCreateCourseRemovesStagedFile(t *testing.T) {
	f := newAPIFixture(t)
	_, token := f.seedAdmin(t, "a@b.com")

	rec := f.doMultipart(t, token, validCourseFields(), true)
	require.Equal(t, http.StatusOK, rec.Code)

	// The fixture's temp dir must be empty again: staged, uploaded, removed.
	dir := f.tempDir
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
