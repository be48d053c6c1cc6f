package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupRejectsBadInput(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.doJSON(t, http.MethodPost, "/signup", "", map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "a@b.com",
		"password":  "xy", // below the 3-char minimum
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.admins.byEmail, "no record may be created on validation failure")
}

func TestSignupSigninRoundTrip(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.doJSON(t, http.MethodPost, "/signup", "", map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "a@b.com",
		"password":  "secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["message"])
	assert.Nil(t, body["token"], "signup must not issue a token")

	rec = f.doJSON(t, http.MethodPost, "/signin", "", map[string]string{
		"email":    "a@b.com",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	token, _ := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, token)

	claims, err := f.auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, f.admins.byEmail["a@b.com"].ID, claims.AdminID)
}

func TestSigninWrongPassword(t *testing.T) {
	f := newAPIFixture(t)
	f.seedAdmin(t, "a@b.com")

	rec := f.doJSON(t, http.MethodPost, "/signin", "", map[string]string{
		"email":    "a@b.com",
		"password": "not-the-password",
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "incorrect creds", decodeBody(t, rec)["message"])
}

func TestSigninUnknownUser(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.doJSON(t, http.MethodPost, "/signin", "", map[string]string{
		"email":    "nobody@x.com",
		"password": "whatever",
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "user does not exist", decodeBody(t, rec)["message"])
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	f := newAPIFixture(t)
	f.seedAdmin(t, "a@b.com")

	rec := f.doJSON(t, http.MethodPost, "/signup", "", map[string]string{
		"firstName": "Alan",
		"lastName":  "Turing",
		"email":     "a@b.com",
		"password":  "secret",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
}
