package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignInIssuesTokens(t *testing.T) {
	c := NewAuthController(newMockAuthRepo())

	rec, env := doJSON(t, c.SignIn, http.MethodPost, "/api/auth/signin", map[string]string{
		"email": "a@b.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var pair tokenPair
	decodeData(t, env, &pair)
	assert.NotEmpty(t, pair.Token)
	assert.NotEmpty(t, pair.Refresh)
	assert.Equal(t, "a@b.com", pair.User.Email)
}

func TestSignInWrongPasswordKeepsProviderMessage(t *testing.T) {
	c := NewAuthController(newMockAuthRepo())

	rec, env := doJSON(t, c.SignIn, http.MethodPost, "/api/auth/signin", map[string]string{
		"email": "a@b.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid email or password", env.Message)
}

func TestSignInValidatesInput(t *testing.T) {
	c := NewAuthController(newMockAuthRepo())

	rec, env := doJSON(t, c.SignIn, http.MethodPost, "/api/auth/signin", map[string]string{
		"email": "not-an-email", "password": "secret1",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Errors, "email")
}

func TestSignUpCreatesAccount(t *testing.T) {
	c := NewAuthController(newMockAuthRepo())

	rec, env := doJSON(t, c.SignUp, http.MethodPost, "/api/auth/signup", map[string]string{
		"email": "new@b.com", "password": "longenough", "name": "Ravi",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var pair tokenPair
	decodeData(t, env, &pair)
	assert.Equal(t, "new@b.com", pair.User.Email)
	assert.NotEmpty(t, pair.Token)
}

func TestSignUpRejectsShortPassword(t *testing.T) {
	c := NewAuthController(newMockAuthRepo())

	rec, env := doJSON(t, c.SignUp, http.MethodPost, "/api/auth/signup", map[string]string{
		"email": "new@b.com", "password": "tiny", "name": "Ravi",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Errors, "password")
}

func TestSignUpDuplicateEmailKeepsProviderMessage(t *testing.T) {
	c := NewAuthController(newMockAuthRepo())

	rec, env := doJSON(t, c.SignUp, http.MethodPost, "/api/auth/signup", map[string]string{
		"email": "a@b.com", "password": "longenough", "name": "Ravi",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "an account with this email already exists", env.Message)
}

func TestMeWithoutTokenIsUnauthorized(t *testing.T) {
	c := NewAuthController(newMockAuthRepo())

	rec, _ := doJSON(t, c.Me, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
