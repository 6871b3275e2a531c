package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

var testSecret = []byte("test-secret")

func newAuthEnv(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := newTestStore(t)
	auth := NewAuthController(store, testSecret)
	r := gin.New()
	r.POST("/api/auth/register", auth.Register)
	r.POST("/api/auth/login", auth.Login)
	return r
}

func TestRegisterAndLogin(t *testing.T) {
	r := newAuthEnv(t)

	w := doRequest(t, r, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"username": "editor",
		"password": "hunter2",
	})
	mustStatus(t, w, http.StatusOK)
	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &body)
	if body.Token == "" {
		t.Fatalf("register must return a token")
	}

	w = doRequest(t, r, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"username": "editor",
		"password": "other",
	})
	mustStatus(t, w, http.StatusConflict)

	w = doRequest(t, r, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"username": "editor",
		"password": "hunter2",
	})
	mustStatus(t, w, http.StatusOK)

	w = doRequest(t, r, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"username": "editor",
		"password": "wrong",
	})
	mustStatus(t, w, http.StatusUnauthorized)

	w = doRequest(t, r, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"username": "nobody",
		"password": "irrelevant",
	})
	mustStatus(t, w, http.StatusUnauthorized)
}

func TestRegisterValidation(t *testing.T) {
	r := newAuthEnv(t)
	w := doRequest(t, r, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"username": "lonely",
	})
	mustStatus(t, w, http.StatusBadRequest)
}
