package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"signage-command-center/be/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthNoAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	w := ts.request(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "connected", resp["database"])
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	w := ts.request(t, http.MethodPost, "/register", "", gin.H{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		User UserResponse `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "viewer", created.User.Role)

	token := ts.login(t, "newuser")

	w = ts.request(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var me UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "newuser", me.Username)
}

func TestRegisterDuplicateConflict(t *testing.T) {
	ts := newTestServer(t)

	payload := gin.H{
		"username": "dupe",
		"email":    "dupe@example.com",
		"password": "secret123",
	}

	w := ts.request(t, http.MethodPost, "/register", "", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	// Duplicate username and duplicate email both conflict, in either order.
	w = ts.request(t, http.MethodPost, "/register", "", gin.H{
		"username": "dupe",
		"email":    "fresh@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.request(t, http.MethodPost, "/register", "", gin.H{
		"username": "fresh",
		"email":    "dupe@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.request(t, http.MethodPost, "/register", "", payload)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "alice", models.RoleViewer)

	w := ts.request(t, http.MethodPost, "/login", "", gin.H{
		"username": "alice",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.request(t, http.MethodPost, "/login", "", gin.H{
		"username": "ghost",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginSetsSessionCookieAndLogsActivity(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser(t, "bob", models.RoleClient)

	w := ts.request(t, http.MethodPost, "/login", "", gin.H{
		"username": "bob",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == "session_token" && c.Value != "" {
			found = true
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, found, "login must set the session cookie")

	var entries []models.ActivityLog
	require.NoError(t, ts.db.Where("user_id = ?", user.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, "user_login", entries[0].Action)
}

func TestLogoutWritesAuditEntry(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser(t, "carol", models.RoleViewer)
	token := ts.login(t, "carol")

	w := ts.request(t, http.MethodGet, "/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []models.ActivityLog
	require.NoError(t, ts.db.Where("user_id = ? AND action = ?", user.ID, "user_logout").Find(&entries).Error)
	assert.Len(t, entries, 1)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	ts := newTestServer(t)

	w := ts.request(t, http.MethodGet, "/api/locations", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.request(t, http.MethodGet, "/api/locations", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeactivatedAccountCannotUseToken(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser(t, "dan", models.RoleViewer)
	token := ts.login(t, "dan")

	require.NoError(t, ts.db.Model(user).Update("is_active", false).Error)

	w := ts.request(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
