package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"signage-command-center/be/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewerCannotCreateLocation(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "viewer1", models.RoleViewer)
	token := ts.login(t, "viewer1")

	// Payload is perfectly valid; the role alone must reject it.
	w := ts.request(t, http.MethodPost, "/api/locations", token, gin.H{
		"name":      "Downtown Plaza",
		"latitude":  40.7128,
		"longitude": -74.0060,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestClientCannotCreateLocation(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "client1", models.RoleClient)
	token := ts.login(t, "client1")

	w := ts.request(t, http.MethodPost, "/api/locations", token, gin.H{"name": "Nope"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminCreatesLocationWithCoordinates(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "admin", models.RoleAdmin)
	token := ts.login(t, "admin")

	w := ts.request(t, http.MethodPost, "/api/locations", token, gin.H{
		"name":      "Downtown Plaza",
		"address":   "123 Main St",
		"latitude":  40.7128,
		"longitude": -74.0060,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Location
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	w = ts.request(t, http.MethodGet, fmt.Sprintf("/api/locations/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Location
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.NotNil(t, got.Latitude)
	require.NotNil(t, got.Longitude)
	assert.Equal(t, 40.7128, *got.Latitude)
	assert.Equal(t, -74.0060, *got.Longitude)
	assert.Equal(t, models.LocationActive, got.Status)
}

func TestAnyRoleCanReadLocations(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "admin", models.RoleAdmin)
	adminToken := ts.login(t, "admin")

	w := ts.request(t, http.MethodPost, "/api/locations", adminToken, gin.H{"name": "Mall"})
	require.Equal(t, http.StatusCreated, w.Code)

	for _, u := range []struct {
		name string
		role models.Role
	}{
		{"clientr", models.RoleClient},
		{"viewerr", models.RoleViewer},
	} {
		ts.createUser(t, u.name, u.role)
		token := ts.login(t, u.name)

		w := ts.request(t, http.MethodGet, "/api/locations", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var locations []models.Location
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &locations))
		assert.Len(t, locations, 1)
	}
}

func TestLocationBadStatusRejected(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "admin", models.RoleAdmin)
	token := ts.login(t, "admin")

	w := ts.request(t, http.MethodPost, "/api/locations", token, gin.H{
		"name":   "Broken",
		"status": "closed",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLocationNotFoundResponse(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "admin", models.RoleAdmin)
	token := ts.login(t, "admin")

	w := ts.request(t, http.MethodGet, "/api/locations/999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.request(t, http.MethodGet, "/api/locations/not-a-number", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLocationUpdateAndDelete(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "admin", models.RoleAdmin)
	token := ts.login(t, "admin")

	w := ts.request(t, http.MethodPost, "/api/locations", token, gin.H{"name": "Old Name"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Location
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = ts.request(t, http.MethodPut, fmt.Sprintf("/api/locations/%d", created.ID), token, gin.H{
		"name":   "New Name",
		"status": "maintenance",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Location
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, models.LocationMaintenance, updated.Status)

	w = ts.request(t, http.MethodDelete, fmt.Sprintf("/api/locations/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.request(t, http.MethodGet, fmt.Sprintf("/api/locations/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
