package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	mid "project-service/internal/middleware"
	"project-service/internal/model"
	"project-service/pkg/config"
	"project-service/pkg/database"
	"project-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Metrics register against the default registry, so initialize once
	// for the whole package
	prometheus.InitMetrics(&config.Config{
		Metrics: config.MetricsConfig{Prefix: "project_test"},
	})
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) *echo.Echo {
	cfg := &config.Config{
		Server: config.ServerConfig{Env: "test"},
		DB: config.DatabaseConfig{
			Driver:          "sqlite",
			SQLitePath:      ":memory:",
			MaxIdleConns:    1,
			MaxOpenConns:    1,
			ConnMaxLifetime: time.Hour,
		},
	}
	require.NoError(t, database.InitDB(cfg))

	e := echo.New()
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	e.GET("/health", HealthCheck)

	api := e.Group("/api", mid.OrganizationMiddleware)
	api.GET("/organization", GetOrganization)
	api.GET("/projects", ListProjects)
	api.POST("/projects", CreateProject)
	api.GET("/projects/:id", GetProject)
	api.PUT("/projects/:id", UpdateProject)
	api.DELETE("/projects/:id", DeleteProject)
	api.GET("/projects/:id/tasks", ListTasks)
	api.GET("/projects/:id/stats", GetProjectStats)
	api.POST("/tasks", CreateTask)
	api.GET("/tasks/:id", GetTask)
	api.PUT("/tasks/:id", UpdateTask)
	api.DELETE("/tasks/:id", DeleteTask)
	api.GET("/tasks/:id/comments", ListComments)
	api.POST("/comments", AddComment)
	api.PUT("/comments/:id", UpdateComment)
	api.DELETE("/comments/:id", DeleteComment)
	api.GET("/stats/organization", GetOrganizationStats)
	api.GET("/stats/projects", ListAllProjectStats)

	return e
}

func seedOrg(t *testing.T, name, slug string) *model.Organization {
	org := &model.Organization{Name: name, Slug: slug, ContactEmail: slug + "@example.com"}
	require.NoError(t, database.GetDB().Create(org).Error)
	return org
}

func seedProject(t *testing.T, org *model.Organization, name string) *model.Project {
	project := &model.Project{
		OrganizationID: org.ID,
		Name:           name,
		Status:         model.ProjectStatusPlanning,
	}
	require.NoError(t, database.GetDB().Create(project).Error)
	return project
}

func seedTask(t *testing.T, project *model.Project, title, status string) *model.Task {
	task := &model.Task{
		ProjectID: project.ID,
		Title:     title,
		Status:    status,
		Priority:  model.TaskPriorityMedium,
	}
	require.NoError(t, database.GetDB().Create(task).Error)
	return task
}

func doRequest(e *echo.Echo, method, path, org string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if org != "" {
		req.Header.Set(mid.OrganizationHeader, org)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestHealthCheck(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	assert.Equal(t, "ok", payload["status"])
	assert.Equal(t, "project-service", payload["service"])
	assert.NotEmpty(t, payload["timestamp"])
}

func TestMissingHeader_QueriesEmptyAndMutationsFail(t *testing.T) {
	e := newTestServer(t)
	org := seedOrg(t, "Acme", "acme")
	seedProject(t, org, "Website")

	// Queries without tenant context return empty results
	rec := doRequest(e, http.MethodGet, "/api/projects", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = doRequest(e, http.MethodGet, "/api/organization", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", string(bytes.TrimSpace(rec.Body.Bytes())))

	// Mutations without tenant context fail with the canonical message
	rec = doRequest(e, http.MethodPost, "/api/projects", "", map[string]interface{}{
		"name": "Sneaky Project",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeBody(t, rec)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "No organization header", payload["message"])
}

func TestUnknownOrganizationHeader(t *testing.T) {
	e := newTestServer(t)
	seedOrg(t, "Acme", "acme")

	rec := doRequest(e, http.MethodGet, "/api/projects", "initech", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	payload := decodeBody(t, rec)
	assert.Equal(t, "Organization not found", payload["error"])
}

func TestAmbiguousOrganizationHeader(t *testing.T) {
	e := newTestServer(t)
	seedOrg(t, "Umbrella", "umbrella-us")
	seedOrg(t, "Umbrella", "umbrella-eu")

	rec := doRequest(e, http.MethodGet, "/api/projects", "Umbrella", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	payload := decodeBody(t, rec)
	assert.Equal(t, "Multiple organizations found", payload["error"])
}

func TestResolvedOrganizationEchoedInResponse(t *testing.T) {
	e := newTestServer(t)
	seedOrg(t, "Acme Corporation", "acme")

	rec := doRequest(e, http.MethodGet, "/api/organization", "acme", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "acme", rec.Header().Get("X-Current-Organization"))

	payload := decodeBody(t, rec)
	assert.Equal(t, "Acme Corporation", payload["name"])
	assert.Equal(t, "acme", payload["slug"])
}

func TestCreateProjectRoundTrip(t *testing.T) {
	e := newTestServer(t)
	seedOrg(t, "Acme", "acme")

	rec := doRequest(e, http.MethodPost, "/api/projects", "acme", map[string]interface{}{
		"name":        "Website Redesign",
		"description": "new company site",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Project created", payload["message"])

	created := payload["project"].(map[string]interface{})
	assert.Equal(t, "Website Redesign", created["name"])
	assert.Equal(t, "planning", created["status"])

	id := uint(created["id"].(float64))
	rec = doRequest(e, http.MethodGet, "/api/projects/"+itoa(id), "acme", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody(t, rec)
	assert.Equal(t, "Website Redesign", got["name"])
	assert.Equal(t, "new company site", got["description"])
	assert.Equal(t, "planning", got["status"])
}

func TestCreateProject_NameRequired(t *testing.T) {
	e := newTestServer(t)
	seedOrg(t, "Acme", "acme")

	rec := doRequest(e, http.MethodPost, "/api/projects", "acme", map[string]interface{}{
		"description": "nameless",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCrossTenantProjectReadsAsMissing(t *testing.T) {
	e := newTestServer(t)
	seedOrg(t, "Acme", "acme")
	globex := seedOrg(t, "Globex", "globex")
	project := seedProject(t, globex, "Globex Internal")

	rec := doRequest(e, http.MethodGet, "/api/projects/"+itoa(project.ID), "acme", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", string(bytes.TrimSpace(rec.Body.Bytes())))

	// Mutations against the foreign project fail as not found
	rec = doRequest(e, http.MethodDelete, "/api/projects/"+itoa(project.ID), "acme", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeBody(t, rec)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Project not found", payload["message"])
}

func TestTaskAndCommentFlow(t *testing.T) {
	e := newTestServer(t)
	org := seedOrg(t, "Acme", "acme")
	project := seedProject(t, org, "Website")

	// Create a task with defaults
	rec := doRequest(e, http.MethodPost, "/api/tasks", "acme", map[string]interface{}{
		"project_id": project.ID,
		"title":      "Design mockups",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeBody(t, rec)
	require.Equal(t, true, payload["success"])
	task := payload["task"].(map[string]interface{})
	assert.Equal(t, "todo", task["status"])
	assert.Equal(t, "medium", task["priority"])
	taskID := uint(task["id"].(float64))

	// Required fields for comments are rejected before store access
	rec = doRequest(e, http.MethodPost, "/api/comments", "acme", map[string]interface{}{
		"task_id": taskID,
		"author":  "jane",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Add and update a comment
	rec = doRequest(e, http.MethodPost, "/api/comments", "acme", map[string]interface{}{
		"task_id": taskID,
		"author":  "jane",
		"content": "first pass looks good",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	payload = decodeBody(t, rec)
	require.Equal(t, true, payload["success"])
	commentID := uint(payload["comment"].(map[string]interface{})["id"].(float64))

	rec = doRequest(e, http.MethodPut, "/api/comments/"+itoa(commentID), "acme", map[string]interface{}{
		"content": "revised after review",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	payload = decodeBody(t, rec)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "revised after review", payload["comment"].(map[string]interface{})["content"])

	// Partial task update leaves other fields alone
	rec = doRequest(e, http.MethodPut, "/api/tasks/"+itoa(taskID), "acme", map[string]interface{}{
		"status": "done",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	payload = decodeBody(t, rec)
	task = payload["task"].(map[string]interface{})
	assert.Equal(t, "done", task["status"])
	assert.Equal(t, "Design mockups", task["title"])

	// Deleting the task confirms with its title and removes comments
	rec = doRequest(e, http.MethodDelete, "/api/tasks/"+itoa(taskID), "acme", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	payload = decodeBody(t, rec)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Task 'Design mockups' deleted successfully", payload["message"])

	var commentCount int64
	require.NoError(t, database.GetDB().Model(&model.TaskComment{}).Count(&commentCount).Error)
	assert.EqualValues(t, 0, commentCount)
}

func TestDeleteProjectConfirmationMessage(t *testing.T) {
	e := newTestServer(t)
	org := seedOrg(t, "Acme", "acme")
	project := seedProject(t, org, "Old Website")

	rec := doRequest(e, http.MethodDelete, "/api/projects/"+itoa(project.ID), "acme", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeBody(t, rec)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Project 'Old Website' deleted successfully", payload["message"])
}

func TestProjectStatsEndpoint(t *testing.T) {
	e := newTestServer(t)
	org := seedOrg(t, "Acme", "acme")
	project := seedProject(t, org, "Website")
	seedTask(t, project, "a", model.TaskStatusDone)
	seedTask(t, project, "b", model.TaskStatusDone)
	seedTask(t, project, "c", model.TaskStatusInProgress)
	seedTask(t, project, "d", model.TaskStatusTodo)

	rec := doRequest(e, http.MethodGet, "/api/projects/"+itoa(project.ID)+"/stats", "acme", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	assert.EqualValues(t, 4, payload["total_tasks"])
	assert.EqualValues(t, 2, payload["completed_tasks"])
	assert.EqualValues(t, 1, payload["in_progress_tasks"])
	assert.EqualValues(t, 1, payload["todo_tasks"])
	assert.InDelta(t, 0.5, payload["completion_rate"].(float64), 1e-9)
}

func TestOrganizationStatsEndpoint(t *testing.T) {
	e := newTestServer(t)
	org := seedOrg(t, "Acme", "acme")
	project := seedProject(t, org, "Website")
	seedTask(t, project, "a", model.TaskStatusDone)
	seedTask(t, project, "b", model.TaskStatusTodo)

	rec := doRequest(e, http.MethodGet, "/api/stats/organization", "acme", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	assert.EqualValues(t, 1, payload["total_projects"])
	assert.EqualValues(t, 2, payload["total_tasks"])
	assert.EqualValues(t, 1, payload["completed_tasks"])
	assert.InDelta(t, 0.5, payload["overall_completion_rate"].(float64), 1e-9)

	// Without tenant context the stats queries return an absent result
	rec = doRequest(e, http.MethodGet, "/api/stats/organization", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", string(bytes.TrimSpace(rec.Body.Bytes())))

	rec = doRequest(e, http.MethodGet, "/api/stats/projects", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
