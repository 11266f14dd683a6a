package projects

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlersTest(t *testing.T) (*Handlers, *Service) {
	svc, _ := setupProjectTest(t)
	return &Handlers{Service: svc}, svc
}

func TestCreateProjectHandler(t *testing.T) {
	h, svc := setupHandlersTest(t)
	app := fiber.New()
	app.Post("/api/v1/grouping/create-project", h.CreateProject)

	payload, err := json.Marshal(sampleSubmission())
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/v1/grouping/create-project", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	projectID, err := uuid.Parse(body.Data["project_id"].(string))
	require.NoError(t, err)

	proj, err := svc.GetFullHierarchy(context.Background(), projectID)
	require.NoError(t, err)
	assert.Equal(t, "Skyline Heights", proj.Title)
}

func TestCreateProjectHandler_MissingTitle(t *testing.T) {
	h, _ := setupHandlersTest(t)
	app := fiber.New()
	app.Post("/api/v1/grouping/create-project", h.CreateProject)

	sub := sampleSubmission()
	sub.Project.Title = ""
	payload, _ := json.Marshal(sub)
	req := httptest.NewRequest("POST", "/api/v1/grouping/create-project", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListProjects_FiltersByStatus(t *testing.T) {
	h, svc := setupHandlersTest(t)

	id, err := svc.CreateProjectWithHierarchy(context.Background(), sampleSubmission())
	require.NoError(t, err)
	_, err = svc.UpdateProjectStatus(context.Background(), uuid.MustParse(id), "live")
	require.NoError(t, err)

	sub := sampleSubmission()
	sub.Project.Title = "Green Acres"
	_, err = svc.CreateProjectWithHierarchy(context.Background(), sub)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/api/v1/grouping/get-all-projects", h.ListProjects)

	req := httptest.NewRequest("GET", "/api/v1/grouping/get-all-projects?status=live", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Skyline Heights", body.Data[0]["title"])
}

func TestListProjects_InvalidStatus(t *testing.T) {
	h, _ := setupHandlersTest(t)
	app := fiber.New()
	app.Get("/api/v1/grouping/get-all-projects", h.ListProjects)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/grouping/get-all-projects?status=archived", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetProject_InvalidID(t *testing.T) {
	h, _ := setupHandlersTest(t)
	app := fiber.New()
	app.Get("/api/v1/grouping/get-project/:project_id", h.GetProject)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/grouping/get-project/not-a-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetProject_NotFound(t *testing.T) {
	h, _ := setupHandlersTest(t)
	app := fiber.New()
	app.Get("/api/v1/grouping/get-project/:project_id", h.GetProject)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/grouping/get-project/"+uuid.New().String(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateStatus_Success(t *testing.T) {
	h, svc := setupHandlersTest(t)
	id, err := svc.CreateProjectWithHierarchy(context.Background(), sampleSubmission())
	require.NoError(t, err)

	app := fiber.New()
	app.Patch("/api/v1/grouping/update-status/:project_id", h.UpdateStatus)

	body, _ := json.Marshal(map[string]string{"status": "live"})
	req := httptest.NewRequest("PATCH", "/api/v1/grouping/update-status/"+id, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestDeleteProject_Handler(t *testing.T) {
	h, svc := setupHandlersTest(t)
	id, err := svc.CreateProjectWithHierarchy(context.Background(), sampleSubmission())
	require.NoError(t, err)

	app := fiber.New()
	app.Delete("/api/v1/grouping/delete-project/:project_id", h.DeleteProject)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/v1/grouping/delete-project/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/api/v1/grouping/delete-project/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
