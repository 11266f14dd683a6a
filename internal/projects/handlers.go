package projects

import (
	"badabuilder-backend/internal/grouping"
	"badabuilder-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

var statusMap = map[string]int{
	"Project not found":             404,
	"Invalid status":                400,
	"project_id is required":        400,
	"Project title is required":     400,
	"Please specify Minimum Buyers": 400,
}

func statusFor(err error) int {
	if code, ok := statusMap[err.Error()]; ok {
		return code
	}
	return 500
}

// CreateProject POST /api/v1/grouping/create-project — direct submission
// without the wizard (imports, scripted fixtures).
func (h *Handlers) CreateProject(c *fiber.Ctx) error {
	var sub grouping.Submission
	if err := c.BodyParser(&sub); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	projectID, err := h.Service.CreateProjectWithHierarchy(c.Context(), sub)
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.SuccessCreated(c, "Project created", fiber.Map{"project_id": projectID}, nil)
}

// ListProjects GET /api/v1/grouping/get-all-projects?status=live
func (h *Handlers) ListProjects(c *fiber.Ctx) error {
	projects, err := h.Service.ListProjects(c.Context(), c.Query("status"))
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.Success(c, "Projects fetched", projects, nil)
}

// GetProject GET /api/v1/grouping/get-project/:project_id — full tower/unit hierarchy.
func (h *Handlers) GetProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("project_id"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	project, err := h.Service.GetFullHierarchy(c.Context(), id)
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.Success(c, "Project fetched", project, nil)
}

// UpdateStatus PATCH /api/v1/grouping/update-status/:project_id
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("project_id"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil || body.Status == "" {
		return response.Error(c, "status is required", 400, nil)
	}
	project, err := h.Service.UpdateProjectStatus(c.Context(), id, body.Status)
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.Success(c, "Project status updated", project, nil)
}

// DeleteProject DELETE /api/v1/grouping/delete-project/:project_id
func (h *Handlers) DeleteProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("project_id"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	if err := h.Service.DeleteProject(c.Context(), id); err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.Success(c, "Project deleted", nil, nil)
}
