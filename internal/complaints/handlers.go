package complaints

import (
	"badabuilder-backend/internal/middleware"
	"badabuilder-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

var statusMap = map[string]int{
	"Subject and description are required": 400,
	"Invalid complaint status":             400,
	"Complaint not found":                  404,
	"Not authenticated":                    401,
}

func statusFor(err error) int {
	if code, ok := statusMap[err.Error()]; ok {
		return code
	}
	return 500
}

// CreateComplaint POST /api/v1/complaints/create-complaint
func (h *Handlers) CreateComplaint(c *fiber.Ctx) error {
	var in CreateComplaintInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	complaint, err := h.Service.CreateComplaint(c.Context(), middleware.ActorID(c), in)
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.SuccessCreated(c, "Complaint filed", complaint, nil)
}

// GetMyComplaints GET /api/v1/complaints/get-my-complaints
func (h *Handlers) GetMyComplaints(c *fiber.Ctx) error {
	complaints, err := h.Service.GetMyComplaints(c.Context(), middleware.ActorID(c))
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.Success(c, "Complaints fetched", complaints, nil)
}

// UpdateStatus PATCH /api/v1/complaints/update-status
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	var body struct {
		ComplaintID string `json:"complaint_id"`
		Status      string `json:"status"`
		AdminNote   string `json:"admin_note"`
	}
	if err := c.BodyParser(&body); err != nil || body.ComplaintID == "" {
		return response.Error(c, "complaint_id is required", 400, nil)
	}
	complaintID, err := uuid.Parse(body.ComplaintID)
	if err != nil {
		return response.Error(c, "Invalid complaint_id", 400, nil)
	}
	complaint, err := h.Service.UpdateStatus(c.Context(), complaintID, body.Status, body.AdminNote)
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.Success(c, "Complaint updated", complaint, nil)
}
