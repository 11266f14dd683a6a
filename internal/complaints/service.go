package complaints

import (
	"context"
	"errors"
	"fmt"

	"badabuilder-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

var validStatuses = map[string]bool{
	"new":         true,
	"in_progress": true,
	"resolved":    true,
	"dismissed":   true,
}

type CreateComplaintInput struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (s *Service) CreateComplaint(ctx context.Context, userID uuid.UUID, in CreateComplaintInput) (*models.Complaint, error) {
	if userID == uuid.Nil {
		return nil, errors.New("Not authenticated")
	}
	if in.Subject == "" || in.Description == "" {
		return nil, errors.New("Subject and description are required")
	}
	complaint := &models.Complaint{
		ComplaintID: uuid.New(),
		UserID:      userID,
		Subject:     in.Subject,
		Description: in.Description,
		Category:    in.Category,
		Status:      "new",
	}
	if err := s.DB.WithContext(ctx).Create(complaint).Error; err != nil {
		return nil, fmt.Errorf("Failed to create complaint: %v", err)
	}
	return complaint, nil
}

func (s *Service) GetMyComplaints(ctx context.Context, userID uuid.UUID) ([]models.Complaint, error) {
	var complaints []models.Complaint
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&complaints).Error; err != nil {
		return nil, fmt.Errorf("Failed to fetch complaints: %v", err)
	}
	return complaints, nil
}

// UpdateStatus is admin-only; the admin note is overwritten when provided.
func (s *Service) UpdateStatus(ctx context.Context, complaintID uuid.UUID, status, adminNote string) (*models.Complaint, error) {
	if !validStatuses[status] {
		return nil, errors.New("Invalid complaint status")
	}
	var complaint models.Complaint
	if err := s.DB.WithContext(ctx).Where("complaint_id = ?", complaintID).First(&complaint).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Complaint not found")
		}
		return nil, err
	}
	updates := map[string]interface{}{"status": status}
	if adminNote != "" {
		updates["admin_note"] = adminNote
	}
	if err := s.DB.WithContext(ctx).Model(&complaint).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("Failed to update complaint: %v", err)
	}
	complaint.Status = status
	if adminNote != "" {
		complaint.AdminNote = adminNote
	}
	return &complaint, nil
}
