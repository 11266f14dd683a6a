package leads

import (
	"context"
	"errors"
	"fmt"

	"badabuilder-backend/internal/models"
	"badabuilder-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type CreateLeadInput struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	PropertyType  string `json:"property_type"`
	Message       string `json:"message"`
	PropertyTitle string `json:"property_title"`
	Source        string `json:"source"`
}

// CreateLead validates and stores a public enquiry.
func (s *Service) CreateLead(ctx context.Context, in CreateLeadInput) (*models.Lead, error) {
	if in.Name == "" || in.Email == "" || in.Phone == "" || in.PropertyType == "" {
		return nil, errors.New("Name, email, phone and property type are required")
	}
	if !validation.IsValidEmail(in.Email) {
		return nil, errors.New("Invalid Email")
	}
	if !validation.IsValidPhone(in.Phone) {
		return nil, errors.New("Invalid phone number")
	}
	source := in.Source
	if source == "" {
		source = "General"
	}
	lead := &models.Lead{
		LeadID:        uuid.New(),
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		PropertyType:  in.PropertyType,
		Message:       in.Message,
		PropertyTitle: in.PropertyTitle,
		Source:        source,
		Status:        "new",
	}
	if err := s.DB.WithContext(ctx).Create(lead).Error; err != nil {
		return nil, fmt.Errorf("Failed to create lead: %v", err)
	}
	return lead, nil
}

// GetAllLeads returns leads newest first.
func (s *Service) GetAllLeads(ctx context.Context) ([]models.Lead, error) {
	var leads []models.Lead
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("Failed to fetch leads: %v", err)
	}
	return leads, nil
}
