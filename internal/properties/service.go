package properties

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"badabuilder-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// Property types with a bedroom count; plots and commercial spaces have none.
var bhkTypes = map[string]bool{
	"flat":  true,
	"house": true,
	"villa": true,
}

var validOwnerTypes = map[string]bool{
	"individual": true,
	"developer":  true,
}

type SearchFilters struct {
	Query    string
	Type     string
	Bhk      string
	Location string
}

// Search returns active listings matching all supplied filters. Text filters
// are case-insensitive substring matches.
func (s *Service) Search(ctx context.Context, f SearchFilters) ([]models.Property, error) {
	q := s.DB.WithContext(ctx).Where("status = ?", "active")
	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(location) LIKE ? OR LOWER(description) LIKE ?", like, like, like)
	}
	if f.Type != "" {
		q = q.Where("LOWER(type) = ?", strings.ToLower(f.Type))
	}
	if f.Bhk != "" {
		q = q.Where("bhk = ?", f.Bhk)
	}
	if f.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(f.Location)+"%")
	}

	var props []models.Property
	if err := q.Order("created_at DESC").Find(&props).Error; err != nil {
		return nil, fmt.Errorf("Failed to search properties: %v", err)
	}
	return props, nil
}

func (s *Service) GetProperty(ctx context.Context, propertyID uuid.UUID) (*models.Property, error) {
	var prop models.Property
	if err := s.DB.WithContext(ctx).Where("property_id = ?", propertyID).First(&prop).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Property not found")
		}
		return nil, err
	}
	return &prop, nil
}

type PostPropertyInput struct {
	OwnerType   string  `json:"owner_type"`
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	Bhk         string  `json:"bhk"`
	Description string  `json:"description"`
	Facilities  string  `json:"facilities"`
	ImageURL    string  `json:"image"`

	CompanyName    string `json:"company_name"`
	ProjectName    string `json:"project_name"`
	TotalUnits     *int   `json:"total_units"`
	CompletionDate string `json:"completion_date"`
	ReraNumber     string `json:"rera_number"`
}

func validatePost(in PostPropertyInput) error {
	if !validOwnerTypes[in.OwnerType] {
		return errors.New("Owner type must be individual or developer")
	}
	if in.Title == "" || in.Type == "" || in.Location == "" {
		return errors.New("Title, type and location are required")
	}
	if in.Price <= 0 {
		return errors.New("Price must be positive")
	}
	if in.Bhk != "" && !bhkTypes[strings.ToLower(in.Type)] {
		return errors.New("BHK applies only to flats, houses and villas")
	}
	if in.OwnerType == "developer" && (in.CompanyName == "" || in.ProjectName == "") {
		return errors.New("Company and project name are required for developer listings")
	}
	return nil
}

// PostProperty creates a listing for a subscribed user. The subscription
// check reads the user row so an expired plan fails even with a live session.
func (s *Service) PostProperty(ctx context.Context, ownerID uuid.UUID, in PostPropertyInput) (*models.Property, error) {
	if ownerID == uuid.Nil {
		return nil, errors.New("Not authenticated")
	}

	var owner models.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", ownerID).First(&owner).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("User not found")
		}
		return nil, err
	}
	if !owner.HasActiveSubscription(time.Now()) {
		return nil, errors.New("Active subscription required to post properties")
	}

	if err := validatePost(in); err != nil {
		return nil, err
	}

	prop := &models.Property{
		PropertyID:     uuid.New(),
		OwnerID:        ownerID,
		OwnerType:      in.OwnerType,
		Title:          in.Title,
		Type:           in.Type,
		Location:       in.Location,
		Price:          in.Price,
		Bhk:            in.Bhk,
		Description:    in.Description,
		Facilities:     in.Facilities,
		ImageURL:       in.ImageURL,
		CompanyName:    in.CompanyName,
		ProjectName:    in.ProjectName,
		TotalUnits:     in.TotalUnits,
		CompletionDate: in.CompletionDate,
		ReraNumber:     in.ReraNumber,
		Status:         "active",
	}
	if err := s.DB.WithContext(ctx).Create(prop).Error; err != nil {
		return nil, fmt.Errorf("Failed to post property: %v", err)
	}
	return prop, nil
}
