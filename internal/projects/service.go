package projects

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"badabuilder-backend/internal/grouping"
	"badabuilder-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MediaUploader uploads local files collected during the wizard. Project-level
// image failures are logged and skipped, never fatal to the create.
type MediaUploader interface {
	UploadImage(ctx context.Context, filePath string) (string, error)
	UploadBrochure(ctx context.Context, filePath string) (string, error)
}

type Service struct {
	DB       *gorm.DB
	Uploader MediaUploader
}

var validStatuses = map[string]bool{
	"pending": true,
	"live":    true,
	"closed":  true,
}

// CreateProjectWithHierarchy persists the compiled wizard submission in one
// transaction: project, towers (compile order preserved) and units. Partial
// trees never survive a failure.
func (s *Service) CreateProjectWithHierarchy(ctx context.Context, sub grouping.Submission) (string, error) {
	if sub.Project.Title == "" {
		return "", errors.New("Project title is required")
	}
	if sub.Project.MinBuyers <= 0 {
		return "", errors.New("Please specify Minimum Buyers")
	}

	var imageURLs []string
	if s.Uploader != nil {
		for _, path := range sub.ImagePaths {
			url, err := s.Uploader.UploadImage(ctx, path)
			if err != nil {
				log.Error().Err(err).Str("path", path).Msg("project image upload failed")
				continue
			}
			imageURLs = append(imageURLs, url)
		}
	}
	var brochureURL *string
	if s.Uploader != nil && sub.BrochurePath != "" {
		url, err := s.Uploader.UploadBrochure(ctx, sub.BrochurePath)
		if err != nil {
			log.Error().Err(err).Str("path", sub.BrochurePath).Msg("brochure upload failed")
		} else {
			brochureURL = &url
		}
	}

	project := buildProject(sub, imageURLs, brochureURL)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return fmt.Errorf("Failed to create project: %v", err)
		}
		for pos, ct := range sub.Towers {
			tower := &models.Tower{
				TowerID:       uuid.New(),
				ProjectID:     project.ProjectID,
				Name:          ct.Name,
				PropertyType:  ct.PropertyType,
				TotalFloors:   ct.TotalFloors,
				LayoutColumns: ct.LayoutColumns,
				LayoutRows:    ct.LayoutRows,
				Position:      pos,
			}
			if err := tx.Create(tower).Error; err != nil {
				return fmt.Errorf("Failed to create tower: %v", err)
			}
			for _, cu := range ct.Units {
				unit := &models.Unit{
					UnitID:               uuid.New(),
					TowerID:              tower.TowerID,
					UnitNumber:           cu.UnitNumber,
					UnitType:             cu.UnitType,
					FloorNumber:          cu.FloorNumber,
					Area:                 cu.Area,
					CarpetArea:           cu.CarpetArea,
					SuperBuiltUpArea:     cu.SuperBuiltUpArea,
					PricePerSqft:         cu.PricePerSqft,
					DiscountPricePerSqft: cu.DiscountPricePerSqft,
					Price:                cu.Price,
					PlotWidth:            cu.PlotWidth,
					PlotDepth:            cu.PlotDepth,
					ImageURL:             cu.ImageURL,
					Status:               models.UnitStatusAvailable,
				}
				if err := tx.Create(unit).Error; err != nil {
					return fmt.Errorf("Failed to create unit: %v", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return project.ProjectID.String(), nil
}

func buildProject(sub grouping.Submission, imageURLs []string, brochureURL *string) *models.Project {
	p := sub.Project

	project := &models.Project{
		ProjectID:   uuid.New(),
		Title:       p.Title,
		Developer:   p.Developer,
		Location:    p.Location,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		MapAddress:  p.MapAddress,
		Description: p.Description,
		Type:        p.Type,
		MinBuyers:   p.MinBuyers,
		Possession:  p.Possession,
		ReraNumber:  p.ReraNumber,
		PriceUnit:   p.PriceUnit,
		Currency:    p.Currency,
		OfferType:   p.OfferType,
		Status:      "pending",
		BrochureURL: brochureURL,
	}
	if p.Area > 0 {
		a := p.Area
		project.Area = &a
	}
	setIfPositive(&project.RegularPricePerSqft, p.RegularPricePerSqft)
	setIfPositive(&project.RegularPricePerSqftMax, p.RegularPricePerSqftMax)
	setIfPositive(&project.GroupPricePerSqft, p.GroupPricePerSqft)
	setIfPositive(&project.GroupPricePerSqftMax, p.GroupPricePerSqftMax)
	setIfPositive(&project.DiscountPercentage, p.DiscountPercentage)
	project.DiscountLabel = p.DiscountLabel

	// Derived headline figures: whole-project totals at the regular and group
	// rates, and the spread between them.
	if p.Area > 0 && p.RegularPricePerSqft > 0 {
		total := p.Area * p.RegularPricePerSqft
		project.RegularTotalPrice = &total
		project.OriginalPrice = &total
	}
	if p.Area > 0 && p.GroupPricePerSqft > 0 {
		total := p.Area * p.GroupPricePerSqft
		project.GroupPrice = &total
		project.DiscountedTotalPriceMin = &total
	}
	if project.OriginalPrice != nil && project.GroupPrice != nil {
		saved := *project.OriginalPrice - *project.GroupPrice
		project.Savings = &saved
		project.Discount = &saved
	}

	if b, err := json.Marshal(sub.Types); err == nil {
		project.PropertyTypes = datatypes.JSON(b)
	}
	if b, err := json.Marshal(sub.Configs); err == nil {
		project.PropertyConfigs = datatypes.JSON(b)
	}
	if imageURLs == nil {
		imageURLs = []string{}
	}
	if b, err := json.Marshal(imageURLs); err == nil {
		project.Images = datatypes.JSON(b)
	}
	return project
}

func setIfPositive(dst **float64, v float64) {
	if v > 0 {
		val := v
		*dst = &val
	}
}

// ListProjects returns projects newest first, optionally filtered by status.
func (s *Service) ListProjects(ctx context.Context, status string) ([]models.Project, error) {
	q := s.DB.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		if !validStatuses[status] {
			return nil, errors.New("Invalid status")
		}
		q = q.Where("status = ?", status)
	}
	var projects []models.Project
	if err := q.Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("Failed to fetch projects: %v", err)
	}
	return projects, nil
}

// GetFullHierarchy loads one project with its towers (compile order) and
// units (floor then unit number).
func (s *Service) GetFullHierarchy(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	if projectID == uuid.Nil {
		return nil, errors.New("project_id is required")
	}
	var project models.Project
	err := s.DB.WithContext(ctx).
		Preload("Towers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Towers.Units", func(db *gorm.DB) *gorm.DB {
			return db.Order("floor_number ASC, unit_number ASC")
		}).
		Where("project_id = ?", projectID).
		First(&project).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Project not found")
		}
		return nil, err
	}
	return &project, nil
}

// UpdateProjectStatus moves a project between pending, live and closed.
func (s *Service) UpdateProjectStatus(ctx context.Context, projectID uuid.UUID, status string) (*models.Project, error) {
	if !validStatuses[status] {
		return nil, errors.New("Invalid status")
	}
	var project models.Project
	if err := s.DB.WithContext(ctx).Where("project_id = ?", projectID).First(&project).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Project not found")
		}
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&project).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("Failed to update project: %v", err)
	}
	project.Status = status
	return &project, nil
}

// DeleteProject removes the project with its towers and units in one
// transaction.
func (s *Service) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	if projectID == uuid.Nil {
		return errors.New("project_id is required")
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Where("project_id = ?", projectID).First(&project).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New("Project not found")
			}
			return err
		}
		var towerIDs []uuid.UUID
		if err := tx.Model(&models.Tower{}).Where("project_id = ?", projectID).Pluck("tower_id", &towerIDs).Error; err != nil {
			return err
		}
		if len(towerIDs) > 0 {
			if err := tx.Where("tower_id IN ?", towerIDs).Delete(&models.Unit{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Tower{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
}
