package services

import (
	"signage-command-center/be/apperrors"
	"signage-command-center/be/authz"
	"signage-command-center/be/models"

	"gorm.io/gorm"
)

type LocationService struct {
	db *gorm.DB
}

func NewLocationService(db *gorm.DB) *LocationService {
	return &LocationService{db: db}
}

type CreateLocationInput struct {
	Name        string
	Description string
	Address     string
	Latitude    *float64
	Longitude   *float64
	Status      models.LocationStatus
}

type UpdateLocationInput struct {
	Name        *string
	Description *string
	Address     *string
	Latitude    *float64
	Longitude   *float64
	Status      *models.LocationStatus
}

func (s *LocationService) Create(actor *models.User, in CreateLocationInput) (*models.Location, error) {
	if _, err := authorize(actor, authz.ResourceLocation, authz.ActionCreate); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.LocationActive
	}
	if !status.Valid() {
		return nil, apperrors.NewValidation("invalid location status: %s", status)
	}

	creatorID := actor.ID
	location := models.Location{
		Name:        in.Name,
		Description: in.Description,
		Address:     in.Address,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Status:      status,
		CreatedBy:   &creatorID,
	}

	if err := s.db.Create(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (s *LocationService) Get(id uint) (*models.Location, error) {
	var location models.Location
	if err := s.db.First(&location, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &location, nil
}

func (s *LocationService) List() ([]models.Location, error) {
	var locations []models.Location
	if err := s.db.Order("created_at DESC").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (s *LocationService) Update(actor *models.User, id uint, in UpdateLocationInput) (*models.Location, error) {
	if _, err := authorize(actor, authz.ResourceLocation, authz.ActionUpdate); err != nil {
		return nil, err
	}

	location, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		location.Name = *in.Name
	}
	if in.Description != nil {
		location.Description = *in.Description
	}
	if in.Address != nil {
		location.Address = *in.Address
	}
	if in.Latitude != nil {
		location.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		location.Longitude = in.Longitude
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, apperrors.NewValidation("invalid location status: %s", *in.Status)
		}
		location.Status = *in.Status
	}

	if err := s.db.Save(location).Error; err != nil {
		return nil, err
	}
	return location, nil
}

func (s *LocationService) Delete(actor *models.User, id uint) error {
	if _, err := authorize(actor, authz.ResourceLocation, authz.ActionDelete); err != nil {
		return err
	}

	location, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.db.Delete(location).Error
}
