package service

import (
	"context"

	"github.com/Abdulsamad25/apartment-rentals/internal/platform/logger"
)

// PhotoStorage is the blob-store boundary for apartment images.
type PhotoStorage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

// PhotoService uploads an apartment photo and points the catalog record
// at the stored URL.
type PhotoService struct {
	storage PhotoStorage
	catalog *CatalogService
	log     logger.Logger
}

func NewPhotoService(storage PhotoStorage, catalog *CatalogService, log logger.Logger) *PhotoService {
	return &PhotoService{storage: storage, catalog: catalog, log: log}
}

func (s *PhotoService) UploadPhoto(ctx context.Context, apartmentID, fileName string, data []byte) (string, error) {
	url, err := s.storage.Upload(ctx, fileName, data)
	if err != nil {
		return "", err
	}
	if err := s.catalog.SetImageURL(ctx, apartmentID, url); err != nil {
		s.log.Warnf("PhotoService.UploadPhoto: uploaded %s but apartment %s not found", url, apartmentID)
		return "", err
	}
	return url, nil
}
