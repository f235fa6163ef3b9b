package ratings

import (
	"context"
	"errors"

	"github.com/tutorhive/backend/internal/document"
	"gorm.io/gorm"
)

var errMissingDatabase = errors.New("ratings: database handle is required")

// ServiceConfig describes the dependencies for the rating service.
type ServiceConfig struct {
	Database   *gorm.DB
	IDProvider document.IDProvider
}

// Service manages the ratings collection.
type Service struct {
	db  *gorm.DB
	ids document.IDProvider
}

// NewService constructs the rating service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Database == nil {
		return nil, errMissingDatabase
	}
	ids := cfg.IDProvider
	if ids == nil {
		ids = document.NewUUIDProvider()
	}
	return &Service{db: cfg.Database, ids: ids}, nil
}

// ListBySession returns rating documents for the study session.
func (s *Service) ListBySession(ctx context.Context, sessionID string) ([]document.Fields, error) {
	var rows []Rating
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	docs := make([]document.Fields, 0, len(rows))
	for _, row := range rows {
		doc, err := row.Document()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Create stores a new rating document.
func (s *Service) Create(ctx context.Context, doc document.Fields) (document.Fields, error) {
	id, err := s.ids.NewID()
	if err != nil {
		return nil, err
	}
	extra, err := document.ToJSON(doc.Without("sessionId"))
	if err != nil {
		return nil, err
	}

	row := Rating{
		ID:        id,
		SessionID: doc.String("sessionId"),
		Extra:     extra,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return row.Document()
}
