package materials

import (
	"context"
	"errors"

	"github.com/tutorhive/backend/internal/document"
	"gorm.io/gorm"
)

var errMissingDatabase = errors.New("materials: database handle is required")

// ServiceConfig describes the dependencies for the session material service.
type ServiceConfig struct {
	Database   *gorm.DB
	IDProvider document.IDProvider
}

// Service manages the sessionMaterials collection.
type Service struct {
	db  *gorm.DB
	ids document.IDProvider
}

// NewService constructs the session material service.
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

// ListByTutor returns material documents for the tutor, or every material
// when the email is blank.
func (s *Service) ListByTutor(ctx context.Context, tutorEmail string) ([]document.Fields, error) {
	query := s.db.WithContext(ctx).Model(&SessionMaterial{})
	if tutorEmail != "" {
		query = query.Where("tutor_email = ?", tutorEmail)
	}

	var rows []SessionMaterial
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return collectDocuments(rows)
}

// ListBySession returns material documents attached to the study session.
func (s *Service) ListBySession(ctx context.Context, sessionID string) ([]document.Fields, error) {
	var rows []SessionMaterial
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return collectDocuments(rows)
}

// Get returns the material document with the given id, or nil.
func (s *Service) Get(ctx context.Context, id string) (document.Fields, error) {
	var row SessionMaterial
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.Document()
}

// Create stores a new material document.
func (s *Service) Create(ctx context.Context, doc document.Fields) (document.Fields, error) {
	id, err := s.ids.NewID()
	if err != nil {
		return nil, err
	}
	extra, err := document.ToJSON(doc.Without("tutorEmail", "sessionId"))
	if err != nil {
		return nil, err
	}

	row := SessionMaterial{
		ID:         id,
		TutorEmail: doc.String("tutorEmail"),
		SessionID:  doc.String("sessionId"),
		Extra:      extra,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return row.Document()
}

// UpdateFields overwrites the supplied keys on the material with the given
// id and reports how many records changed.
func (s *Service) UpdateFields(ctx context.Context, id string, patch document.Fields) (int64, error) {
	var modified int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row SessionMaterial
		err := tx.Where("id = ?", id).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if _, ok := patch["tutorEmail"]; ok {
			row.TutorEmail = patch.String("tutorEmail")
		}
		if _, ok := patch["sessionId"]; ok {
			row.SessionID = patch.String("sessionId")
		}

		extra, err := document.FromJSON(row.Extra)
		if err != nil {
			return err
		}
		merged, err := document.ToJSON(extra.Merge(patch.Without("tutorEmail", "sessionId")))
		if err != nil {
			return err
		}
		row.Extra = merged

		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		modified = 1
		return nil
	})
	return modified, err
}

// Delete removes the material with the given id.
func (s *Service) Delete(ctx context.Context, id string) (int64, error) {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&SessionMaterial{})
	return result.RowsAffected, result.Error
}

func collectDocuments(rows []SessionMaterial) ([]document.Fields, error) {
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
