package notes

import (
	"context"
	"errors"

	"github.com/tutorhive/backend/internal/document"
	"gorm.io/gorm"
)

var errMissingDatabase = errors.New("notes: database handle is required")

// ServiceConfig describes the dependencies for the note service.
type ServiceConfig struct {
	Database   *gorm.DB
	IDProvider document.IDProvider
}

// Service manages the notes collection.
type Service struct {
	db  *gorm.DB
	ids document.IDProvider
}

// NewService constructs the note service.
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

// ListByEmail returns note documents owned by the email.
func (s *Service) ListByEmail(ctx context.Context, email string) ([]document.Fields, error) {
	var rows []Note
	err := s.db.WithContext(ctx).Where("email = ?", email).Find(&rows).Error
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

// Create stores a new note document.
func (s *Service) Create(ctx context.Context, doc document.Fields) (document.Fields, error) {
	id, err := s.ids.NewID()
	if err != nil {
		return nil, err
	}
	extra, err := document.ToJSON(doc.Without("email"))
	if err != nil {
		return nil, err
	}

	row := Note{
		ID:    id,
		Email: doc.String("email"),
		Extra: extra,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return row.Document()
}

// UpdateFields overwrites the supplied keys on the note with the given id
// and reports how many records changed.
func (s *Service) UpdateFields(ctx context.Context, id string, patch document.Fields) (int64, error) {
	var modified int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row Note
		err := tx.Where("id = ?", id).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if _, ok := patch["email"]; ok {
			row.Email = patch.String("email")
		}

		extra, err := document.FromJSON(row.Extra)
		if err != nil {
			return err
		}
		merged, err := document.ToJSON(extra.Merge(patch.Without("email")))
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

// Delete removes the note with the given id.
func (s *Service) Delete(ctx context.Context, id string) (int64, error) {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Note{})
	return result.RowsAffected, result.Error
}
