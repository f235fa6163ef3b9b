package sessions

import (
	"context"
	"errors"

	"github.com/tutorhive/backend/internal/document"
	"gorm.io/gorm"
)

var errMissingDatabase = errors.New("sessions: database handle is required")

// statusRank drives the display ordering: approved sessions first, rejected
// second, everything else (pending included) last. The rank is derived in
// the query and never stored or returned.
const statusRank = "CASE status WHEN 'approved' THEN 1 WHEN 'rejected' THEN 2 ELSE 3 END"

// ServiceConfig describes the dependencies for the study session service.
type ServiceConfig struct {
	Database   *gorm.DB
	IDProvider document.IDProvider
}

// Service manages the studySession collection.
type Service struct {
	db  *gorm.DB
	ids document.IDProvider
}

// NewService constructs the study session service.
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

// List returns session documents, optionally filtered by tutor email and
// status, rank-ordered by status. Order within a rank is the store's
// natural order.
func (s *Service) List(ctx context.Context, tutorEmail, status string) ([]document.Fields, error) {
	query := s.db.WithContext(ctx).Model(&StudySession{})
	if tutorEmail != "" {
		query = query.Where("tutor_email = ?", tutorEmail)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var rows []StudySession
	if err := query.Order(statusRank).Find(&rows).Error; err != nil {
		return nil, err
	}
	return collectDocuments(rows)
}

// Get returns the session document with the given id, or nil.
func (s *Service) Get(ctx context.Context, id string) (document.Fields, error) {
	var row StudySession
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.Document()
}

// Create stores a new session document. A session starts pending unless the
// document says otherwise.
func (s *Service) Create(ctx context.Context, doc document.Fields) (document.Fields, error) {
	id, err := s.ids.NewID()
	if err != nil {
		return nil, err
	}
	extra, err := document.ToJSON(doc.Without("tutorEmail", "status"))
	if err != nil {
		return nil, err
	}

	status := doc.String("status")
	if status == "" {
		status = StatusPending
	}

	row := StudySession{
		ID:         id,
		TutorEmail: doc.String("tutorEmail"),
		Status:     status,
		Extra:      extra,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return row.Document()
}

// UpdateFields overwrites the supplied keys on the session with the given
// id and reports how many records changed.
func (s *Service) UpdateFields(ctx context.Context, id string, patch document.Fields) (int64, error) {
	var modified int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row StudySession
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
		if _, ok := patch["status"]; ok {
			row.Status = patch.String("status")
		}

		extra, err := document.FromJSON(row.Extra)
		if err != nil {
			return err
		}
		merged, err := document.ToJSON(extra.Merge(patch.Without("tutorEmail", "status")))
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

// Delete removes the session with the given id. Materials, bookings and
// ratings that reference it are left in place.
func (s *Service) Delete(ctx context.Context, id string) (int64, error) {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&StudySession{})
	return result.RowsAffected, result.Error
}

func collectDocuments(rows []StudySession) ([]document.Fields, error) {
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
