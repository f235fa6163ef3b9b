package bookings

import (
	"context"
	"errors"

	"github.com/tutorhive/backend/internal/document"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrDuplicateBooking indicates the student has already booked the
	// session.
	ErrDuplicateBooking = errors.New("bookings: session already booked by student")

	errMissingDatabase = errors.New("bookings: database handle is required")
)

// ServiceConfig describes the dependencies for the booking service.
type ServiceConfig struct {
	Database   *gorm.DB
	IDProvider document.IDProvider
}

// Service manages the bookedSessions collection.
type Service struct {
	db  *gorm.DB
	ids document.IDProvider
}

// NewService constructs the booking service.
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

// Create stores a new booking. The insert is conditional on the
// (studentEmail, sessionId) unique index, so two concurrent bookings for
// the same pair cannot both succeed.
func (s *Service) Create(ctx context.Context, doc document.Fields) (document.Fields, error) {
	id, err := s.ids.NewID()
	if err != nil {
		return nil, err
	}
	extra, err := document.ToJSON(doc.Without("studentEmail", "sessionId"))
	if err != nil {
		return nil, err
	}

	row := BookedSession{
		ID:           id,
		StudentEmail: doc.String("studentEmail"),
		SessionID:    doc.String("sessionId"),
		Extra:        extra,
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_email"}, {Name: "session_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrDuplicateBooking
	}

	return row.Document()
}

// ListByStudent returns booking documents for the student email.
func (s *Service) ListByStudent(ctx context.Context, studentEmail string) ([]document.Fields, error) {
	var rows []BookedSession
	err := s.db.WithContext(ctx).Where("student_email = ?", studentEmail).Find(&rows).Error
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

// Get returns the booking document with the given id, or nil.
func (s *Service) Get(ctx context.Context, id string) (document.Fields, error) {
	var row BookedSession
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.Document()
}
