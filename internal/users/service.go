package users

import (
	"context"
	"errors"
	"strings"

	"github.com/tutorhive/backend/internal/auth"
	"github.com/tutorhive/backend/internal/document"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrAlreadyRegistered indicates a registration for an email that
	// already has an account.
	ErrAlreadyRegistered = errors.New("users: email already registered")

	errMissingDatabase = errors.New("users: database handle is required")
)

// ServiceConfig describes the dependencies for the user account service.
type ServiceConfig struct {
	Database   *gorm.DB
	IDProvider document.IDProvider
}

// Service manages the users collection.
type Service struct {
	db  *gorm.DB
	ids document.IDProvider
}

// NewService constructs the user account service.
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

// Register stores a new account document. Social logins are forced to the
// student role before the document is examined further. The insert is
// conditional on the email unique index, so two concurrent registrations
// for the same email cannot both succeed.
func (s *Service) Register(ctx context.Context, doc document.Fields, socialLogin bool) (document.Fields, error) {
	if socialLogin {
		doc = doc.Merge(document.Fields{"role": auth.RoleStudent.String()})
	}

	id, err := s.ids.NewID()
	if err != nil {
		return nil, err
	}
	extra, err := document.ToJSON(doc.Without("email", "role", "displayName"))
	if err != nil {
		return nil, err
	}

	user := User{
		ID:          id,
		Email:       doc.String("email"),
		Role:        doc.String("role"),
		DisplayName: doc.String("displayName"),
		Extra:       extra,
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrAlreadyRegistered
	}

	return user.Document()
}

// FindByEmail returns the account document for the email, or nil when no
// account exists.
func (s *Service) FindByEmail(ctx context.Context, email string) (document.Fields, error) {
	var user User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user.Document()
}

// List returns account documents. A search term wins over a role filter:
// it matches case-insensitively against email or display name; a role
// filter matches exactly; with neither, every account is returned.
func (s *Service) List(ctx context.Context, search, role string) ([]document.Fields, error) {
	query := s.db.WithContext(ctx).Model(&User{})
	switch {
	case search != "":
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(display_name) LIKE ?", pattern, pattern)
	case role != "":
		query = query.Where("role = ?", role)
	}

	var rows []User
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return collectDocuments(rows)
}

// UpdateFields overwrites the supplied keys on the account with the given
// id and reports how many records changed (zero or one).
func (s *Service) UpdateFields(ctx context.Context, id string, patch document.Fields) (int64, error) {
	var modified int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user User
		err := tx.Where("id = ?", id).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if _, ok := patch["email"]; ok {
			user.Email = patch.String("email")
		}
		if _, ok := patch["role"]; ok {
			user.Role = patch.String("role")
		}
		if _, ok := patch["displayName"]; ok {
			user.DisplayName = patch.String("displayName")
		}

		extra, err := document.FromJSON(user.Extra)
		if err != nil {
			return err
		}
		merged, err := document.ToJSON(extra.Merge(patch.Without("email", "role", "displayName")))
		if err != nil {
			return err
		}
		user.Extra = merged

		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		modified = 1
		return nil
	})
	return modified, err
}

func collectDocuments(rows []User) ([]document.Fields, error) {
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
