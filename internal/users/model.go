package users

import (
	"time"

	"github.com/tutorhive/backend/internal/document"
	"gorm.io/datatypes"
)

// User is one account document. Email is the natural key; everything the
// client sent beyond the indexed fields lives in Extra.
type User struct {
	ID          string         `gorm:"column:id;primaryKey;size:190;not null"`
	Email       string         `gorm:"column:email;size:320;not null;uniqueIndex"`
	Role        string         `gorm:"column:role;size:32"`
	DisplayName string         `gorm:"column:display_name;size:320"`
	Extra       datatypes.JSON `gorm:"column:extra"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName provides the explicit table binding for GORM.
func (User) TableName() string {
	return "users"
}

// Document folds the indexed columns back into the stored body.
func (u User) Document() (document.Fields, error) {
	fields, err := document.FromJSON(u.Extra)
	if err != nil {
		return nil, err
	}
	fields["id"] = u.ID
	fields["email"] = u.Email
	if u.Role != "" {
		fields["role"] = u.Role
	}
	if u.DisplayName != "" {
		fields["displayName"] = u.DisplayName
	}
	return fields, nil
}
