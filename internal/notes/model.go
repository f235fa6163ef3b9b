package notes

import (
	"time"

	"github.com/tutorhive/backend/internal/document"
	"gorm.io/datatypes"
)

// Note is one personal note document. Ownership is by the email field only;
// nothing structural stops an authenticated caller from touching another
// note id.
type Note struct {
	ID        string         `gorm:"column:id;primaryKey;size:190;not null"`
	Email     string         `gorm:"column:email;size:320;index"`
	Extra     datatypes.JSON `gorm:"column:extra"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName provides the explicit table binding for GORM.
func (Note) TableName() string {
	return "notes"
}

// Document folds the indexed columns back into the stored body.
func (n Note) Document() (document.Fields, error) {
	fields, err := document.FromJSON(n.Extra)
	if err != nil {
		return nil, err
	}
	fields["id"] = n.ID
	if n.Email != "" {
		fields["email"] = n.Email
	}
	return fields, nil
}
