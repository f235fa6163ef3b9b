package materials

import (
	"time"

	"github.com/tutorhive/backend/internal/document"
	"gorm.io/datatypes"
)

// SessionMaterial is one uploaded material document tied to a study session.
type SessionMaterial struct {
	ID         string         `gorm:"column:id;primaryKey;size:190;not null"`
	TutorEmail string         `gorm:"column:tutor_email;size:320;index"`
	SessionID  string         `gorm:"column:session_id;size:190;index"`
	Extra      datatypes.JSON `gorm:"column:extra"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName provides the explicit table binding for GORM.
func (SessionMaterial) TableName() string {
	return "session_materials"
}

// Document folds the indexed columns back into the stored body.
func (m SessionMaterial) Document() (document.Fields, error) {
	fields, err := document.FromJSON(m.Extra)
	if err != nil {
		return nil, err
	}
	fields["id"] = m.ID
	if m.TutorEmail != "" {
		fields["tutorEmail"] = m.TutorEmail
	}
	if m.SessionID != "" {
		fields["sessionId"] = m.SessionID
	}
	return fields, nil
}
