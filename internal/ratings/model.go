package ratings

import (
	"time"

	"github.com/tutorhive/backend/internal/document"
	"gorm.io/datatypes"
)

// Rating is one review document attached to a study session.
type Rating struct {
	ID        string         `gorm:"column:id;primaryKey;size:190;not null"`
	SessionID string         `gorm:"column:session_id;size:190;index"`
	Extra     datatypes.JSON `gorm:"column:extra"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
}

// TableName provides the explicit table binding for GORM.
func (Rating) TableName() string {
	return "ratings"
}

// Document folds the indexed columns back into the stored body.
func (r Rating) Document() (document.Fields, error) {
	fields, err := document.FromJSON(r.Extra)
	if err != nil {
		return nil, err
	}
	fields["id"] = r.ID
	if r.SessionID != "" {
		fields["sessionId"] = r.SessionID
	}
	return fields, nil
}
