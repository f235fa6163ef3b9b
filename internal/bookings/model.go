package bookings

import (
	"time"

	"github.com/tutorhive/backend/internal/document"
	"gorm.io/datatypes"
)

// BookedSession records one student booking one study session. The composite
// unique index is what makes duplicate bookings impossible even under
// concurrent requests.
type BookedSession struct {
	ID           string         `gorm:"column:id;primaryKey;size:190;not null"`
	StudentEmail string         `gorm:"column:student_email;size:320;not null;uniqueIndex:idx_bookings_student_session,priority:1"`
	SessionID    string         `gorm:"column:session_id;size:190;not null;uniqueIndex:idx_bookings_student_session,priority:2"`
	Extra        datatypes.JSON `gorm:"column:extra"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
}

// TableName provides the explicit table binding for GORM.
func (BookedSession) TableName() string {
	return "booked_sessions"
}

// Document folds the indexed columns back into the stored body.
func (b BookedSession) Document() (document.Fields, error) {
	fields, err := document.FromJSON(b.Extra)
	if err != nil {
		return nil, err
	}
	fields["id"] = b.ID
	fields["studentEmail"] = b.StudentEmail
	fields["sessionId"] = b.SessionID
	return fields, nil
}
