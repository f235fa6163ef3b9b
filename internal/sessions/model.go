package sessions

import (
	"time"

	"github.com/tutorhive/backend/internal/document"
	"gorm.io/datatypes"
)

// Session statuses as written by the moderation flow. The column is not
// constrained to these values; unrecognized statuses simply sort last.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// StudySession is one published session document.
type StudySession struct {
	ID         string         `gorm:"column:id;primaryKey;size:190;not null"`
	TutorEmail string         `gorm:"column:tutor_email;size:320;index"`
	Status     string         `gorm:"column:status;size:32;not null;default:pending"`
	Extra      datatypes.JSON `gorm:"column:extra"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName provides the explicit table binding for GORM.
func (StudySession) TableName() string {
	return "study_sessions"
}

// Document folds the indexed columns back into the stored body.
func (s StudySession) Document() (document.Fields, error) {
	fields, err := document.FromJSON(s.Extra)
	if err != nil {
		return nil, err
	}
	fields["id"] = s.ID
	fields["status"] = s.Status
	if s.TutorEmail != "" {
		fields["tutorEmail"] = s.TutorEmail
	}
	return fields, nil
}
