package models

import "time"

const (
	StatusPending = "pending"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// Command is one unit of work directed at one client. Rows are never deleted;
// the table doubles as the audit trail.
type Command struct {
	ID        uint      `gorm:"primaryKey"`
	ClientID  string    `gorm:"size:191;index"`
	Command   string    `gorm:"size:64"`
	Args      string    `gorm:"type:text"`
	Status    string    `gorm:"size:16;index"` // pending,done,failed
	Result    string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Terminal reports whether the command has reached a final status.
func (c *Command) Terminal() bool {
	return c.Status == StatusDone || c.Status == StatusFailed
}

// NormalizeStatus maps a reported status onto the known set. Empty or
// unrecognized values count as done, matching the report endpoint's
// generosity toward sloppy clients.
func NormalizeStatus(s string) string {
	switch s {
	case StatusDone, StatusFailed:
		return s
	default:
		return StatusDone
	}
}
