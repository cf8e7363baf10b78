package model

import "time"

// Notice levels
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notice is a transient outcome of a user action, such as triggering a run.
// Notices never change a screen's view-state.
type Notice struct {
	ID        string    `json:"id"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	JobID     int64     `json:"job_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
