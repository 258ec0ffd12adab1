package models

import (
	"time"

	"gorm.io/gorm"
)

// TestSession status values. COMPLETED, FAILED and CANCELLED are terminal.
const (
	StatusCreated   = "CREATED"
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
	StatusCancelled = "CANCELLED"
)

// App artifact types, derived from the upload extension.
const (
	AppTypeAPK = "ANDROID_APK"
	AppTypeAAB = "ANDROID_AAB"
)

// TestLog severity levels.
const (
	LogDebug = "DEBUG"
	LogInfo  = "INFO"
	LogWarn  = "WARN"
	LogError = "ERROR"
)

// TestSession — one test run bound to an environment (BrowserDevice) and a
// target: either a URL (web test) or an uploaded app artifact, never both.
// StartedAt is set only on entering RUNNING, EndedAt only on entering a
// terminal status.
type TestSession struct {
	gorm.Model
	UserID          uint       `gorm:"index" json:"userId"`
	BrowserDeviceID *uint      `gorm:"index" json:"browserDeviceId"`
	URL             string     `gorm:"column:url;size:2048" json:"url,omitempty"`
	AppPath         string     `gorm:"size:512" json:"appPath,omitempty"`
	AppType         string     `gorm:"size:16" json:"appType,omitempty"`
	Status          string     `gorm:"size:16;index" json:"status"`
	StartedAt       *time.Time `json:"startedAt"`
	EndedAt         *time.Time `json:"endedAt"`

	User            *User            `json:"user,omitempty"`
	BrowserDevice   *BrowserDevice   `json:"browserDevice,omitempty"`
	Screenshots     []Screenshot     `gorm:"foreignKey:SessionID" json:"screenshots,omitempty"`
	Logs            []TestLog        `gorm:"foreignKey:SessionID" json:"logs,omitempty"`
	NetworkRequests []NetworkRequest `gorm:"foreignKey:SessionID" json:"networkRequests,omitempty"`
}

// Screenshot — immutable once created; owned by its session.
type Screenshot struct {
	gorm.Model
	SessionID uint      `gorm:"index" json:"sessionId"`
	Filename  string    `gorm:"size:255" json:"filename"`
	Path      string    `gorm:"size:512" json:"path"`
	Thumbnail string    `gorm:"size:512" json:"thumbnail,omitempty"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}

// TestLog — append-only audit/log entry; Metadata is an opaque JSON payload.
type TestLog struct {
	gorm.Model
	SessionID uint      `gorm:"index" json:"sessionId"`
	Level     string    `gorm:"size:8" json:"level"`
	Message   string    `gorm:"type:text" json:"message"`
	Metadata  string    `gorm:"type:text" json:"metadata,omitempty"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}

// NetworkRequest — append-only; nothing in this service writes one, an
// external collector would be the producer. Kept for the read path.
type NetworkRequest struct {
	gorm.Model
	SessionID    uint      `gorm:"index" json:"sessionId"`
	Method       string    `gorm:"size:16" json:"method"`
	URL          string    `gorm:"column:url;size:2048" json:"url"`
	StatusCode   *int      `gorm:"column:status_code" json:"status,omitempty"`
	Timestamp    time.Time `gorm:"index" json:"timestamp"`
	DurationMS   *int64    `gorm:"column:duration_ms" json:"duration,omitempty"`
	RequestSize  *int64    `json:"requestSize,omitempty"`
	ResponseSize *int64    `json:"responseSize,omitempty"`
}

// IsTerminal reports whether a session status permits no further transitions.
func IsTerminal(status string) bool {
	switch status {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}
