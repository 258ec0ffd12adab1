package devicectl

import (
	"context"

	"devicelab/internal/models"
)

// Metrics — point-in-time performance readings from a device under test.
type Metrics struct {
	LoadTime         float64 `json:"loadTime"`         // ms
	DOMContentLoaded float64 `json:"domContentLoaded"` // ms
	FirstPaint       float64 `json:"firstPaint"`       // ms
	MemoryUsage      float64 `json:"memoryUsage"`      // MB
	CPUUsage         float64 `json:"cpuUsage"`         // percent
}

// Controller — contract for talking to a device. The shipped implementation
// is the Simulator; a real ADB/WebDriver-backed controller would satisfy the
// same interface.
type Controller interface {
	// Install pushes the artifact at appPath onto the device.
	Install(ctx context.Context, deviceName, appPath string) error
	// Capture takes a screenshot and returns the generated filename.
	Capture(ctx context.Context) (string, error)
	// Poll reads current performance metrics.
	Poll(ctx context.Context) (Metrics, error)
}

// SessionStore — the slice of session storage the device handlers need.
type SessionStore interface {
	GetEnv(id uint) (*models.TestSession, error)
	Exists(id uint) (bool, error)
	AddLog(l *models.TestLog) error
	AddScreenshot(s *models.Screenshot) error
}
