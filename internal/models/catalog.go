package models

import "gorm.io/gorm"

// Device type values.
const (
	DeviceDesktop = "DESKTOP"
	DeviceMobile  = "MOBILE"
	DeviceTablet  = "TABLET"
)

// Device — a lab device (or emulated profile) sessions can run against.
// Reference data: created by seed/operator, soft-deactivated via IsActive,
// otherwise never mutated.
type Device struct {
	gorm.Model
	Name         string `gorm:"size:255" json:"name"`
	Type         string `gorm:"size:16;index" json:"type"`
	Manufacturer string `gorm:"size:128" json:"manufacturer"`
	DeviceModel  string `gorm:"column:device_model;size:128" json:"model"`
	OS           string `gorm:"column:os;size:64" json:"os"`
	OSVersion    string `gorm:"column:os_version;size:64" json:"osVersion"`
	Resolution   string `gorm:"size:32" json:"resolution"`
	IsMobile     bool   `gorm:"column:is_mobile" json:"isMobile"`
	IsActive     bool   `gorm:"column:is_active;index" json:"isActive"`

	BrowserDevices []BrowserDevice `json:"browserDevices,omitempty"`
}

// Browser — same lifecycle pattern as Device.
type Browser struct {
	gorm.Model
	Name     string `gorm:"size:128" json:"name"`
	Version  string `gorm:"size:64" json:"version"`
	Engine   string `gorm:"size:64" json:"engine"`
	IsMobile bool   `gorm:"column:is_mobile" json:"isMobile"`
	IsActive bool   `gorm:"column:is_active;index" json:"isActive"`

	BrowserDevices []BrowserDevice `json:"browserDevices,omitempty"`
}

// BrowserDevice — join record: this browser is available on this device.
// Carries its own IsActive so a single pairing can be disabled without
// touching the device or the browser.
type BrowserDevice struct {
	gorm.Model
	DeviceID  uint `gorm:"index:idx_browser_device,unique,priority:1" json:"deviceId"`
	BrowserID uint `gorm:"index:idx_browser_device,unique,priority:2" json:"browserId"`
	IsActive  bool `gorm:"column:is_active" json:"isActive"`

	Device  *Device  `json:"device,omitempty"`
	Browser *Browser `json:"browser,omitempty"`
}

type User struct {
	gorm.Model
	Email string `gorm:"uniqueIndex;size:255" json:"email"`
	Name  string `gorm:"size:255" json:"name"`
}
