package catalog

import (
	"errors"

	"devicelab/internal/apperr"
	"devicelab/internal/models"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// ── Devices ─────────────────────────────────────────────────

// ListDevices returns active devices with their pairings. The store filters
// the devices; the joined browsers are filtered in application code, so an
// active device whose browsers are all inactive still shows up with an empty
// pairing list.
func (r *Repo) ListDevices() ([]models.Device, error) {
	var out []models.Device
	err := r.db.
		Where("is_active = ?", true).
		Preload("BrowserDevices").
		Preload("BrowserDevices.Browser").
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	for i := range out {
		kept := out[i].BrowserDevices[:0]
		for _, bd := range out[i].BrowserDevices {
			if bd.Browser != nil && bd.Browser.IsActive {
				kept = append(kept, bd)
			}
		}
		out[i].BrowserDevices = kept
	}
	return out, nil
}

func (r *Repo) CreateDevice(d *models.Device) error {
	d.IsActive = true
	return r.db.Create(d).Error
}

// GetDeviceWithPairings loads one device with its pairings in insertion
// order. Used by the upload flow to pick the first available pairing.
func (r *Repo) GetDeviceWithPairings(id uint) (*models.Device, error) {
	var d models.Device
	err := r.db.
		Preload("BrowserDevices", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("BrowserDevices.Browser").
		First(&d, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("device not found")
		}
		return nil, err
	}
	return &d, nil
}

// ── Browsers ────────────────────────────────────────────────

// ListBrowsers mirrors ListDevices with the counterpart filter applied to
// the joined devices.
func (r *Repo) ListBrowsers() ([]models.Browser, error) {
	var out []models.Browser
	err := r.db.
		Where("is_active = ?", true).
		Preload("BrowserDevices").
		Preload("BrowserDevices.Device").
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	for i := range out {
		kept := out[i].BrowserDevices[:0]
		for _, bd := range out[i].BrowserDevices {
			if bd.Device != nil && bd.Device.IsActive {
				kept = append(kept, bd)
			}
		}
		out[i].BrowserDevices = kept
	}
	return out, nil
}

func (r *Repo) CreateBrowser(b *models.Browser) error {
	b.IsActive = true
	return r.db.Create(b).Error
}
