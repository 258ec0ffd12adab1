package session

import (
	"errors"

	"devicelab/internal/apperr"
	"devicelab/internal/models"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// expand attaches the owner (id/email/name only) and the environment with
// its device and browser. withChildren additionally loads the three owned
// collections, each newest-first by its own timestamp.
func (r *Repo) expand(q *gorm.DB, withChildren bool) *gorm.DB {
	q = q.
		Preload("User", func(tx *gorm.DB) *gorm.DB { return tx.Select("id", "email", "name") }).
		Preload("BrowserDevice").
		Preload("BrowserDevice.Device").
		Preload("BrowserDevice.Browser")
	if withChildren {
		q = q.
			Preload("Screenshots", func(tx *gorm.DB) *gorm.DB { return tx.Order("timestamp DESC") }).
			Preload("Logs", func(tx *gorm.DB) *gorm.DB { return tx.Order("timestamp DESC") }).
			Preload("NetworkRequests", func(tx *gorm.DB) *gorm.DB { return tx.Order("timestamp DESC") })
	}
	return q
}

func (r *Repo) Create(s *models.TestSession) error {
	return r.db.Create(s).Error
}

// Get returns one session fully expanded, children included.
func (r *Repo) Get(id uint) (*models.TestSession, error) {
	var s models.TestSession
	if err := r.expand(r.db, true).First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("session not found")
		}
		return nil, err
	}
	return &s, nil
}

// GetEnv returns one session with owner and environment but no children.
// Used for create/start/stop responses and the device-action handlers.
func (r *Repo) GetEnv(id uint) (*models.TestSession, error) {
	var s models.TestSession
	if err := r.expand(r.db, false).First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("session not found")
		}
		return nil, err
	}
	return &s, nil
}

// List returns all sessions, newest first, fully expanded.
func (r *Repo) List() ([]models.TestSession, error) {
	var out []models.TestSession
	err := r.expand(r.db, true).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *Repo) Save(s *models.TestSession) error {
	return r.db.Save(s).Error
}

// Delete removes the session and its owned records in one transaction.
func (r *Repo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var s models.TestSession
		if err := tx.First(&s, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("session not found")
			}
			return err
		}
		if err := tx.Where("session_id = ?", id).Delete(&models.Screenshot{}).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id = ?", id).Delete(&models.TestLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id = ?", id).Delete(&models.NetworkRequest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&s).Error
	})
}

// ActiveBrowserDevice resolves an environment id to an existing active
// pairing, or fails validation.
func (r *Repo) ActiveBrowserDevice(id uint) (*models.BrowserDevice, error) {
	var bd models.BrowserDevice
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&bd).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("browser device not found or inactive")
		}
		return nil, err
	}
	return &bd, nil
}

// Exists reports whether a session row is present.
func (r *Repo) Exists(id uint) (bool, error) {
	var n int64
	err := r.db.Model(&models.TestSession{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *Repo) AddLog(l *models.TestLog) error {
	return r.db.Create(l).Error
}

func (r *Repo) AddScreenshot(s *models.Screenshot) error {
	return r.db.Create(s).Error
}
