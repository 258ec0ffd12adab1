package session

import (
	"time"

	"devicelab/internal/apperr"
	"devicelab/internal/models"
)

// Target — what a session runs: a URL or an uploaded app artifact. The
// tagged variant keeps "both set" and "neither set" unrepresentable at the
// service boundary; the store keeps them as nullable columns.
type Target interface {
	apply(s *models.TestSession)
}

type WebTarget struct{ URL string }

func (t WebTarget) apply(s *models.TestSession) { s.URL = t.URL }

type AppTarget struct {
	Path string
	Type string // ANDROID_APK | ANDROID_AAB
}

func (t AppTarget) apply(s *models.TestSession) {
	s.AppPath = t.Path
	s.AppType = t.Type
}

// Service enforces the session state machine:
// CREATED -> RUNNING -> COMPLETED | FAILED | CANCELLED.
type Service struct{ repo *Repo }

func NewService(r *Repo) *Service { return &Service{repo: r} }

func (s *Service) Create(userID uint, browserDeviceID *uint, target Target) (*models.TestSession, error) {
	if target == nil {
		return nil, apperr.Validation("either url or appPath is required")
	}
	if browserDeviceID != nil {
		if _, err := s.repo.ActiveBrowserDevice(*browserDeviceID); err != nil {
			return nil, err
		}
	}
	sess := &models.TestSession{
		UserID:          userID,
		BrowserDeviceID: browserDeviceID,
		Status:          models.StatusCreated,
	}
	target.apply(sess)
	if err := s.repo.Create(sess); err != nil {
		return nil, err
	}
	return s.repo.GetEnv(sess.ID)
}

// Start moves CREATED -> RUNNING and stamps StartedAt. Starting a session
// that already left CREATED is a conflict, not a silent overwrite —
// rewriting StartedAt would corrupt duration math.
func (s *Service) Start(id uint) (*models.TestSession, error) {
	sess, err := s.repo.GetEnv(id)
	if err != nil {
		return nil, err
	}
	if sess.Status != models.StatusCreated {
		return nil, apperr.Conflict("session already started")
	}
	now := time.Now()
	sess.Status = models.StatusRunning
	sess.StartedAt = &now
	if err := s.repo.Save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Stop completes any non-terminal session and stamps EndedAt. A session
// already in a terminal status is returned unchanged, so repeated stops
// are safe.
func (s *Service) Stop(id uint) (*models.TestSession, error) {
	sess, err := s.repo.GetEnv(id)
	if err != nil {
		return nil, err
	}
	if models.IsTerminal(sess.Status) {
		return sess, nil
	}
	now := time.Now()
	sess.Status = models.StatusCompleted
	sess.EndedAt = &now
	if err := s.repo.Save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Service) Get(id uint) (*models.TestSession, error) { return s.repo.Get(id) }

func (s *Service) List() ([]models.TestSession, error) { return s.repo.List() }

func (s *Service) Delete(id uint) error { return s.repo.Delete(id) }
