package session

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"devicelab/internal/apperr"
	"devicelab/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Device{}, &models.Browser{}, &models.BrowserDevice{}, &models.User{},
		&models.TestSession{}, &models.Screenshot{}, &models.TestLog{}, &models.NetworkRequest{},
	))
	return db
}

func fixtures(t *testing.T, db *gorm.DB) (models.User, models.BrowserDevice) {
	t.Helper()
	dev := models.Device{Name: "Samsung Galaxy S24", Type: models.DeviceMobile, OS: "Android", IsMobile: true, IsActive: true}
	require.NoError(t, db.Create(&dev).Error)
	br := models.Browser{Name: "Chrome", Version: "120", Engine: "Blink", IsActive: true}
	require.NoError(t, db.Create(&br).Error)
	bd := models.BrowserDevice{DeviceID: dev.ID, BrowserID: br.ID, IsActive: true}
	require.NoError(t, db.Create(&bd).Error)
	u := models.User{Email: "demo@example.com", Name: "Demo User"}
	require.NoError(t, db.Create(&u).Error)
	return u, bd
}

func TestCreateRequiresTarget(t *testing.T) {
	db := testDB(t)
	u, _ := fixtures(t, db)
	svc := NewService(NewRepo(db))

	_, err := svc.Create(u.ID, nil, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestCreateWebSession(t *testing.T) {
	db := testDB(t)
	u, bd := fixtures(t, db)
	svc := NewService(NewRepo(db))

	sess, err := svc.Create(u.ID, &bd.ID, WebTarget{URL: "https://example.com"})
	require.NoError(t, err)

	assert.Equal(t, models.StatusCreated, sess.Status)
	assert.Equal(t, "https://example.com", sess.URL)
	assert.Empty(t, sess.AppPath)
	assert.Nil(t, sess.StartedAt)
	assert.Nil(t, sess.EndedAt)

	// owner and environment come back expanded
	require.NotNil(t, sess.User)
	assert.Equal(t, "demo@example.com", sess.User.Email)
	require.NotNil(t, sess.BrowserDevice)
	require.NotNil(t, sess.BrowserDevice.Device)
	assert.Equal(t, "Samsung Galaxy S24", sess.BrowserDevice.Device.Name)
	require.NotNil(t, sess.BrowserDevice.Browser)
	assert.Equal(t, "Chrome", sess.BrowserDevice.Browser.Name)
}

func TestCreateRejectsInactiveEnvironment(t *testing.T) {
	db := testDB(t)
	u, bd := fixtures(t, db)
	require.NoError(t, db.Model(&models.BrowserDevice{}).Where("id = ?", bd.ID).Update("is_active", false).Error)
	svc := NewService(NewRepo(db))

	_, err := svc.Create(u.ID, &bd.ID, WebTarget{URL: "https://example.com"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestLifecycleTransitions(t *testing.T) {
	db := testDB(t)
	u, bd := fixtures(t, db)
	svc := NewService(NewRepo(db))

	sess, err := svc.Create(u.ID, &bd.ID, WebTarget{URL: "https://example.com"})
	require.NoError(t, err)

	started, err := svc.Start(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRunning, started.Status)
	require.NotNil(t, started.StartedAt)
	assert.Nil(t, started.EndedAt)

	// re-starting a running session must not overwrite StartedAt
	_, err = svc.Start(sess.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))

	stopped, err := svc.Stop(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, stopped.Status)
	require.NotNil(t, stopped.EndedAt)

	// stop is safe to repeat: terminal status and EndedAt stay put
	again, err := svc.Stop(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, again.Status)
	assert.Equal(t, stopped.EndedAt.Unix(), again.EndedAt.Unix())

	// a terminal session cannot be started either
	_, err = svc.Start(sess.ID)
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))
}

func TestStopMissingSession(t *testing.T) {
	db := testDB(t)
	fixtures(t, db)
	svc := NewService(NewRepo(db))

	_, err := svc.Stop(12345)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestDeleteCascades(t *testing.T) {
	db := testDB(t)
	u, bd := fixtures(t, db)
	repo := NewRepo(db)
	svc := NewService(repo)

	sess, err := svc.Create(u.ID, &bd.ID, AppTarget{Path: "/uploads/apps/x.apk", Type: models.AppTypeAPK})
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, repo.AddLog(&models.TestLog{SessionID: sess.ID, Level: models.LogInfo, Message: "installed", Timestamp: now}))
	require.NoError(t, repo.AddScreenshot(&models.Screenshot{SessionID: sess.ID, Filename: "a.png", Path: "/screenshots/a.png", Timestamp: now}))
	require.NoError(t, db.Create(&models.NetworkRequest{SessionID: sess.ID, Method: "GET", URL: "https://example.com", Timestamp: now}).Error)

	require.NoError(t, svc.Delete(sess.ID))

	_, err = svc.Get(sess.ID)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))

	var logsN, shotsN, reqsN int64
	require.NoError(t, db.Model(&models.TestLog{}).Where("session_id = ?", sess.ID).Count(&logsN).Error)
	require.NoError(t, db.Model(&models.Screenshot{}).Where("session_id = ?", sess.ID).Count(&shotsN).Error)
	require.NoError(t, db.Model(&models.NetworkRequest{}).Where("session_id = ?", sess.ID).Count(&reqsN).Error)
	assert.Zero(t, logsN)
	assert.Zero(t, shotsN)
	assert.Zero(t, reqsN)
}

func TestDeleteMissingSession(t *testing.T) {
	db := testDB(t)
	fixtures(t, db)
	svc := NewService(NewRepo(db))

	err := svc.Delete(777)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestGetOrdersChildrenNewestFirst(t *testing.T) {
	db := testDB(t)
	u, bd := fixtures(t, db)
	repo := NewRepo(db)
	svc := NewService(repo)

	sess, err := svc.Create(u.ID, &bd.ID, WebTarget{URL: "https://example.com"})
	require.NoError(t, err)

	older := time.Now().Add(-time.Minute)
	newer := time.Now()
	require.NoError(t, repo.AddScreenshot(&models.Screenshot{SessionID: sess.ID, Filename: "old.png", Path: "/screenshots/old.png", Timestamp: older}))
	require.NoError(t, repo.AddScreenshot(&models.Screenshot{SessionID: sess.ID, Filename: "new.png", Path: "/screenshots/new.png", Timestamp: newer}))

	got, err := svc.Get(sess.ID)
	require.NoError(t, err)
	require.Len(t, got.Screenshots, 2)
	assert.Equal(t, "new.png", got.Screenshots[0].Filename)
	assert.Equal(t, "old.png", got.Screenshots[1].Filename)
}

func TestListNewestFirst(t *testing.T) {
	db := testDB(t)
	u, bd := fixtures(t, db)
	repo := NewRepo(db)
	svc := NewService(repo)

	first, err := svc.Create(u.ID, &bd.ID, WebTarget{URL: "https://a.example.com"})
	require.NoError(t, err)
	// separate the created_at values
	require.NoError(t, db.Model(&models.TestSession{}).Where("id = ?", first.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)
	second, err := svc.Create(u.ID, &bd.ID, WebTarget{URL: "https://b.example.com"})
	require.NoError(t, err)

	all, err := svc.List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
}
