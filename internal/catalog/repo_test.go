package catalog

import (
	"path/filepath"
	"testing"

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
	require.NoError(t, db.AutoMigrate(&models.Device{}, &models.Browser{}, &models.BrowserDevice{}))
	return db
}

func TestListDevicesFiltersInactiveDevices(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)

	require.NoError(t, db.Create(&models.Device{Name: "active", IsActive: true}).Error)
	require.NoError(t, db.Create(&models.Device{Name: "retired", IsActive: false}).Error)

	ds, err := repo.ListDevices()
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "active", ds[0].Name)
}

func TestListDevicesFiltersInactiveCounterpartBrowsers(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)

	dev := models.Device{Name: "Pixel", IsActive: true}
	require.NoError(t, db.Create(&dev).Error)
	chrome := models.Browser{Name: "Chrome", IsActive: true}
	legacy := models.Browser{Name: "Legacy", IsActive: false}
	require.NoError(t, db.Create(&chrome).Error)
	require.NoError(t, db.Create(&legacy).Error)
	require.NoError(t, db.Create(&models.BrowserDevice{DeviceID: dev.ID, BrowserID: chrome.ID, IsActive: true}).Error)
	require.NoError(t, db.Create(&models.BrowserDevice{DeviceID: dev.ID, BrowserID: legacy.ID, IsActive: true}).Error)

	ds, err := repo.ListDevices()
	require.NoError(t, err)
	require.Len(t, ds, 1)
	require.Len(t, ds[0].BrowserDevices, 1)
	assert.Equal(t, "Chrome", ds[0].BrowserDevices[0].Browser.Name)
}

func TestListDevicesKeepsDeviceWithNoActiveBrowsers(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)

	dev := models.Device{Name: "Kiosk", IsActive: true}
	require.NoError(t, db.Create(&dev).Error)
	legacy := models.Browser{Name: "Legacy", IsActive: false}
	require.NoError(t, db.Create(&legacy).Error)
	require.NoError(t, db.Create(&models.BrowserDevice{DeviceID: dev.ID, BrowserID: legacy.ID, IsActive: true}).Error)

	ds, err := repo.ListDevices()
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Empty(t, ds[0].BrowserDevices)
}

func TestListBrowsersFiltersInactiveCounterpartDevices(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)

	br := models.Browser{Name: "Firefox", IsActive: true}
	require.NoError(t, db.Create(&br).Error)
	live := models.Device{Name: "Live", IsActive: true}
	retired := models.Device{Name: "Retired", IsActive: false}
	require.NoError(t, db.Create(&live).Error)
	require.NoError(t, db.Create(&retired).Error)
	require.NoError(t, db.Create(&models.BrowserDevice{DeviceID: live.ID, BrowserID: br.ID, IsActive: true}).Error)
	require.NoError(t, db.Create(&models.BrowserDevice{DeviceID: retired.ID, BrowserID: br.ID, IsActive: true}).Error)

	bs, err := repo.ListBrowsers()
	require.NoError(t, err)
	require.Len(t, bs, 1)
	require.Len(t, bs[0].BrowserDevices, 1)
	assert.Equal(t, "Live", bs[0].BrowserDevices[0].Device.Name)
}

func TestCreateDeviceDefaults(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)

	d := &models.Device{Name: "New Device", Type: models.DeviceDesktop}
	require.NoError(t, repo.CreateDevice(d))
	assert.True(t, d.IsActive)
	assert.False(t, d.IsMobile)
	assert.NotZero(t, d.ID)
}

func TestGetDeviceWithPairingsNotFound(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)

	_, err := repo.GetDeviceWithPairings(42)
	require.Error(t, err)
}

func TestGetDeviceWithPairingsInsertionOrder(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)

	dev := models.Device{Name: "Tab", IsActive: true}
	require.NoError(t, db.Create(&dev).Error)
	a := models.Browser{Name: "A", IsActive: true}
	b := models.Browser{Name: "B", IsActive: true}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)
	first := models.BrowserDevice{DeviceID: dev.ID, BrowserID: a.ID, IsActive: true}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&models.BrowserDevice{DeviceID: dev.ID, BrowserID: b.ID, IsActive: true}).Error)

	got, err := repo.GetDeviceWithPairings(dev.ID)
	require.NoError(t, err)
	require.Len(t, got.BrowserDevices, 2)
	assert.Equal(t, first.ID, got.BrowserDevices[0].ID)
}
