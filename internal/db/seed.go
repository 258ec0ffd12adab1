package db

import (
	"devicelab/internal/models"

	"gorm.io/gorm"
)

// Seed наполняет пустую БД справочными данными (устройства, браузеры,
// их пары и демо-пользователь). Повторный запуск — no-op.
func Seed(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.Device{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		devices := []models.Device{
			{Name: "Desktop Windows 11", Type: models.DeviceDesktop, Manufacturer: "Generic", DeviceModel: "Desktop PC", OS: "Windows", OSVersion: "11", Resolution: "1920x1080", IsActive: true},
			{Name: "Desktop macOS", Type: models.DeviceDesktop, Manufacturer: "Apple", DeviceModel: "MacBook Pro", OS: "macOS", OSVersion: "Sonoma", Resolution: "2560x1440", IsActive: true},
			{Name: "iPhone 15 Pro", Type: models.DeviceMobile, Manufacturer: "Apple", DeviceModel: "iPhone 15 Pro", OS: "iOS", OSVersion: "17", Resolution: "1179x2556", IsMobile: true, IsActive: true},
			{Name: "Samsung Galaxy S24", Type: models.DeviceMobile, Manufacturer: "Samsung", DeviceModel: "Galaxy S24", OS: "Android", OSVersion: "14", Resolution: "1080x2340", IsMobile: true, IsActive: true},
			{Name: "iPad Pro", Type: models.DeviceTablet, Manufacturer: "Apple", DeviceModel: "iPad Pro", OS: "iPadOS", OSVersion: "17", Resolution: "2048x2732", IsMobile: true, IsActive: true},
		}
		if err := tx.Create(&devices).Error; err != nil {
			return err
		}

		browsers := []models.Browser{
			{Name: "Chrome", Version: "120", Engine: "Blink", IsActive: true},
			{Name: "Firefox", Version: "121", Engine: "Gecko", IsActive: true},
			{Name: "Safari", Version: "17", Engine: "WebKit", IsActive: true},
			{Name: "Mobile Safari", Version: "17", Engine: "WebKit", IsMobile: true, IsActive: true},
		}
		if err := tx.Create(&browsers).Error; err != nil {
			return err
		}

		chrome, firefox, safari, mobileSafari := browsers[0], browsers[1], browsers[2], browsers[3]
		winPC, mac, iphone, samsung, ipad := devices[0], devices[1], devices[2], devices[3], devices[4]

		pairs := []models.BrowserDevice{
			{DeviceID: winPC.ID, BrowserID: chrome.ID, IsActive: true},
			{DeviceID: winPC.ID, BrowserID: firefox.ID, IsActive: true},
			{DeviceID: mac.ID, BrowserID: chrome.ID, IsActive: true},
			{DeviceID: mac.ID, BrowserID: safari.ID, IsActive: true},
			{DeviceID: mac.ID, BrowserID: firefox.ID, IsActive: true},
			{DeviceID: iphone.ID, BrowserID: mobileSafari.ID, IsActive: true},
			{DeviceID: iphone.ID, BrowserID: chrome.ID, IsActive: true},
			{DeviceID: samsung.ID, BrowserID: chrome.ID, IsActive: true},
			{DeviceID: ipad.ID, BrowserID: safari.ID, IsActive: true},
			{DeviceID: ipad.ID, BrowserID: chrome.ID, IsActive: true},
		}
		if err := tx.Create(&pairs).Error; err != nil {
			return err
		}

		return tx.Create(&models.User{Email: "demo@example.com", Name: "Demo User"}).Error
	})
}
