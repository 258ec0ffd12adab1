package devicectl

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"devicelab/internal/apperr"
	"devicelab/internal/logs"
	"devicelab/internal/models"

	"github.com/gorilla/mux"
)

type HTTP struct {
	store SessionStore
	ctrl  Controller
}

func NewHTTP(store SessionStore, ctrl Controller) *HTTP {
	return &HTTP{store: store, ctrl: ctrl}
}

func (h *HTTP) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/sessions/{id}/install-app", h.installApp).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}/screenshot", h.takeScreenshot).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}/metrics", h.metrics).Methods(http.MethodGet)
}

func sessionID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("invalid session id")
	}
	return uint(id), nil
}

func (h *HTTP) installApp(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	sess, err := h.store.GetEnv(id)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	if sess.AppPath == "" {
		apperr.Write(w, apperr.Validation("no app file associated with this session"))
		return
	}

	deviceName := "device"
	if sess.BrowserDevice != nil && sess.BrowserDevice.Device != nil {
		deviceName = sess.BrowserDevice.Device.Name
	}

	if err := h.ctrl.Install(r.Context(), deviceName, sess.AppPath); err != nil {
		logs.Logger.WithError(err).Error("install app")
		apperr.Write(w, apperr.Internal("failed to install app"))
		return
	}

	meta, _ := json.Marshal(map[string]string{"action": "install", "device": deviceName})
	entry := &models.TestLog{
		SessionID: id,
		Level:     models.LogInfo,
		Message:   "App installed successfully on " + deviceName,
		Metadata:  string(meta),
		Timestamp: time.Now(),
	}
	if err := h.store.AddLog(entry); err != nil {
		logs.Logger.WithError(err).Error("install log entry")
		apperr.Write(w, apperr.Internal("failed to install app"))
		return
	}

	apperr.JSON(w, http.StatusOK, map[string]string{
		"message": "App installed successfully",
		"device":  deviceName,
		"appPath": sess.AppPath,
	})
}

func (h *HTTP) takeScreenshot(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	ok, err := h.store.Exists(id)
	if err != nil {
		logs.Logger.WithError(err).Error("screenshot session lookup")
		apperr.Write(w, apperr.Internal("failed to take screenshot"))
		return
	}
	if !ok {
		apperr.Write(w, apperr.NotFound("session not found"))
		return
	}

	filename, err := h.ctrl.Capture(r.Context())
	if err != nil {
		logs.Logger.WithError(err).Error("capture")
		apperr.Write(w, apperr.Internal("failed to take screenshot"))
		return
	}

	// no real thumbnail generation, the thumbnail points at the image itself
	path := "/screenshots/" + filename
	shot := &models.Screenshot{
		SessionID: id,
		Filename:  filename,
		Path:      path,
		Thumbnail: path,
		Timestamp: time.Now(),
	}
	if err := h.store.AddScreenshot(shot); err != nil {
		logs.Logger.WithError(err).Error("screenshot record")
		apperr.Write(w, apperr.Internal("failed to take screenshot"))
		return
	}
	apperr.JSON(w, http.StatusOK, shot)
}

func (h *HTTP) metrics(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	ok, err := h.store.Exists(id)
	if err != nil {
		logs.Logger.WithError(err).Error("metrics session lookup")
		apperr.Write(w, apperr.Internal("failed to collect metrics"))
		return
	}
	if !ok {
		apperr.Write(w, apperr.NotFound("session not found"))
		return
	}
	m, err := h.ctrl.Poll(r.Context())
	if err != nil {
		logs.Logger.WithError(err).Error("poll metrics")
		apperr.Write(w, apperr.Internal("failed to collect metrics"))
		return
	}
	apperr.JSON(w, http.StatusOK, m)
}
