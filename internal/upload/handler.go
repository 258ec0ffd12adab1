package upload

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"devicelab/internal/apperr"
	"devicelab/internal/catalog"
	"devicelab/internal/logs"
	"devicelab/internal/session"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/h2non/filetype"
)

// PublicPrefix — where stored artifacts are served back from.
const PublicPrefix = "/uploads/apps/"

type Handler struct {
	devices  *catalog.Repo
	sessions *session.Service
	dir      string
	maxBytes int64
}

func NewHandler(devices *catalog.Repo, sessions *session.Service, dir string, maxBytes int64) *Handler {
	if maxBytes <= 0 {
		maxBytes = MaxArtifactBytes
	}
	return &Handler{devices: devices, sessions: sessions, dir: dir, maxBytes: maxBytes}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/upload-app", h.uploadApp).Methods(http.MethodPost)
}

// uploadApp: validate -> store -> resolve device pairing -> create session.
// A device lookup failure after storage leaves the artifact on disk, which
// matches the observed behavior.
func (h *Handler) uploadApp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		apperr.Write(w, apperr.Validation("invalid multipart form"))
		return
	}
	file, header, err := r.FormFile("appFile")
	deviceIDStr := r.FormValue("deviceId")
	userIDStr := r.FormValue("userId")
	if err != nil || deviceIDStr == "" || userIDStr == "" {
		apperr.Write(w, apperr.Validation("missing required fields"))
		return
	}
	defer file.Close()

	ext, appType, err := validateArtifact(header.Filename, header.Size, header.Header.Get("Content-Type"), h.maxBytes)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	deviceID, err := strconv.ParseUint(deviceIDStr, 10, 64)
	if err != nil || deviceID == 0 {
		apperr.Write(w, apperr.Validation("invalid device id"))
		return
	}
	userID, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil || userID == 0 {
		apperr.Write(w, apperr.Validation("invalid user id"))
		return
	}

	name := uuid.NewString() + ext
	storedPath, err := h.store(file, name)
	if err != nil {
		logs.Logger.WithError(err).Error("store upload")
		apperr.Write(w, apperr.Storage("failed to store uploaded file"))
		return
	}

	dev, err := h.devices.GetDeviceWithPairings(uint(deviceID))
	if err != nil {
		apperr.Write(w, err)
		return
	}
	// first pairing by insertion order; no compatibility negotiation
	if len(dev.BrowserDevices) == 0 {
		apperr.Write(w, apperr.Validation("no browser available for this device"))
		return
	}
	bd := dev.BrowserDevices[0]

	publicPath := PublicPrefix + name
	sess, err := h.sessions.Create(uint(userID), &bd.ID, session.AppTarget{Path: publicPath, Type: appType})
	if err != nil {
		if apperr.StatusOf(err) >= http.StatusInternalServerError {
			logs.Logger.WithError(err).Error("create upload session")
			apperr.Write(w, apperr.Internal("failed to upload app"))
			return
		}
		apperr.Write(w, err)
		return
	}

	logs.Logger.WithField("path", storedPath).Info("app artifact stored")
	apperr.JSON(w, http.StatusCreated, map[string]any{
		"session":  sess,
		"filePath": publicPath,
		"message":  "Android app uploaded successfully",
	})
}

// store writes the artifact under a random unique name, creating the
// uploads area if absent, and sniffs the content for an advisory type check.
func (h *Handler) store(file io.Reader, name string) (string, error) {
	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		return "", err
	}

	head := make([]byte, 261)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	head = head[:n]
	// apk/aab are zip containers; anything else sniffed is worth a warning
	if kind, _ := filetype.Match(head); kind != filetype.Unknown && kind.Extension != "zip" {
		logs.Logger.Warnf("upload %s sniffed as %s, expected a zip container", name, kind.MIME.Value)
	}

	dst := filepath.Join(h.dir, name)
	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, io.MultiReader(bytes.NewReader(head), file)); err != nil {
		os.Remove(dst)
		return "", err
	}
	return dst, nil
}
