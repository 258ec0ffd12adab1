package catalog

import (
	"encoding/json"
	"net/http"

	"devicelab/internal/apperr"
	"devicelab/internal/logs"
	"devicelab/internal/models"

	"github.com/gorilla/mux"
)

type HTTP struct{ repo *Repo }

func NewHTTP(r *Repo) *HTTP { return &HTTP{repo: r} }

func (h *HTTP) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/devices", h.listDevices).Methods(http.MethodGet)
	r.HandleFunc("/devices", h.createDevice).Methods(http.MethodPost)
	r.HandleFunc("/browsers", h.listBrowsers).Methods(http.MethodGet)
	r.HandleFunc("/browsers", h.createBrowser).Methods(http.MethodPost)
}

func (h *HTTP) listDevices(w http.ResponseWriter, _ *http.Request) {
	ds, err := h.repo.ListDevices()
	if err != nil {
		logs.Logger.WithError(err).Error("list devices")
		apperr.Write(w, apperr.Internal("failed to fetch devices"))
		return
	}
	apperr.JSON(w, http.StatusOK, ds)
}

func (h *HTTP) createDevice(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name         string `json:"name"`
		Type         string `json:"type"`
		Manufacturer string `json:"manufacturer"`
		Model        string `json:"model"`
		OS           string `json:"os"`
		OSVersion    string `json:"osVersion"`
		Resolution   string `json:"resolution"`
		IsMobile     bool   `json:"isMobile"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		apperr.Write(w, apperr.Validation("invalid json"))
		return
	}
	d := &models.Device{
		Name:         in.Name,
		Type:         in.Type,
		Manufacturer: in.Manufacturer,
		DeviceModel:  in.Model,
		OS:           in.OS,
		OSVersion:    in.OSVersion,
		Resolution:   in.Resolution,
		IsMobile:     in.IsMobile,
	}
	if err := h.repo.CreateDevice(d); err != nil {
		logs.Logger.WithError(err).Error("create device")
		apperr.Write(w, apperr.Internal("failed to create device"))
		return
	}
	apperr.JSON(w, http.StatusCreated, d)
}

func (h *HTTP) listBrowsers(w http.ResponseWriter, _ *http.Request) {
	bs, err := h.repo.ListBrowsers()
	if err != nil {
		logs.Logger.WithError(err).Error("list browsers")
		apperr.Write(w, apperr.Internal("failed to fetch browsers"))
		return
	}
	apperr.JSON(w, http.StatusOK, bs)
}

func (h *HTTP) createBrowser(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name     string `json:"name"`
		Version  string `json:"version"`
		Engine   string `json:"engine"`
		IsMobile bool   `json:"isMobile"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		apperr.Write(w, apperr.Validation("invalid json"))
		return
	}
	b := &models.Browser{Name: in.Name, Version: in.Version, Engine: in.Engine, IsMobile: in.IsMobile}
	if err := h.repo.CreateBrowser(b); err != nil {
		logs.Logger.WithError(err).Error("create browser")
		apperr.Write(w, apperr.Internal("failed to create browser"))
		return
	}
	apperr.JSON(w, http.StatusCreated, b)
}
