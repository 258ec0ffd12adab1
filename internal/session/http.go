package session

import (
	"encoding/json"
	"net/http"
	"strconv"

	"devicelab/internal/apperr"
	"devicelab/internal/logs"

	"github.com/gorilla/mux"
)

type HTTP struct{ svc *Service }

func NewHTTP(s *Service) *HTTP { return &HTTP{svc: s} }

func (h *HTTP) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/sessions", h.list).Methods(http.MethodGet)
	r.HandleFunc("/sessions", h.create).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}", h.delete).Methods(http.MethodDelete)
	r.HandleFunc("/sessions/{id}/start", h.start).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}/stop", h.stop).Methods(http.MethodPost)
}

func sessionID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("invalid session id")
	}
	return uint(id), nil
}

func (h *HTTP) list(w http.ResponseWriter, _ *http.Request) {
	ss, err := h.svc.List()
	if err != nil {
		logs.Logger.WithError(err).Error("list sessions")
		apperr.Write(w, apperr.Internal("failed to fetch sessions"))
		return
	}
	apperr.JSON(w, http.StatusOK, ss)
}

func (h *HTTP) create(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID          uint   `json:"userId"`
		BrowserDeviceID *uint  `json:"browserDeviceId"`
		URL             string `json:"url"`
		AppPath         string `json:"appPath"`
		AppType         string `json:"appType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		apperr.Write(w, apperr.Validation("invalid json"))
		return
	}

	var target Target
	switch {
	case in.URL != "" && in.AppPath != "":
		apperr.Write(w, apperr.Validation("url and appPath are mutually exclusive"))
		return
	case in.URL != "":
		target = WebTarget{URL: in.URL}
	case in.AppPath != "":
		target = AppTarget{Path: in.AppPath, Type: in.AppType}
	}

	sess, err := h.svc.Create(in.UserID, in.BrowserDeviceID, target)
	if err != nil {
		if apperr.StatusOf(err) >= http.StatusInternalServerError {
			logs.Logger.WithError(err).Error("create session")
			apperr.Write(w, apperr.Internal("failed to create session"))
			return
		}
		apperr.Write(w, err)
		return
	}
	apperr.JSON(w, http.StatusCreated, sess)
}

func (h *HTTP) get(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	sess, err := h.svc.Get(id)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	apperr.JSON(w, http.StatusOK, sess)
}

func (h *HTTP) delete(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	if err := h.svc.Delete(id); err != nil {
		if apperr.StatusOf(err) >= http.StatusInternalServerError {
			logs.Logger.WithError(err).Error("delete session")
			apperr.Write(w, apperr.Internal("failed to delete session"))
			return
		}
		apperr.Write(w, err)
		return
	}
	apperr.JSON(w, http.StatusOK, map[string]string{"message": "Session deleted successfully"})
}

func (h *HTTP) start(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	sess, err := h.svc.Start(id)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	apperr.JSON(w, http.StatusOK, sess)
}

func (h *HTTP) stop(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	sess, err := h.svc.Stop(id)
	if err != nil {
		if apperr.StatusOf(err) >= http.StatusInternalServerError {
			logs.Logger.WithError(err).Error("stop session")
			apperr.Write(w, apperr.Internal("failed to stop session"))
			return
		}
		apperr.Write(w, err)
		return
	}
	apperr.JSON(w, http.StatusOK, sess)
}
