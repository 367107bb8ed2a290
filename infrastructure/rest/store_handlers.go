package rest

import (
	"net/http"
	"strconv"
	"toni/domain"
	"toni/errors"
)

type sessionResponse struct {
	Session  domain.Session   `json:"session"`
	Messages []domain.Message `json:"messages"`
}

type registerDeviceRequest struct {
	DeviceIP   string  `json:"device_ip" validate:"required"`
	DeviceSSID *string `json:"device_ssid"`
}

var deviceMessages = tagMessages{"required": "Missing required field: device_ip"}

// storeAvailable answers 503 when the server runs without persistence.
func (s *Server) storeAvailable(w http.ResponseWriter) bool {
	if s.deps.Store == nil {
		writeError(w, http.StatusServiceUnavailable, errors.ErrPersistenceDisabled.Error())
		return false
	}
	return true
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	if !s.storeAvailable(w) {
		return
	}
	id := r.PathValue("id")
	session, err := s.deps.Store.GetSession(r.Context(), id)
	if errors.Is(err, errors.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		s.log.Error("Get session failed", "session_id", id, "error", err)
		writeFailure(w, "Failed to get session", err)
		return
	}
	messages, err := s.deps.Store.ListMessages(r.Context(), id)
	if err != nil {
		s.log.Error("List messages failed", "session_id", id, "error", err)
		writeFailure(w, "Failed to get session", err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Session: session, Messages: messages})
}

// handleRecentSessions takes ?limit=N; a missing or non-positive limit
// falls back to the store default.
func (s *Server) handleRecentSessions(w http.ResponseWriter, r *http.Request) {
	if !s.storeAvailable(w) {
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		limit = 0
	}
	sessions, err := s.deps.Store.RecentSessions(r.Context(), limit)
	if err != nil {
		s.log.Error("Recent sessions failed", "error", err)
		writeFailure(w, "Failed to get sessions", err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	var body registerDeviceRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if err := validate.Struct(body); err != nil {
		rejectInvalid(w, err, deviceMessages)
		return
	}
	if !s.storeAvailable(w) {
		return
	}
	device, err := s.deps.Store.UpsertDevice(r.Context(), body.DeviceIP, body.DeviceSSID)
	if err != nil {
		s.log.Error("Register device failed", "device_ip", body.DeviceIP, "error", err)
		writeFailure(w, "Failed to register device", err)
		return
	}
	writeJSON(w, http.StatusOK, device)
}

func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	if !s.storeAvailable(w) {
		return
	}
	devices, err := s.deps.Store.ListDevices(r.Context())
	if err != nil {
		s.log.Error("List devices failed", "error", err)
		writeFailure(w, "Failed to get devices", err)
		return
	}
	writeJSON(w, http.StatusOK, devices)
}

func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	if !s.storeAvailable(w) {
		return
	}
	ip := r.PathValue("ip")
	device, err := s.deps.Store.GetDevice(r.Context(), ip)
	if errors.Is(err, errors.ErrDeviceNotFound) {
		writeError(w, http.StatusNotFound, "Device not found")
		return
	}
	if err != nil {
		s.log.Error("Get device failed", "device_ip", ip, "error", err)
		writeFailure(w, "Failed to get device", err)
		return
	}
	writeJSON(w, http.StatusOK, device)
}
