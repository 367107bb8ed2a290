package rest

import (
	"net/http"
	"time"
	"toni/observability"
)

type healthResponse struct {
	Status    string                      `json:"status"`
	Timestamp time.Time                   `json:"timestamp"`
	Uptime    float64                     `json:"uptime"`
	Database  bool                        `json:"database"`
	Process   *observability.ProcessStats `json:"process,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Timestamp: s.now(),
		Database:  s.deps.Store != nil,
		Uptime:    s.now().Sub(s.startedAt).Seconds(),
	}
	if s.deps.Monitor != nil {
		stats := s.deps.Monitor.Latest()
		resp.Uptime = s.deps.Monitor.Uptime().Seconds()
		resp.Process = &stats
	}
	writeJSON(w, http.StatusOK, resp)
}
