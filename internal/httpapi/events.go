package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/thenoetrevino/tally/internal/apperror"
	"github.com/thenoetrevino/tally/internal/auth"
	projectservice "github.com/thenoetrevino/tally/internal/services/project"
)

// handleEvents streams change events as Server-Sent Events.
// ?projectId= narrows the stream to one project; omitted means all.
// With ownership enforced the caller may only follow a project they own.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	projectID, err := queryInt(r, "projectId", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if projectID < 0 {
		writeError(w, r, apperror.New(apperror.Validation, nil, "projectId must not be negative"))
		return
	}
	if s.app.EnforceOwnership {
		if err := s.authorizeStream(r, projectID); err != nil {
			writeError(w, r, err)
			return
		}
	}

	flusher, ok := w.(http.Flusher)
	if !ok || s.app.Broker == nil {
		writeJSON(w, http.StatusServiceUnavailable, apperror.ErrorResponse{
			Error: "event streaming is not available",
			Code:  apperror.Internal.String(),
		})
		return
	}

	id, ch, cancel := s.app.Broker.Subscribe(projectID)
	defer cancel()

	s.metrics.StreamsOpen.Add(1)
	defer s.metrics.StreamsOpen.Add(-1)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, ": subscribed %s\n\n", id)
	flusher.Flush()

	heartbeat := time.NewTicker(s.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case event, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				s.logger.Error("failed to encode event", "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", event.SequenceID, event.Type, data); err != nil {
				return
			}
			flusher.Flush()
			s.metrics.EventsStreamed.Add(1)
		}
	}
}

func (s *Server) authorizeStream(r *http.Request, projectID int) error {
	if projectID == 0 {
		return apperror.NewForbidden(projectservice.ErrNotOwner, "projectId is required to follow events")
	}
	project, err := s.app.ProjectService.GetProject(r.Context(), projectID)
	if err != nil {
		return err
	}
	return projectservice.RequireOwnership(auth.PrincipalFromContext(r.Context()), project)
}
