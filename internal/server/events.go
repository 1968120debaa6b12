package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/protoboard/protoboard/pkg/workspace"
)

// eventHeartbeat keeps idle streams open through proxies.
const eventHeartbeat = 15 * time.Second

// handleEvents streams the workspace as server-sent events. The current
// state is sent first, then one event per mutation. A slow client only ever
// receives the newest snapshot.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)

	updates := make(chan workspace.Snapshot, 1)
	cancel := s.store.Subscribe(func(snap workspace.Snapshot) {
		// Listeners are serialized by the store, so after the drain
		// there is room for the send.
		select {
		case <-updates:
		default:
		}
		updates <- snap
	})
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, rc, s.store.Snapshot()); err != nil {
		return
	}

	ticker := time.NewTicker(eventHeartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-s.closing:
			return
		case snap := <-updates:
			if err := writeEvent(w, rc, snap); err != nil {
				s.logger.Debug("event stream closed", "error", err)
				return
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, rc *http.ResponseController, snap workspace.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "id: %d\nevent: workspace\ndata: %s\n\n", snap.Revision, data); err != nil {
		return err
	}
	return rc.Flush()
}
