package controllers

import (
	"net/http"
	"sort"

	"labfleet/backend/app/dto"
	"labfleet/backend/app/services"
	"labfleet/backend/global"
)

type LivenessController struct {
	Tracker  *services.LivenessTracker
	Commands *services.CommandService
}

func NewLivenessController(t *services.LivenessTracker, c *services.CommandService) *LivenessController {
	return &LivenessController{Tracker: t, Commands: c}
}

// Heartbeat handles POST /heartbeatz/{client_id}. Always succeeds.
func (c *LivenessController) Heartbeat(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("client_id")
	c.Tracker.RecordHeartbeat(clientID)
	writeJSON(w, http.StatusOK, dto.HeartbeatResponse{ClientID: clientID, Alive: true})
}

// Status handles GET /status/{client_id}.
func (c *LivenessController) Status(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("client_id")
	writeJSON(w, http.StatusOK, dto.StatusResponse{Status: c.Tracker.Status(clientID)})
}

// Clients handles GET /clients: every client id the server knows about, from
// the heartbeat map and the command table, with its liveness classification.
func (c *LivenessController) Clients(w http.ResponseWriter, r *http.Request) {
	seen := c.Tracker.Seen()
	ids := make(map[string]struct{}, len(seen))
	for id := range seen {
		ids[id] = struct{}{}
	}
	if fromStore, err := c.Commands.KnownClients(); err != nil {
		global.Logger.Error().Err(err).Msg("known clients query failed")
	} else {
		for _, id := range fromStore {
			ids[id] = struct{}{}
		}
	}

	out := dto.ClientListResponse{Clients: make([]dto.ClientInfo, 0, len(ids))}
	for id := range ids {
		info := dto.ClientInfo{ClientID: id, Status: c.Tracker.Status(id)}
		if age, ok := seen[id]; ok {
			info.LastSeenMS = age.Milliseconds()
		}
		out.Clients = append(out.Clients, info)
	}
	sort.Slice(out.Clients, func(i, j int) bool {
		return out.Clients[i].ClientID < out.Clients[j].ClientID
	})
	out.Count = len(out.Clients)
	writeJSON(w, http.StatusOK, out)
}
