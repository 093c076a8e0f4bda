package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"labfleet/backend/app/dto"
	"labfleet/backend/app/services"
	"labfleet/backend/global"
)

type CommandController struct {
	Commands *services.CommandService
}

func NewCommandController(s *services.CommandService) *CommandController {
	return &CommandController{Commands: s}
}

// Enqueue handles POST /enqueue-command.
func (c *CommandController) Enqueue(w http.ResponseWriter, r *http.Request) {
	var req dto.EnqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	id, err := c.Commands.Enqueue(req.ClientID, req.Command, req.Args)
	if err != nil {
		if errors.Is(err, services.ErrInvalidArgument) {
			writeError(w, http.StatusBadRequest, "client_id and command required")
			return
		}
		global.Logger.Error().Err(err).Msg("enqueue failed")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dto.EnqueueResponse{ID: id})
}

// Poll handles GET /poll-commands/{client_id}: the pending queue for one
// client, oldest first.
func (c *CommandController) Poll(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("client_id")
	cmds, err := c.Commands.FetchPending(clientID)
	if err != nil {
		global.Logger.Error().Err(err).Str("client_id", clientID).Msg("fetch pending failed")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	out := dto.PollResponse{Commands: make([]dto.PendingCommand, 0, len(cmds))}
	for _, cmd := range cmds {
		out.Commands = append(out.Commands, dto.PendingCommand{
			ID:        cmd.ID,
			Command:   cmd.Command,
			Args:      cmd.Args,
			Status:    cmd.Status,
			CreatedAt: cmd.CreatedAt.Unix(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Report handles POST /poll-commands/{client_id}: a client posting the
// outcome of one command.
func (c *CommandController) Report(w http.ResponseWriter, r *http.Request) {
	var req dto.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := c.Commands.ReportResult(req.ID, req.Status, req.Result); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidArgument):
			writeError(w, http.StatusBadRequest, "id required")
		case errors.Is(err, services.ErrNotFound):
			writeError(w, http.StatusNotFound, "no such command")
		default:
			global.Logger.Error().Err(err).Uint("id", req.ID).Msg("report failed")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Queue handles GET /commands?client_id=...: the full command history for one
// client, for operators.
func (c *CommandController) Queue(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		writeError(w, http.StatusBadRequest, "client_id required")
		return
	}
	cmds, err := c.Commands.ListByClient(clientID)
	if err != nil {
		global.Logger.Error().Err(err).Str("client_id", clientID).Msg("list commands failed")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	out := make([]dto.QueueEntry, 0, len(cmds))
	for _, cmd := range cmds {
		out = append(out, dto.QueueEntry{
			ID:        cmd.ID,
			Command:   cmd.Command,
			Args:      cmd.Args,
			Status:    cmd.Status,
			Result:    cmd.Result,
			CreatedAt: cmd.CreatedAt.Unix(),
			UpdatedAt: cmd.UpdatedAt.Unix(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /commands/{id}: one command with its status and result.
func (c *CommandController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	cmd, err := c.Commands.Find(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no such command")
			return
		}
		global.Logger.Error().Err(err).Uint64("id", id).Msg("find command failed")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dto.QueueEntry{
		ID:        cmd.ID,
		Command:   cmd.Command,
		Args:      cmd.Args,
		Status:    cmd.Status,
		Result:    cmd.Result,
		CreatedAt: cmd.CreatedAt.Unix(),
		UpdatedAt: cmd.UpdatedAt.Unix(),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
