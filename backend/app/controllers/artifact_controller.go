package controllers

import (
	"errors"
	"net/http"
	"os"

	"labfleet/backend/app/services"
	"labfleet/backend/global"
)

type ArtifactController struct {
	Store *services.ArtifactStore
}

func NewArtifactController(s *services.ArtifactStore) *ArtifactController {
	return &ArtifactController{Store: s}
}

// Upload handles POST /upload/{client_id}: a multipart screenshot upload.
// The blob is stored keyed by client id, overwriting any prior artifact.
func (c *ArtifactController) Upload(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("client_id")
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, _, err := r.FormFile("screenshot")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no screenshot file")
		return
	}
	defer file.Close()
	if err := c.Store.Save(clientID, file); err != nil {
		global.Logger.Error().Err(err).Str("client_id", clientID).Msg("store artifact failed")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "screenshot uploaded"})
}

// Download handles GET /upload/{client_id}: the latest stored screenshot.
func (c *ArtifactController) Download(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("client_id")
	data, err := c.Store.Load(clientID)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeError(w, http.StatusNotFound, "no artifact for client")
			return
		}
		global.Logger.Error().Err(err).Str("client_id", clientID).Msg("load artifact failed")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
