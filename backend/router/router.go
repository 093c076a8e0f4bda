package router

import (
	"net/http"

	"labfleet/backend/app/controllers"
	"labfleet/backend/app/middleware"
)

func NewRouter(
	httpCtrl *controllers.HTTPController,
	cmdCtrl *controllers.CommandController,
	liveCtrl *controllers.LivenessController,
	artCtrl *controllers.ArtifactController,
	auth *middleware.Auth,
) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /ping", httpCtrl.Ping)

	// client-facing endpoints
	mux.HandleFunc("GET /poll-commands/{client_id}", cmdCtrl.Poll)
	mux.HandleFunc("POST /poll-commands/{client_id}", cmdCtrl.Report)
	mux.HandleFunc("POST /heartbeatz/{client_id}", liveCtrl.Heartbeat)
	mux.HandleFunc("POST /upload/{client_id}", artCtrl.Upload)

	// operator endpoints
	mux.Handle("POST /enqueue-command", auth.RequireToken(http.HandlerFunc(cmdCtrl.Enqueue)))
	mux.Handle("GET /status/{client_id}", auth.RequireToken(http.HandlerFunc(liveCtrl.Status)))
	mux.Handle("GET /clients", auth.RequireToken(http.HandlerFunc(liveCtrl.Clients)))
	mux.Handle("GET /commands", auth.RequireToken(http.HandlerFunc(cmdCtrl.Queue)))
	mux.Handle("GET /commands/{id}", auth.RequireToken(http.HandlerFunc(cmdCtrl.Get)))
	mux.Handle("GET /upload/{client_id}", auth.RequireToken(http.HandlerFunc(artCtrl.Download)))

	return mux
}
