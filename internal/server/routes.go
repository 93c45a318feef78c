package server

import "net/http"

// NewMux wires the HTTP surface. The debug-env probe is exposed only
// outside production.
func NewMux(h *Handlers, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /recommendations", h.HandleRecommendations)
	mux.HandleFunc("GET /history", h.HandleHistory)
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET /{$}", h.HandleRoot)
	if h.debug.AppEnv != "production" {
		mux.HandleFunc("GET /debug-env", h.HandleDebugEnv)
	}

	return RequestLog(CORS(allowedOrigins)(mux))
}
