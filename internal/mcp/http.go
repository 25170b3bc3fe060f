package mcp

import (
	"net/http"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// healthPayload is the fixed body of the liveness endpoint. Deployment
// probes match on it, so it stays stable.
const healthPayload = `{"status": "healthy", "service": "dracor-mcp-server", "transport": "streamable-http"}`

// HTTPHandler serves the MCP protocol at / in stateless streamable mode and
// a liveness check at /health. Stateless mode means any replica can answer
// any request.
func (s *Server) HTTPHandler() http.Handler {
	streamable := sdk.NewStreamableHTTPHandler(
		func(*http.Request) *sdk.Server { return s.mcp },
		&sdk.StreamableHTTPOptions{Stateless: true},
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", jsonMIME)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(healthPayload))
	})
	mux.Handle("/", streamable)
	return mux
}
