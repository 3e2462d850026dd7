package misc

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/velebit-dev/lifemaxx/internal/telemetry/tracing"
	"github.com/velebit-dev/lifemaxx/pkg"
)

type Handler struct {
	versionInfo string
}

func NewHandler(versionInfo string) *Handler {
	return &Handler{
		versionInfo: versionInfo,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
}

// handleRoot answers uptime checks, nothing more.
func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.versionInfo")
	defer span.End()

	pkg.WriteTextResponseOK(w, handler.versionInfo)
}
