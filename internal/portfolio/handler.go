package portfolio

import (
	"encoding/json"
	"net/http"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/velebit-dev/lifemaxx/internal/telemetry/tracing"
	"github.com/velebit-dev/lifemaxx/pkg"
)

// Handler serves the portfolio from filePath, falling back to the
// built in content whenever the file cannot be read or parsed. The
// client never sees the difference.
type Handler struct {
	filePath string
}

func NewHandler(filePath string) *Handler {
	return &Handler{
		filePath: filePath,
	}
}

func (handler *Handler) HandleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.portfolio.get")
	defer span.End()

	portfolio := handler.load()

	portfolioJson, err := json.Marshal(portfolio)
	if err != nil {
		log.Errorf("failed to marshal portfolio: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, portfolioJson, http.StatusOK)
}

// load reads the portfolio file fresh on every request so edits go
// live without a restart.
func (handler *Handler) load() Portfolio {
	if handler.filePath == "" {
		return defaultPortfolio()
	}

	portfolioBytes, err := os.ReadFile(handler.filePath)
	if err != nil {
		log.Warnf("read portfolio file %s: %s", handler.filePath, err)
		return defaultPortfolio()
	}

	var portfolio Portfolio
	if err := json.Unmarshal(portfolioBytes, &portfolio); err != nil {
		log.Warnf("parse portfolio file %s: %s", handler.filePath, err)
		return defaultPortfolio()
	}
	return portfolio
}
