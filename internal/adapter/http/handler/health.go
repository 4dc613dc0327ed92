package handler

import (
	"context"
	"net/http"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
	wrap "github.com/Temutjin2k/ride-hail-insights/pkg/logger/wrapper"
)

// DatasetInfoer reports the active dataset snapshot.
type DatasetInfoer interface {
	Dataset(ctx context.Context) (models.DatasetInfo, error)
}

type Health struct {
	serviceName string
	dataset     DatasetInfoer
	log         logger.Logger
}

func NewHealth(serviceName string, dataset DatasetInfoer, log logger.Logger) *Health {
	return &Health{
		serviceName: serviceName,
		dataset:     dataset,
		log:         log,
	}
}

// HealthCheck godoc
// @Summary      Health Check
// @Description  Returns the health status of the service and the loaded dataset
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      503  {object}  map[string]any
// @Router       /health [get]
func (a *Health) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "health_check")

	status := http.StatusOK
	response := envelope{
		"status": "available",
		"system_info": map[string]string{
			"service-name": a.serviceName,
		},
	}

	if a.dataset != nil {
		info, err := a.dataset.Dataset(ctx)
		if err != nil {
			status = http.StatusServiceUnavailable
			response["status"] = "unavailable"
			response["dataset_error"] = err.Error()
		} else {
			response["dataset"] = info
		}
	}

	if err := writeJSON(w, status, response, nil); err != nil {
		a.log.Error(ctx, "healthcheck", err)
		return
	}
}
