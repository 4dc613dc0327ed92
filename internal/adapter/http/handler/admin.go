package handler

import (
	"context"
	"net/http"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
	wrap "github.com/Temutjin2k/ride-hail-insights/pkg/logger/wrapper"
)

// Reloader swaps the active dataset snapshot.
type Reloader interface {
	Name() string
	Reload(ctx context.Context) (models.DatasetInfo, error)
}

type Admin struct {
	r Reloader
	l logger.Logger
}

func NewAdmin(r Reloader, l logger.Logger) *Admin {
	return &Admin{
		r: r,
		l: l,
	}
}

// ReloadDataset godoc
// @Summary      Reload the dataset
// @Description  Re-reads the configured source. On failure the previous snapshot stays active.
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.DatasetInfo
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /admin/dataset/reload [post]
func (h *Admin) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithDataset(wrap.WithAction(r.Context(), "admin_reload_dataset"), h.r.Name())

	if u := models.UserFromContext(ctx); u != nil {
		ctx = wrap.WithUserID(ctx, u.ID.String())
	}

	info, err := h.r.Reload(ctx)
	if err != nil {
		serviceErrorResponse(w, r.WithContext(ctx), h.l, "failed to reload dataset", err)
		return
	}

	h.l.Info(ctx, "dataset reloaded on request", "rows", info.Rows, "fingerprint", info.Fingerprint)
	writeOrLog(w, r, h.l, http.StatusOK, envelope{"dataset": info})
}
