package handlers

import (
	"context"
	"time"

	"github.com/skyvein-baas/client-skyvein-golang-xt/models"
)

// SetTimestamp composes the Timestamp.set inherent. Inherents are unsigned,
// so it never uses the Api's signer.
func (a *Api) SetTimestamp(_ context.Context, now time.Time) (models.Extrinsic, error) {
	call, err := models.TimestampSet.Build(a.resolver, models.MomentArgs{Now: models.NewCompactMoment(now)})
	if err != nil {
		return models.Extrinsic{}, err
	}
	xt := models.ComposeUnsigned(call)
	a.metrics.Composed.WithLabelValues("false", "false").Inc()
	return xt, nil
}
