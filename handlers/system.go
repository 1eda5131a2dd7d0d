package handlers

import (
	"context"

	"github.com/skyvein-baas/client-skyvein-golang-xt/models"
)

func (a *Api) Remark(ctx context.Context, remark []byte) (models.Extrinsic, error) {
	return Compose(ctx, a, models.SystemRemark, models.RemarkArgs{Remark: remark})
}
