package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/walatech/tenant-core/internal/utils"
)

type BaseHandler struct{}

func (h *BaseHandler) RequestCtx(ginCtx *gin.Context) context.Context {
	return utils.RequestCtx(ginCtx)
}
