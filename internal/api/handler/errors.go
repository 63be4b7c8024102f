package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/mayank0365/SlotSwapper/pkg/errors"
	"github.com/mayank0365/SlotSwapper/pkg/response"
)

// handleError 将 Service 返回的错误映射为统一响应
// 业务错误按分类映射状态码，其余一律 500 且不暴露细节
func handleError(c *gin.Context, err error) {
	appErr, ok := pkgerrors.As(err)
	if !ok {
		// 记录到 gin.Context，供日志中间件输出
		_ = c.Error(err)
		response.InternalError(c)
		return
	}
	response.Error(c, statusOf(appErr.Kind), appErr.Code, appErr.Message)
}

func statusOf(kind pkgerrors.Kind) int {
	switch kind {
	case pkgerrors.KindValidation, pkgerrors.KindConflict:
		return http.StatusBadRequest
	case pkgerrors.KindAuthorization:
		return http.StatusForbidden
	case pkgerrors.KindNotFound:
		return http.StatusNotFound
	case pkgerrors.KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
