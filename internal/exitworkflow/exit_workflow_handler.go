package exitworkflow

import (
	"net/http"
	"strconv"

	exitworkflowerrors "go-exitflow/internal/exitworkflow/errors"
	"go-exitflow/internal/middleware"
	"go-exitflow/internal/shared/apperror"
	"go-exitflow/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("exitworkflow.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("exitworkflow.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetWorkflow(c *gin.Context) {
	resp, err := h.service.GetWorkflow(c.Request.Context(), middleware.SessionFrom(c), c.Param("formId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) NavigateToStep(c *gin.Context) {
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		h.writeServiceError(c, exitworkflowerrors.ErrInvalidStep)
		return
	}

	resp, err := h.service.NavigateToStep(c.Request.Context(), middleware.SessionFrom(c), c.Param("formId"), step)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
