package hrreview

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	hrreviewerrors "go-exitflow/internal/hrreview/errors"
	"go-exitflow/internal/middleware"
	"go-exitflow/internal/shared/apperror"
	"go-exitflow/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("hrreview.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("hrreview.handler")
	}
	return &Handler{service: service, logger: l}
}

// NewHandlerWithRedis additionally lets Submit release the idempotency lock
// and cache its response once the submission lands.
func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Submit(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")
	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	var req SubmitHRReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Submit(
		c.Request.Context(),
		middleware.SessionFrom(c),
		c.Param("formId"),
		req,
		c.Query("edit") == "true",
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// GetByForm returns one round when ?round= is given, otherwise both.
func (h *Handler) GetByForm(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	formID := c.Param("formId")

	if roundParam := c.Query("round"); roundParam != "" {
		round, err := strconv.Atoi(roundParam)
		if err != nil {
			h.writeServiceError(c, hrreviewerrors.ErrInvalidRound)
			return
		}
		resp, err := h.service.GetByFormAndRound(c.Request.Context(), sess, formID, round)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.Success(c, http.StatusOK, resp, nil)
		return
	}

	resp, err := h.service.ListByForm(c.Request.Context(), sess, formID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
