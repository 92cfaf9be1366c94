package job

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vgc-platform/admin-api/internal/handler"
	"github.com/vgc-platform/admin-api/internal/listview"
	"github.com/vgc-platform/admin-api/internal/model"
	"github.com/vgc-platform/admin-api/internal/service/job"
	apperrors "github.com/vgc-platform/admin-api/pkg/errors"
)

type Handler struct {
	service *job.Service
	session *listview.Session[*model.AppliedJob]
}

func NewHandler(service *job.Service) *Handler {
	return &Handler{
		service: service,
		session: listview.NewSession(func(ctx context.Context) ([]*model.AppliedJob, error) {
			return service.ListAppliedJobs(ctx)
		}),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	jobs := r.Group("/jobs/applied")
	{
		jobs.GET("", h.ListAppliedJobs)
		jobs.GET("/:id", h.GetAppliedJob)
		jobs.PUT("/:id/status", h.UpdateStatus)
	}
}

func (h *Handler) ListAppliedJobs(c *gin.Context) {
	q, err := handler.BindListQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.session.Load(c.Request.Context()); err != nil && !errors.Is(err, listview.ErrStale) {
		c.Error(apperrors.Fetch(err))
		return
	}

	page, _ := h.session.View(q.Criteria, q.Sort, q.Page, q.PageSize)
	stats := h.session.Stats(listview.StatsOptions[*model.AppliedJob]{})

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"page":  page,
		"stats": stats,
	}))
}

func (h *Handler) GetAppliedJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid application ID"))
		return
	}

	application, err := h.service.GetAppliedJob(c.Request.Context(), id)
	if err != nil {
		c.Error(apperrors.NotFound("application", err))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(application))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid application ID"))
		return
	}

	var req model.UpdateAppliedJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	application, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(application))
}
