package business

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vgc-platform/admin-api/internal/handler"
	"github.com/vgc-platform/admin-api/internal/listview"
	"github.com/vgc-platform/admin-api/internal/model"
	"github.com/vgc-platform/admin-api/internal/service/business"
	apperrors "github.com/vgc-platform/admin-api/pkg/errors"
)

type Handler struct {
	service *business.Service
	session *listview.Session[*model.Business]
}

func NewHandler(service *business.Service) *Handler {
	return &Handler{
		service: service,
		session: listview.NewSession(func(ctx context.Context) ([]*model.Business, error) {
			return service.ListBusinesses(ctx)
		}),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	businesses := r.Group("/businesses")
	{
		businesses.POST("", h.CreateBusiness)
		businesses.GET("", h.ListBusinesses)
		businesses.GET("/:id", h.GetBusiness)
		businesses.PUT("/:id", h.UpdateBusiness)
		businesses.DELETE("/:id", h.DeleteBusiness)
	}
}

func (h *Handler) CreateBusiness(c *gin.Context) {
	var req model.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	biz, err := h.service.CreateBusiness(c.Request.Context(), &req)
	if err != nil {
		c.Error(apperrors.Internal(err))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(biz))
}

func (h *Handler) ListBusinesses(c *gin.Context) {
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
	stats := h.session.Stats(listview.StatsOptions[*model.Business]{})

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"page":  page,
		"stats": stats,
	}))
}

func (h *Handler) GetBusiness(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid business ID"))
		return
	}

	biz, err := h.service.GetBusiness(c.Request.Context(), id)
	if err != nil {
		c.Error(apperrors.NotFound("business", err))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(biz))
}

func (h *Handler) UpdateBusiness(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid business ID"))
		return
	}

	var req model.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	biz, err := h.service.UpdateBusiness(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(apperrors.Internal(err))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(biz))
}

func (h *Handler) DeleteBusiness(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid business ID"))
		return
	}

	if err := h.service.DeleteBusiness(c.Request.Context(), id); err != nil {
		c.Error(apperrors.Internal(err))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
