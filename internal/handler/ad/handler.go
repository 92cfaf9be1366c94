package ad

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vgc-platform/admin-api/internal/clipboard"
	"github.com/vgc-platform/admin-api/internal/form"
	"github.com/vgc-platform/admin-api/internal/handler"
	"github.com/vgc-platform/admin-api/internal/listview"
	"github.com/vgc-platform/admin-api/internal/middleware"
	"github.com/vgc-platform/admin-api/internal/model"
	"github.com/vgc-platform/admin-api/internal/service/ad"
	apperrors "github.com/vgc-platform/admin-api/pkg/errors"
)

type Handler struct {
	service   *ad.Service
	clipboard *clipboard.Store
	session   *listview.Session[*model.Ad]
}

func NewHandler(service *ad.Service, clip *clipboard.Store) *Handler {
	return &Handler{
		service:   service,
		clipboard: clip,
		session: listview.NewSession(func(ctx context.Context) ([]*model.Ad, error) {
			return service.ListAds(ctx)
		}),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	ads := r.Group("/ads")
	{
		ads.GET("", h.ListAds)
		ads.POST("", h.SubmitForm)
		ads.GET("/form", h.GetForm)
		ads.DELETE("/clipboard", h.ClearClipboard)
		ads.GET("/:id", h.GetAd)
		ads.PUT("/:id", h.UpdateAd)
		ads.DELETE("/:id", h.DeleteAd)
		ads.POST("/:id/publish", h.PublishAd)
		ads.POST("/:id/edit-session", h.StartEditSession)
		ads.POST("/:id/copy-session", h.StartCopySession)
	}
}

func (h *Handler) ListAds(c *gin.Context) {
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
	stats := h.session.Stats(listview.StatsOptions[*model.Ad]{
		SumStatus: string(model.AdStatusPublished),
		Value:     func(a *model.Ad) int { return a.Points },
	})

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"page":  page,
		"stats": stats,
	}))
}

func (h *Handler) GetAd(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid ad ID"))
		return
	}

	a, err := h.service.GetAd(c.Request.Context(), id)
	if err != nil {
		c.Error(apperrors.NotFound("ad", err))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(a))
}

func (h *Handler) GetForm(c *gin.Context) {
	var params form.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	schema := ad.FormSchema()
	state := form.NewState(schema, form.ResolveMode(params, h.clipboard))

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"schema":   schema,
		"state":    state,
		"sections": state.SectionValidity(),
	}))
}

type submitRequest struct {
	BusinessID string            `json:"business_id" binding:"required,uuid"`
	Category   string            `json:"category"`
	Values     map[string]string `json:"values" binding:"required"`
}

func (h *Handler) SubmitForm(c *gin.Context) {
	var params form.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	businessID, err := uuid.Parse(req.BusinessID)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid business ID"))
		return
	}

	state := form.NewState(ad.FormSchema(), form.ResolveMode(params, h.clipboard))
	if req.Category != "" {
		state.ApplyTypeChange(req.Category)
	}
	for name, value := range req.Values {
		state.Set(name, value)
	}

	payload, verr := state.BuildPayload()
	if verr != nil {
		c.JSON(http.StatusBadRequest, handler.NewValidationErrorResponse(verr.Error(), verr.Missing))
		return
	}

	created, err := h.service.Submit(c.Request.Context(), payload, businessID, c.GetString(middleware.ContextUserEmail))
	if err != nil {
		c.Error(apperrors.Submit(err))
		return
	}

	switch payload.Mode {
	case form.ModeEdit:
		h.clipboard.ClearEditSource()
	case form.ModeCopy:
		h.clipboard.ClearCopySource()
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) StartEditSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid ad ID"))
		return
	}

	a, err := h.service.GetAd(c.Request.Context(), id)
	if err != nil {
		c.Error(apperrors.NotFound("ad", err))
		return
	}
	if a.Status != model.AdStatusDraft {
		c.JSON(http.StatusConflict, handler.NewErrorResponse("only draft ads can be edited"))
		return
	}

	h.clipboard.SetEditSource(adSource(a))
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"mode": form.ModeEdit,
		"id":   a.ID,
	}))
}

func (h *Handler) StartCopySession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid ad ID"))
		return
	}

	a, err := h.service.GetAd(c.Request.Context(), id)
	if err != nil {
		c.Error(apperrors.NotFound("ad", err))
		return
	}

	h.clipboard.SetCopySource(adSource(a))
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"mode": form.ModeCopy,
		"id":   a.ID,
	}))
}

func (h *Handler) ClearClipboard(c *gin.Context) {
	h.clipboard.Clear()
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) PublishAd(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid ad ID"))
		return
	}

	a, err := h.service.Publish(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(a))
}

func (h *Handler) UpdateAd(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid ad ID"))
		return
	}

	var req model.UpdateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	a, err := h.service.UpdateAd(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(apperrors.Internal(err))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(a))
}

func (h *Handler) DeleteAd(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid ad ID"))
		return
	}

	if err := h.service.DeleteAd(c.Request.Context(), id); err != nil {
		c.Error(apperrors.Internal(err))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func adSource(a *model.Ad) clipboard.Source {
	return clipboard.Source{
		ID:   a.ID.String(),
		Kind: string(a.Category),
		Fields: map[string]string{
			"title":  a.Title,
			"body":   a.Body,
			"points": strconv.Itoa(a.Points),
		},
	}
}
