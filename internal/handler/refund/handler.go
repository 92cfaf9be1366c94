package refund

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
	"github.com/vgc-platform/admin-api/internal/service/refund"
	apperrors "github.com/vgc-platform/admin-api/pkg/errors"
)

type Handler struct {
	service   *refund.Service
	clipboard *clipboard.Store
	session   *listview.Session[*model.Refund]
}

func NewHandler(service *refund.Service, clip *clipboard.Store) *Handler {
	return &Handler{
		service:   service,
		clipboard: clip,
		session: listview.NewSession(func(ctx context.Context) ([]*model.Refund, error) {
			return service.ListRefunds(ctx)
		}),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	refunds := r.Group("/refunds")
	{
		refunds.GET("", h.ListRefunds)
		refunds.POST("", h.SubmitForm)
		refunds.GET("/form", h.GetForm)
		refunds.DELETE("/clipboard", h.ClearClipboard)
		refunds.GET("/:id", h.GetRefund)
		refunds.POST("/:id/edit-session", h.StartEditSession)
		refunds.POST("/:id/copy-session", h.StartCopySession)
		refunds.POST("/:id/approve", h.ApproveRefund)
		refunds.POST("/:id/reject", h.RejectRefund)
	}
}

func (h *Handler) ListRefunds(c *gin.Context) {
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
	stats := h.session.Stats(listview.StatsOptions[*model.Refund]{
		SumStatus: string(model.RefundStatusApproved),
		Value:     func(r *model.Refund) int { return r.Points },
	})

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"page":  page,
		"stats": stats,
	}))
}

func (h *Handler) GetRefund(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid refund ID"))
		return
	}

	ref, err := h.service.GetRefund(c.Request.Context(), id)
	if err != nil {
		c.Error(apperrors.NotFound("refund", err))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(ref))
}

// GetForm resolves the form session for the edit/copy query parameters and
// returns the seeded state alongside the declared schema.
func (h *Handler) GetForm(c *gin.Context) {
	var params form.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	schema := refund.FormSchema()
	state := form.NewState(schema, form.ResolveMode(params, h.clipboard))

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"schema":   schema,
		"state":    state,
		"sections": state.SectionValidity(),
	}))
}

type submitRequest struct {
	Type   string            `json:"type"`
	Values map[string]string `json:"values" binding:"required"`
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

	state := form.NewState(refund.FormSchema(), form.ResolveMode(params, h.clipboard))
	if req.Type != "" {
		state.ApplyTypeChange(req.Type)
	}
	for name, value := range req.Values {
		state.Set(name, value)
	}

	payload, verr := state.BuildPayload()
	if verr != nil {
		c.JSON(http.StatusBadRequest, handler.NewValidationErrorResponse(verr.Error(), verr.Missing))
		return
	}

	user, ok := userFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	created, err := h.service.Submit(c.Request.Context(), payload, user)
	if err != nil {
		c.Error(apperrors.Submit(err))
		return
	}

	// The consumed slot is cleared once the submission lands.
	switch payload.Mode {
	case form.ModeEdit:
		h.clipboard.ClearEditSource()
	case form.ModeCopy:
		h.clipboard.ClearCopySource()
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

// StartEditSession caches the refund in the edit slot so the form page can
// resolve an edit-mode session for it.
func (h *Handler) StartEditSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid refund ID"))
		return
	}

	ref, err := h.service.GetRefund(c.Request.Context(), id)
	if err != nil {
		c.Error(apperrors.NotFound("refund", err))
		return
	}
	if ref.Status != model.RefundStatusPending {
		c.JSON(http.StatusConflict, handler.NewErrorResponse("only pending refunds can be edited"))
		return
	}

	h.clipboard.SetEditSource(refundSource(ref))
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"mode": form.ModeEdit,
		"id":   ref.ID,
	}))
}

// StartCopySession caches the refund in the copy slot. Any refund can act as
// a template, regardless of its status.
func (h *Handler) StartCopySession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid refund ID"))
		return
	}

	ref, err := h.service.GetRefund(c.Request.Context(), id)
	if err != nil {
		c.Error(apperrors.NotFound("refund", err))
		return
	}

	h.clipboard.SetCopySource(refundSource(ref))
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"mode": form.ModeCopy,
		"id":   ref.ID,
	}))
}

func (h *Handler) ClearClipboard(c *gin.Context) {
	h.clipboard.Clear()
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ApproveRefund(c *gin.Context) {
	h.processRefund(c, h.service.Approve)
}

func (h *Handler) RejectRefund(c *gin.Context) {
	h.processRefund(c, h.service.Reject)
}

func (h *Handler) processRefund(c *gin.Context, decide func(context.Context, uuid.UUID, *model.ProcessRefundRequest) (*model.Refund, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid refund ID"))
		return
	}

	var req model.ProcessRefundRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
			return
		}
	}

	processed, err := decide(c.Request.Context(), id, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(processed))
}

func refundSource(r *model.Refund) clipboard.Source {
	return clipboard.Source{
		ID:   r.ID.String(),
		Kind: string(r.Type),
		Fields: map[string]string{
			"reason":          r.Reason,
			"transaction_ref": r.TransactionRef,
			"points":          strconv.Itoa(r.Points),
			"notes":           r.Notes,
		},
	}
}

// userFromContext rebuilds the submitting user from what the auth middleware
// stored. A missing or mangled id means the request never passed it.
func userFromContext(c *gin.Context) (*model.User, bool) {
	id, err := uuid.Parse(c.GetString(middleware.ContextUserID))
	if err != nil {
		return nil, false
	}
	return &model.User{
		ID:    id,
		Email: c.GetString(middleware.ContextUserEmail),
	}, true
}
