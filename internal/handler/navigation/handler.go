package navigation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vgc-platform/admin-api/internal/handler"
	"github.com/vgc-platform/admin-api/internal/navigation"
)

type Handler struct {
	menu navigation.Menu
}

func NewHandler() *Handler {
	return &Handler{menu: navigation.DefaultMenu()}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	nav := r.Group("/navigation")
	{
		nav.GET("", h.GetMenu)
	}
}

// GetMenu returns the menu tree with the expansion state and breadcrumb for
// the route the client reports being on.
func (h *Handler) GetMenu(c *gin.Context) {
	state := navigation.NewState(h.menu)
	if route := c.Query("route"); route != "" {
		state.SetRoute(route)
	}

	expanded := make(map[string]bool, len(h.menu.Sections))
	for _, sec := range h.menu.Sections {
		expanded[sec.ID] = state.IsExpanded(sec.ID)
	}

	data := gin.H{
		"menu":       h.menu,
		"expanded":   expanded,
		"breadcrumb": state.Breadcrumb(),
	}
	if active, ok := state.ActiveSection(); ok {
		data["active_section"] = active.ID
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(data))
}
