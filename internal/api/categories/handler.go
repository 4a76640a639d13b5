package categories

import (
	"net/http"

	"catalog-app/internal/api/apierr"
	"catalog-app/internal/catalog"
	"catalog-app/internal/domain/works"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Handler struct {
	store   *catalog.Store
	gateway *catalog.Gateway
	log     zerolog.Logger
}

func NewHandler(store *catalog.Store, gateway *catalog.Gateway, log zerolog.Logger) *Handler {
	return &Handler{store: store, gateway: gateway, log: log}
}

type listResponse struct {
	Categories works.CategoryList `json:"categories"`
	Loaded     bool               `json:"loaded"`
}

type addRequest struct {
	Name string `json:"name" binding:"required"`
}

// GET /categories
func (h *Handler) List(c *gin.Context) {
	snap := h.store.Snapshot()
	list := snap.Categories
	if list == nil {
		list = works.CategoryList{}
	}
	c.JSON(http.StatusOK, listResponse{Categories: list, Loaded: !snap.CategoriesAt.IsZero()})
}

// POST /categories
func (h *Handler) Add(c *gin.Context) {
	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.gateway.AddCategory(c.Request.Context(), req.Name)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, listResponse{Categories: list, Loaded: true})
}

// DELETE /categories/:name
// Artworks in the removed category keep it.
func (h *Handler) Remove(c *gin.Context) {
	list, err := h.gateway.RemoveCategory(c.Request.Context(), c.Param("name"))
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	if list == nil {
		list = works.CategoryList{}
	}
	c.JSON(http.StatusOK, listResponse{Categories: list, Loaded: true})
}
