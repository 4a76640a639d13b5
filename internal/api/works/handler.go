package works

import (
	"net/http"
	"strconv"

	"catalog-app/internal/api/apierr"
	"catalog-app/internal/catalog"
	"catalog-app/internal/domain/works"
	"catalog-app/internal/imaging"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
)

// Handler serves the artwork routes. Reads come from the local snapshot, writes go through the gateway.
type Handler struct {
	store    *catalog.Store
	gateway  *catalog.Gateway
	pipeline *imaging.Pipeline
	log      zerolog.Logger
	policy   *bluemonday.Policy

	PageSize      int
	MaxUploadSize int64
	WhatsApp      string
}

func NewHandler(store *catalog.Store, gateway *catalog.Gateway, pipeline *imaging.Pipeline, log zerolog.Logger) *Handler {
	return &Handler{
		store:         store,
		gateway:       gateway,
		pipeline:      pipeline,
		log:           log,
		policy:        bluemonday.StrictPolicy(),
		PageSize:      catalog.DefaultPageSize,
		MaxUploadSize: 10 << 20,
	}
}

// ------------------------------
// GET /artworks?search=&category=&sort=&page=
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}

	view := catalog.NewView().
		WithSearch(c.Query("search")).
		WithCategory(c.Query("category")).
		WithSort(catalog.ParseSortMode(c.Query("sort"))).
		WithPage(page)

	snap := h.store.Snapshot()
	result := catalog.Query(snap.Artworks, view, h.PageSize)
	c.JSON(http.StatusOK, toPageDTO(result, view, snap))
}

// ------------------------------
// GET /artworks/:id
// ------------------------------
func (h *Handler) Get(c *gin.Context) {
	a, err := h.lookup(c)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toArtworkDTO(*a))
}

// ------------------------------
// GET /artworks/:id/inquiry?page_url=
// ------------------------------
func (h *Handler) Inquiry(c *gin.Context) {
	a, err := h.lookup(c)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	if a.Status == works.StatusSold {
		c.JSON(http.StatusConflict, gin.H{"error": "This piece is already sold", "state": "sold"})
		return
	}

	link, ok := works.InquiryURL(h.WhatsApp, *a, c.Query("page_url"))
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Inquiries are not configured"})
		return
	}
	c.JSON(http.StatusOK, InquiryDTO{URL: link})
}

// ------------------------------
// DELETE /artworks/:id
// ------------------------------
func (h *Handler) Delete(c *gin.Context) {
	if err := h.gateway.Delete(c.Request.Context(), c.Param("id")); err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Artwork deleted"})
}

// ------------------------------
// PUT /artworks/:id/status
// ------------------------------
func (h *Handler) SetStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := works.ParseStatus(req.Status)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	if err := h.gateway.SetStatus(c.Request.Context(), c.Param("id"), status); err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "status_label": status.Label()})
}

// the snapshot copy is used when present; otherwise the remote store is asked
func (h *Handler) lookup(c *gin.Context) (*works.Artwork, error) {
	id := c.Param("id")
	var prefetched *works.Artwork
	if a, ok := h.store.Find(id); ok {
		prefetched = &a
	}
	return h.gateway.Lookup(c.Request.Context(), id, prefetched)
}
