package works

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"catalog-app/internal/api/apierr"
	"catalog-app/internal/app/http/middleware"
	"catalog-app/internal/domain/works"
	"catalog-app/internal/imaging"

	"github.com/gin-gonic/gin"
)

const imageField = "image"

// ------------------------------
// POST /images  (preview; nothing is stored)
// ------------------------------
func (h *Handler) PreviewImage(c *gin.Context) {
	form, ok := h.parseForm(c)
	if !ok {
		return
	}
	asset, found, err := h.readImage(c, form)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	if !found {
		apierr.Write(c, h.log, &works.ValidationError{Field: imageField, Reason: "is required"})
		return
	}
	c.JSON(http.StatusOK, asset)
}

// ------------------------------
// POST /artworks  (multipart: title, description, dimensions, price, category, image)
// ------------------------------
func (h *Handler) Create(c *gin.Context) {
	form, ok := h.parseForm(c)
	if !ok {
		return
	}

	in := works.ArtworkInput{
		Title:       h.value(form, "title"),
		Description: h.value(form, "description"),
		Dimensions:  h.value(form, "dimensions"),
		Category:    h.value(form, "category"),
	}
	if in.Title == "" {
		apierr.Write(c, h.log, &works.ValidationError{Field: "title", Reason: "is required"})
		return
	}
	price, err := works.ParsePrice(h.value(form, "price"))
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	in.Price = price

	asset, found, err := h.readImage(c, form)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	if found {
		in.Image = asset.DataURL
	}

	a, err := h.gateway.Create(c.Request.Context(), in)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toArtworkDTO(*a))
}

// ------------------------------
// PUT /artworks/:id  (multipart; only the fields sent are changed, no image keeps the current one)
// ------------------------------
func (h *Handler) Update(c *gin.Context) {
	form, ok := h.parseForm(c)
	if !ok {
		return
	}

	var patch works.ArtworkPatch
	patch.Title = h.optional(form, "title")
	patch.Description = h.optional(form, "description")
	patch.Dimensions = h.optional(form, "dimensions")
	patch.Category = h.optional(form, "category")

	if raw := h.optional(form, "price"); raw != nil {
		price, err := works.ParsePrice(*raw)
		if err != nil {
			apierr.Write(c, h.log, err)
			return
		}
		patch.Price = &price
	}
	if raw := h.optional(form, "status"); raw != nil {
		status, err := works.ParseStatus(*raw)
		if err != nil {
			apierr.Write(c, h.log, err)
			return
		}
		patch.Status = &status
	}

	asset, found, err := h.readImage(c, form)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	if found {
		patch.Image = &asset.DataURL
	}

	id := c.Param("id")
	if err := h.gateway.Update(c.Request.Context(), id, patch); err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "Artwork updated"})
}

func (h *Handler) parseForm(c *gin.Context) (*multipart.Form, bool) {
	if c.Request.ContentLength > h.MaxUploadSize {
		apierr.Write(c, h.log, &http.MaxBytesError{Limit: h.MaxUploadSize})
		return nil, false
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadSize)
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apierr.Write(c, h.log, err)
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Expected a multipart form"})
		}
		return nil, false
	}
	return form, true
}

// readImage runs the uploaded file through the pipeline. A data URL sent as a plain field, as returned
// by the preview route, goes through the same pipeline, so stored images stay bounded either way.
func (h *Handler) readImage(c *gin.Context, form *multipart.Form) (imaging.Asset, bool, error) {
	var (
		asset imaging.Asset
		err   error
	)
	switch {
	case len(form.File[imageField]) > 0:
		var raw []byte
		raw, err = readFile(form.File[imageField][0])
		if err != nil {
			return imaging.Asset{}, false, err
		}
		asset, err = h.pipeline.Ingest(c.Request.Context(), raw)
	case len(form.Value[imageField]) > 0 && strings.TrimSpace(form.Value[imageField][0]) != "":
		asset, err = h.pipeline.IngestDataURL(c.Request.Context(), strings.TrimSpace(form.Value[imageField][0]))
	default:
		return imaging.Asset{}, false, nil
	}
	if err != nil {
		return imaging.Asset{}, false, err
	}
	h.log.Debug().Int("width", asset.Width).Int("height", asset.Height).Int("bytes", asset.Bytes).Msg("image ingested")
	return asset, true, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *Handler) value(form *multipart.Form, key string) string {
	if v := h.optional(form, key); v != nil {
		return *v
	}
	return ""
}

func (h *Handler) optional(form *multipart.Form, key string) *string {
	vals, ok := form.Value[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	v := middleware.SanitizeText(h.policy, vals[0])
	return &v
}
