package works

import (
	"catalog-app/internal/catalog"
	"catalog-app/internal/domain/works"
)

func toArtworkDTO(a works.Artwork) ArtworkDTO {
	return ArtworkDTO{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Dimensions:  a.Dimensions,
		Price:       a.Price,
		PriceLabel:  works.DisplayPrice(a),
		Category:    a.Category,
		Status:      a.Status,
		StatusLabel: a.Status.Label(),
		Image:       a.Image,
		CreatedAt:   a.CreatedAt,
	}
}

func toPageDTO(p catalog.Page, v catalog.View, snap *catalog.Snapshot) PageDTO {
	out := PageDTO{
		Items:      make([]ArtworkDTO, 0, len(p.Items)),
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
		Total:      p.Total,
		Search:     v.Search,
		Category:   v.Category,
		Sort:       string(v.Sort),
		Loaded:     snap.Loaded(),
		Version:    snap.Version,
	}
	for _, a := range p.Items {
		out.Items = append(out.Items, toArtworkDTO(a))
	}
	return out
}
