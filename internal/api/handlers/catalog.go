package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/fichas-admin/internal/api/errors"
	"github.com/bigkaa/fichas-admin/internal/service"
)

// CatalogHandler — публичный каталог /api/catalogo.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler создаёт обработчик каталога.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type catalogItemJSON struct {
	ID              string   `json:"id"`
	Nombre          string   `json:"nombre"`
	Imagen          string   `json:"imagen"`
	Caracteristicas []string `json:"caracteristicas"`
}

func toCatalogJSON(it service.CatalogItem) catalogItemJSON {
	return catalogItemJSON(it)
}

// List — GET /api/catalogo?q=.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.catalog.Search(r.URL.Query().Get("q"))
	out := make([]catalogItemJSON, 0, len(items))
	for _, it := range items {
		out = append(out, toCatalogJSON(it))
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": out})
}

// Get — GET /api/catalogo/{id}.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	it, ok := h.catalog.Get(chi.URLParam(r, "id"))
	if !ok {
		apierrors.NotFound(w, "Artículo no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": toCatalogJSON(it)})
}
