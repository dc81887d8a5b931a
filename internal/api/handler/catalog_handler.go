package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/raosiddharth510-rao/store/internal/domain/model"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/catalog"
	"github.com/raosiddharth510-rao/store/internal/service"
)

type CatalogHandler struct {
	catalog catalog.IStore
	scan    service.IScanService
}

func NewCatalogHandler(catalogStore catalog.IStore, scan service.IScanService) *CatalogHandler {
	return &CatalogHandler{catalog: catalogStore, scan: scan}
}

type productDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CostPrice decimal.Decimal `json:"cost_price"`
	Quantity  int             `json:"quantity"`
	Expiry    *time.Time      `json:"expiry,omitempty"`
}

func toProductDTO(p model.Product) productDTO {
	return productDTO{
		ProductID: p.ProductID,
		Name:      p.Name,
		Price:     p.Price,
		CostPrice: p.CostPrice,
		Quantity:  p.Quantity,
		Expiry:    p.Expiry,
	}
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]productDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toProductDTO(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.Get(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(*product))
}

func (h *CatalogHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var dto productDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeDomainError(w, &model.ValidationError{Field: "body", Reason: "invalid json"})
		return
	}
	product := model.Product{
		ProductID: dto.ProductID,
		Name:      dto.Name,
		Price:     dto.Price,
		CostPrice: dto.CostPrice,
		Quantity:  dto.Quantity,
		Expiry:    dto.Expiry,
	}
	if err := h.catalog.Upsert(r.Context(), product); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(product))
}

func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Delete(r.Context(), chi.URLParam(r, "productID")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type scanRequest struct {
	Payload string `json:"payload"`
}

// Scan resolves whatever an external scanner decoded into a catalog record.
func (h *CatalogHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDomainError(w, &model.ValidationError{Field: "body", Reason: "invalid json"})
		return
	}
	product, err := h.scan.ResolveProduct(r.Context(), req.Payload)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(*product))
}
