package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/raosiddharth510-rao/store/internal/domain/model"
	"github.com/raosiddharth510-rao/store/internal/service"
)

type ReportHandler struct {
	reports service.IReportService
	alerts  service.IAlertService
}

func NewReportHandler(reports service.IReportService, alerts service.IAlertService) *ReportHandler {
	return &ReportHandler{reports: reports, alerts: alerts}
}

type productSalesDTO struct {
	ProductName string          `json:"product_name"`
	Units       int             `json:"units"`
	Revenue     decimal.Decimal `json:"revenue"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Profit      decimal.Decimal `json:"profit"`
}

func (h *ReportHandler) Sales(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.SalesByProduct(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]productSalesDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, productSalesDTO{
			ProductName: row.ProductName,
			Units:       row.Units,
			Revenue:     row.Revenue,
			CostPrice:   row.CostPrice,
			Profit:      row.Profit,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type productDetailDTO struct {
	Product  productDTO     `json:"product"`
	Sales    []orderLineDTO `json:"sales"`
	Feedback []feedbackDTO  `json:"feedback"`
}

func (h *ReportHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.reports.ProductDetail(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	sales := make([]orderLineDTO, 0, len(detail.Sales))
	for _, line := range detail.Sales {
		sales = append(sales, toOrderLineDTO(line))
	}
	fb := make([]feedbackDTO, 0, len(detail.Feedback))
	for _, f := range detail.Feedback {
		fb = append(fb, toFeedbackDTO(f))
	}
	writeJSON(w, http.StatusOK, productDetailDTO{
		Product:  toProductDTO(detail.Product),
		Sales:    sales,
		Feedback: fb,
	})
}

type alertReportDTO struct {
	Expired      []productDTO `json:"expired"`
	ExpiringSoon []productDTO `json:"expiring_soon"`
	LowStock     []productDTO `json:"low_stock"`
	OutOfStock   []productDTO `json:"out_of_stock"`
}

func toProductDTOs(products []model.Product) []productDTO {
	out := make([]productDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toProductDTO(p))
	}
	return out
}

func (h *ReportHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	report, err := h.alerts.Evaluate(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, alertReportDTO{
		Expired:      toProductDTOs(report.Expired),
		ExpiringSoon: toProductDTOs(report.ExpiringSoon),
		LowStock:     toProductDTOs(report.LowStock),
		OutOfStock:   toProductDTOs(report.OutOfStock),
	})
}
