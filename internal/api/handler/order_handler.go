package handler

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/raosiddharth510-rao/store/internal/domain/model"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/ledger"
)

type OrderHandler struct {
	ledger ledger.ILedger
}

func NewOrderHandler(orderLedger ledger.ILedger) *OrderHandler {
	return &OrderHandler{ledger: orderLedger}
}

type orderLineDTO struct {
	OrderID       int64           `json:"order_id"`
	ProductName   string          `json:"product_name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int             `json:"quantity"`
	Total         decimal.Decimal `json:"total"`
	Date          time.Time       `json:"date"`
	PaymentMethod string          `json:"payment_method"`
}

func toOrderLineDTO(line model.OrderLine) orderLineDTO {
	return orderLineDTO{
		OrderID:       line.OrderID,
		ProductName:   line.ProductName,
		UnitPrice:     line.UnitPrice,
		Quantity:      line.Quantity,
		Total:         line.Total,
		Date:          line.Date,
		PaymentMethod: string(line.PaymentMethod),
	}
}

// List returns every ledger line, optionally filtered by product name.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("product_name"); name != "" {
		out := make([]orderLineDTO, 0)
		for line := range h.ledger.ByProductName(name) {
			out = append(out, toOrderLineDTO(line))
		}
		writeJSON(w, http.StatusOK, out)
		return
	}
	lines, err := h.ledger.All(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]orderLineDTO, 0, len(lines))
	for _, line := range lines {
		out = append(out, toOrderLineDTO(line))
	}
	writeJSON(w, http.StatusOK, out)
}
