package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/raosiddharth510-rao/store/internal/domain/model"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/cartstore"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/catalog"
	"github.com/raosiddharth510-rao/store/internal/service"
)

const sessionHeader = "X-Session-ID"

type CartHandler struct {
	carts    cartstore.IStore
	catalog  catalog.IStore
	checkout service.ICheckoutService
}

func NewCartHandler(carts cartstore.IStore, catalogStore catalog.IStore, checkout service.ICheckoutService) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalogStore, checkout: checkout}
}

type cartDTO struct {
	CartID string           `json:"cart_id"`
	Items  []model.CartItem `json:"items"`
	Amount decimal.Decimal  `json:"amount"`
}

func toCartDTO(cart *model.Cart) cartDTO {
	return cartDTO{
		CartID: cart.CartID.String(),
		Items:  cart.Lines(),
		Amount: cart.Amount(),
	}
}

func sessionID(r *http.Request) (string, error) {
	id := r.Header.Get(sessionHeader)
	if id == "" {
		return "", &model.ValidationError{Field: sessionHeader, Reason: "header is required"}
	}
	return id, nil
}

// load returns the session's cart, creating an empty one on first use.
func (h *CartHandler) load(r *http.Request, session string) (*model.Cart, error) {
	cart, err := h.carts.Get(r.Context(), session)
	if errors.Is(err, cartstore.ErrCartNotExist) {
		return model.NewCart(), nil
	}
	return cart, err
}

func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	session, err := sessionID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	cart, err := h.load(r, session)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartDTO(cart))
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	session, err := sessionID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDomainError(w, &model.ValidationError{Field: "body", Reason: "invalid json"})
		return
	}
	product, err := h.catalog.Get(r.Context(), req.ProductID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	cart, err := h.load(r, session)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := cart.Add(product.ProductID, product.Name, product.Price, req.Quantity); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.carts.Save(r.Context(), session, cart); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartDTO(cart))
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	session, err := sessionID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDomainError(w, &model.ValidationError{Field: "body", Reason: "invalid json"})
		return
	}
	cart, err := h.load(r, session)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	cart.SetQuantity(chi.URLParam(r, "productID"), req.Quantity)
	if err := h.carts.Save(r.Context(), session, cart); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartDTO(cart))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	session, err := sessionID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	cart, err := h.load(r, session)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	cart.Remove(chi.URLParam(r, "productID"))
	if err := h.carts.Save(r.Context(), session, cart); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartDTO(cart))
}

type checkoutRequest struct {
	PaymentMethod string `json:"payment_method"`
}

type receiptDTO struct {
	OrderID int64           `json:"order_id"`
	Lines   []orderLineDTO  `json:"lines"`
	Amount  decimal.Decimal `json:"amount"`
}

// Checkout commits the session cart as one order. The cart is cleared in
// the session store only after the commit succeeds; a rejection leaves it
// untouched so the customer can adjust and retry.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	session, err := sessionID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDomainError(w, &model.ValidationError{Field: "body", Reason: "invalid json"})
		return
	}
	cart, err := h.load(r, session)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	receipt, err := h.checkout.Commit(r.Context(), cart, model.PaymentMethod(req.PaymentMethod))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.carts.Save(r.Context(), session, cart); err != nil {
		writeDomainError(w, err)
		return
	}
	lines := make([]orderLineDTO, 0, len(receipt.Lines))
	for _, line := range receipt.Lines {
		lines = append(lines, toOrderLineDTO(line))
	}
	writeJSON(w, http.StatusCreated, receiptDTO{
		OrderID: receipt.OrderID,
		Lines:   lines,
		Amount:  receipt.Amount,
	})
}
