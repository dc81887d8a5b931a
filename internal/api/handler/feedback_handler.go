package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/raosiddharth510-rao/store/internal/domain/model"
	"github.com/raosiddharth510-rao/store/internal/service"
)

type FeedbackHandler struct {
	feedback service.IFeedbackService
}

func NewFeedbackHandler(feedbackService service.IFeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedbackService}
}

type feedbackDTO struct {
	ProductID    string    `json:"product_id"`
	OrderID      int64     `json:"order_id,omitempty"`
	CustomerName string    `json:"customer_name"`
	Rating       int       `json:"rating"`
	Message      string    `json:"message"`
	Date         time.Time `json:"date"`
}

func toFeedbackDTO(f model.Feedback) feedbackDTO {
	return feedbackDTO{
		ProductID:    f.ProductID,
		OrderID:      f.OrderID,
		CustomerName: f.CustomerName,
		Rating:       f.Rating,
		Message:      f.Message,
		Date:         f.Date,
	}
}

func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var dto feedbackDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeDomainError(w, &model.ValidationError{Field: "body", Reason: "invalid json"})
		return
	}
	record := model.Feedback{
		ProductID:    dto.ProductID,
		OrderID:      dto.OrderID,
		CustomerName: dto.CustomerName,
		Rating:       dto.Rating,
		Message:      dto.Message,
		Date:         dto.Date,
	}
	if err := h.feedback.Submit(r.Context(), record); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// List returns all feedback, optionally narrowed to one product.
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		records []model.Feedback
		err     error
	)
	if productID := r.URL.Query().Get("product_id"); productID != "" {
		records, err = h.feedback.ByProduct(r.Context(), productID)
	} else {
		records, err = h.feedback.All(r.Context())
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]feedbackDTO, 0, len(records))
	for _, f := range records {
		out = append(out, toFeedbackDTO(f))
	}
	writeJSON(w, http.StatusOK, out)
}
