package service

import (
	"context"
	"time"

	"github.com/raosiddharth510-rao/store/internal/domain/model"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/catalog"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/feedback"
)

type IFeedbackService interface {
	Submit(ctx context.Context, f model.Feedback) error
	All(ctx context.Context) ([]model.Feedback, error)
	ByProduct(ctx context.Context, productID string) ([]model.Feedback, error)
}

// FeedbackService checks that feedback points at a product that exists
// right now. The order reference stays weak: customers may quote any order
// id and the record is kept even after the order's product is deleted.
type FeedbackService struct {
	repo    feedback.IRepository
	catalog catalog.IStore
	now     func() time.Time
}

func NewFeedbackService(repo feedback.IRepository, catalogStore catalog.IStore) *FeedbackService {
	return &FeedbackService{
		repo:    repo,
		catalog: catalogStore,
		now:     time.Now,
	}
}

func (s *FeedbackService) Submit(ctx context.Context, f model.Feedback) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if _, err := s.catalog.Get(ctx, f.ProductID); err != nil {
		return err
	}
	if f.Date.IsZero() {
		f.Date = s.now()
	}
	return s.repo.Add(ctx, f)
}

func (s *FeedbackService) All(ctx context.Context) ([]model.Feedback, error) {
	return s.repo.All(ctx)
}

func (s *FeedbackService) ByProduct(ctx context.Context, productID string) ([]model.Feedback, error) {
	return s.repo.ByProductID(ctx, productID)
}

var _ IFeedbackService = (*FeedbackService)(nil)
