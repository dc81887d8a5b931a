package service

import (
	"context"
	"time"

	"github.com/raosiddharth510-rao/store/internal/domain/model"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/catalog"
)

const (
	DefaultLowStockThreshold = 5
	DefaultExpiryWindow      = 7 * 24 * time.Hour
)

type IAlertService interface {
	Evaluate(ctx context.Context) (model.AlertReport, error)
}

// AlertService derives dashboard views from a catalog snapshot. It reads
// only, and stale-by-a-moment data is acceptable here.
type AlertService struct {
	catalog           catalog.IStore
	lowStockThreshold int
	expiryWindow      time.Duration
	now               func() time.Time
}

func NewAlertService(catalogStore catalog.IStore, lowStockThreshold int, expiryWindow time.Duration) *AlertService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	if expiryWindow <= 0 {
		expiryWindow = DefaultExpiryWindow
	}
	return &AlertService{
		catalog:           catalogStore,
		lowStockThreshold: lowStockThreshold,
		expiryWindow:      expiryWindow,
		now:               time.Now,
	}
}

func (s *AlertService) Evaluate(ctx context.Context) (model.AlertReport, error) {
	products, err := s.catalog.List(ctx)
	if err != nil {
		return model.AlertReport{}, err
	}
	return EvaluateAlerts(products, s.now(), s.lowStockThreshold, s.expiryWindow), nil
}

// EvaluateAlerts partitions products into the four alert views. The
// partitions are independent: an expired product with zero stock shows up
// in both lists.
func EvaluateAlerts(products []model.Product, now time.Time, lowStockThreshold int, expiryWindow time.Duration) model.AlertReport {
	var report model.AlertReport
	for _, p := range products {
		if p.Expired(now) {
			report.Expired = append(report.Expired, p)
		}
		if p.ExpiresWithin(now, expiryWindow) {
			report.ExpiringSoon = append(report.ExpiringSoon, p)
		}
		if p.Quantity == 0 {
			report.OutOfStock = append(report.OutOfStock, p)
		}
		if p.Quantity > 0 && p.Quantity <= lowStockThreshold {
			report.LowStock = append(report.LowStock, p)
		}
	}
	return report
}

var _ IAlertService = (*AlertService)(nil)
