package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/raosiddharth510-rao/store/internal/domain/model"
)

func alertProduct(id string, qty int, expiry *time.Time) model.Product {
	return model.Product{
		ProductID: id,
		Name:      "Product " + id,
		Price:     decimal.NewFromInt(1),
		Quantity:  qty,
		Expiry:    expiry,
	}
}

func ids(products []model.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ProductID)
	}
	return out
}

func TestEvaluateAlertsPartitions(t *testing.T) {
	now := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	inThreeDays := now.AddDate(0, 0, 3)
	inTenDays := now.AddDate(0, 0, 10)

	products := []model.Product{
		alertProduct("expired", 10, &yesterday),
		alertProduct("soon", 10, &inThreeDays),
		alertProduct("far", 10, &inTenDays),
		alertProduct("low", 3, nil),
		alertProduct("out", 0, nil),
		alertProduct("healthy", 100, nil),
	}

	report := EvaluateAlerts(products, now, DefaultLowStockThreshold, DefaultExpiryWindow)

	require.Equal(t, []string{"expired"}, ids(report.Expired))
	require.Equal(t, []string{"soon"}, ids(report.ExpiringSoon))
	require.Equal(t, []string{"low"}, ids(report.LowStock))
	require.Equal(t, []string{"out"}, ids(report.OutOfStock))
}

func TestEvaluateAlertsOverlappingPartitions(t *testing.T) {
	now := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	// expired and out of stock at the same time
	report := EvaluateAlerts([]model.Product{alertProduct("both", 0, &yesterday)}, now, 5, DefaultExpiryWindow)

	require.Equal(t, []string{"both"}, ids(report.Expired))
	require.Equal(t, []string{"both"}, ids(report.OutOfStock))
	require.Empty(t, report.LowStock)
}

func TestEvaluateAlertsBoundaries(t *testing.T) {
	now := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	exactlySevenDays := now.Add(DefaultExpiryWindow)

	report := EvaluateAlerts([]model.Product{
		alertProduct("edge-expiry", 10, &exactlySevenDays),
		alertProduct("edge-stock", DefaultLowStockThreshold, nil),
		alertProduct("today", 10, &now),
	}, now, DefaultLowStockThreshold, DefaultExpiryWindow)

	require.Equal(t, []string{"edge-expiry", "today"}, ids(report.ExpiringSoon))
	require.Equal(t, []string{"edge-stock"}, ids(report.LowStock))
	require.Empty(t, report.Expired, "expiry exactly now is not yet expired")
}
