package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/raosiddharth510-rao/store/internal/domain/model"
	"github.com/raosiddharth510-rao/store/internal/infra/event"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/catalog"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/feedback"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/ledger"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/snapshot"
)

func newReportFixture(t *testing.T) (*ReportService, *CheckoutService, *catalog.Store, *feedback.Repository) {
	t.Helper()
	dir := t.TempDir()
	catalogStore, err := catalog.NewStore(snapshot.NewTable(filepath.Join(dir, "products.csv"), catalog.Header()), zerolog.Nop())
	require.NoError(t, err)
	orderLedger, err := ledger.NewLedger(snapshot.NewTable(filepath.Join(dir, "orders.csv"), ledger.Header()), zerolog.Nop())
	require.NoError(t, err)
	feedbackRepo, err := feedback.NewRepository(snapshot.NewTable(filepath.Join(dir, "product_feedback.csv"), feedback.Header()), zerolog.Nop())
	require.NoError(t, err)
	checkout := NewCheckoutService(catalogStore, orderLedger, event.NopPublisher{}, zerolog.Nop())
	report := NewReportService(catalogStore, orderLedger, feedbackRepo)
	return report, checkout, catalogStore, feedbackRepo
}

func fixedDate(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
}

func commitOne(t *testing.T, checkout *CheckoutService, productID string, qty int) {
	t.Helper()
	cart := model.NewCart()
	require.NoError(t, cart.Add(productID, "", decimal.NewFromInt(0), qty))
	_, err := checkout.Commit(context.Background(), cart, model.PaymentCashOnDelivery)
	require.NoError(t, err)
}

func TestSalesByProductAggregates(t *testing.T) {
	report, checkout, catalogStore, _ := newReportFixture(t)
	seedProduct(t, catalogStore, "P1", 10, 10.00) // cost 5.00
	seedProduct(t, catalogStore, "P2", 10, 4.00)  // cost 2.00

	commitOne(t, checkout, "P1", 2)
	commitOne(t, checkout, "P1", 3)
	commitOne(t, checkout, "P2", 1)

	rows, err := report.SalesByProduct(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "Product P1", rows[0].ProductName)
	require.Equal(t, 5, rows[0].Units)
	require.True(t, decimal.NewFromFloat(50.00).Equal(rows[0].Revenue))
	require.True(t, decimal.NewFromFloat(25.00).Equal(rows[0].Profit), "50 revenue - 5 units * 5 cost")

	require.Equal(t, "Product P2", rows[1].ProductName)
	require.Equal(t, 1, rows[1].Units)
	require.True(t, decimal.NewFromFloat(4.00).Equal(rows[1].Revenue))
	require.True(t, decimal.NewFromFloat(2.00).Equal(rows[1].Profit))
}

func TestSalesByProductDeletedProductCostsZero(t *testing.T) {
	report, checkout, catalogStore, _ := newReportFixture(t)
	seedProduct(t, catalogStore, "P1", 10, 10.00)
	commitOne(t, checkout, "P1", 2)
	require.NoError(t, catalogStore.Delete(context.Background(), "P1"))

	rows, err := report.SalesByProduct(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.True(t, decimal.NewFromFloat(20.00).Equal(rows[0].Revenue))
	require.True(t, decimal.NewFromFloat(20.00).Equal(rows[0].Profit), "no cost price left to subtract")
}

func TestSalesByProductEmptyLedger(t *testing.T) {
	report, _, _, _ := newReportFixture(t)

	rows, err := report.SalesByProduct(context.Background())

	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestProductDetail(t *testing.T) {
	report, checkout, catalogStore, feedbackRepo := newReportFixture(t)
	seedProduct(t, catalogStore, "P1", 10, 10.00)
	seedProduct(t, catalogStore, "P2", 10, 4.00)
	commitOne(t, checkout, "P1", 2)
	commitOne(t, checkout, "P2", 1)
	require.NoError(t, feedbackRepo.Add(context.Background(), model.Feedback{
		ProductID: "P1", CustomerName: "Asha", Rating: 5, Message: "great",
		Date: fixedDate(t),
	}))

	detail, err := report.ProductDetail(context.Background(), "P1")

	require.NoError(t, err)
	require.Equal(t, "P1", detail.Product.ProductID)
	require.Len(t, detail.Sales, 1)
	require.Equal(t, 2, detail.Sales[0].Quantity)
	require.Len(t, detail.Feedback, 1)
	require.Equal(t, 5, detail.Feedback[0].Rating)
}

func TestProductDetailNotFound(t *testing.T) {
	report, _, _, _ := newReportFixture(t)

	_, err := report.ProductDetail(context.Background(), "missing")

	require.ErrorIs(t, err, model.ErrProductNotFound)
}
