package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/raosiddharth510-rao/store/internal/domain/model"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/catalog"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/feedback"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/ledger"
)

// ProductSales is one row of the sales-and-profit aggregation. Ledger lines
// are keyed by the denormalized product name, so sales of products deleted
// since still show up; their cost price is taken as zero.
type ProductSales struct {
	ProductName string
	Units       int
	Revenue     decimal.Decimal
	CostPrice   decimal.Decimal
	Profit      decimal.Decimal
}

type ProductDetail struct {
	Product  model.Product
	Sales    []model.OrderLine
	Feedback []model.Feedback
}

type IReportService interface {
	SalesByProduct(ctx context.Context) ([]ProductSales, error)
	ProductDetail(ctx context.Context, productID string) (*ProductDetail, error)
}

// ReportService aggregates the ledger for dashboards. Formatting belongs to
// the presentation layer; this only computes.
type ReportService struct {
	catalog  catalog.IStore
	ledger   ledger.ILedger
	feedback feedback.IRepository
}

func NewReportService(catalogStore catalog.IStore, orderLedger ledger.ILedger, feedbackRepo feedback.IRepository) *ReportService {
	return &ReportService{
		catalog:  catalogStore,
		ledger:   orderLedger,
		feedback: feedbackRepo,
	}
}

// SalesByProduct groups committed lines by product name and joins the
// current catalog cost price for profit. Rows come back sorted by name.
func (s *ReportService) SalesByProduct(ctx context.Context) ([]ProductSales, error) {
	lines, err := s.ledger.All(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*ProductSales)
	for _, line := range lines {
		row, ok := byName[line.ProductName]
		if !ok {
			row = &ProductSales{
				ProductName: line.ProductName,
				Revenue:     decimal.NewFromInt(0),
			}
			byName[line.ProductName] = row
		}
		row.Units += line.Quantity
		row.Revenue = row.Revenue.Add(line.Total)
	}

	costByName := make(map[string]decimal.Decimal)
	products, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		costByName[p.Name] = p.CostPrice
	}

	rows := make([]ProductSales, 0, len(byName))
	for _, row := range byName {
		cost, ok := costByName[row.ProductName]
		if !ok {
			cost = decimal.NewFromInt(0)
		}
		row.CostPrice = cost
		row.Profit = row.Revenue.Sub(cost.Mul(decimal.NewFromInt(int64(row.Units))))
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].ProductName < rows[j].ProductName
	})
	return rows, nil
}

// ProductDetail collects the live product record, its sales history and its
// feedback in one view.
func (s *ReportService) ProductDetail(ctx context.Context, productID string) (*ProductDetail, error) {
	product, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	var sales []model.OrderLine
	for line := range s.ledger.ByProductName(product.Name) {
		sales = append(sales, line)
	}

	records, err := s.feedback.ByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &ProductDetail{
		Product:  *product,
		Sales:    sales,
		Feedback: records,
	}, nil
}

var _ IReportService = (*ReportService)(nil)
