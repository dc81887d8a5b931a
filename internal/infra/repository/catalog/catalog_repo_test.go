package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/raosiddharth510-rao/store/internal/domain/model"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/snapshot"
)

type CatalogRepoTestSuite struct {
	suite.Suite
	store *Store
	path  string
}

func (suite *CatalogRepoTestSuite) SetupTest() {
	suite.path = filepath.Join(suite.T().TempDir(), "products.csv")
	store, err := NewStore(snapshot.NewTable(suite.path, Header()), zerolog.Nop())
	require.NoError(suite.T(), err)
	suite.store = store
}

func (suite *CatalogRepoTestSuite) reopen() *Store {
	store, err := NewStore(snapshot.NewTable(suite.path, Header()), zerolog.Nop())
	require.NoError(suite.T(), err)
	return store
}

func testProduct(id string, qty int) model.Product {
	return model.Product{
		ProductID: id,
		Name:      "Product " + id,
		Price:     decimal.NewFromFloat(10.00),
		CostPrice: decimal.NewFromFloat(6.50),
		Quantity:  qty,
	}
}

func (suite *CatalogRepoTestSuite) TestUpsertAndGet() {
	err := suite.store.Upsert(context.Background(), testProduct("P1", 3))
	require.NoError(suite.T(), err)

	got, err := suite.store.Get(context.Background(), "P1")

	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "P1", got.ProductID)
	require.Equal(suite.T(), 3, got.Quantity)
	require.True(suite.T(), decimal.NewFromFloat(10.00).Equal(got.Price))
}

func (suite *CatalogRepoTestSuite) TestGetNotFound() {
	_, err := suite.store.Get(context.Background(), "missing")

	require.ErrorIs(suite.T(), err, model.ErrProductNotFound)
}

func (suite *CatalogRepoTestSuite) TestUpsertValidation() {
	cases := []model.Product{
		{ProductID: "", Name: "x", Price: decimal.NewFromInt(1)},
		{ProductID: "P1", Name: "", Price: decimal.NewFromInt(1)},
		{ProductID: "P1", Name: "x", Price: decimal.NewFromInt(-1)},
		{ProductID: "P1", Name: "x", Price: decimal.NewFromInt(1), CostPrice: decimal.NewFromInt(-1)},
		{ProductID: "P1", Name: "x", Price: decimal.NewFromInt(1), Quantity: -1},
	}
	for _, p := range cases {
		err := suite.store.Upsert(context.Background(), p)

		var validationErr *model.ValidationError
		require.ErrorAs(suite.T(), err, &validationErr)
	}
}

func (suite *CatalogRepoTestSuite) TestUpsertReplacesInPlace() {
	require.NoError(suite.T(), suite.store.Upsert(context.Background(), testProduct("P1", 3)))
	require.NoError(suite.T(), suite.store.Upsert(context.Background(), testProduct("P2", 1)))

	updated := testProduct("P1", 9)
	updated.Name = "Renamed"
	require.NoError(suite.T(), suite.store.Upsert(context.Background(), updated))

	products, err := suite.store.List(context.Background())
	require.NoError(suite.T(), err)
	require.Len(suite.T(), products, 2)
	require.Equal(suite.T(), "P1", products[0].ProductID)
	require.Equal(suite.T(), "Renamed", products[0].Name)
	require.Equal(suite.T(), "P2", products[1].ProductID)
}

func (suite *CatalogRepoTestSuite) TestDeleteIsNoOpWhenAbsent() {
	err := suite.store.Delete(context.Background(), "missing")

	require.NoError(suite.T(), err)
}

func (suite *CatalogRepoTestSuite) TestDeleteRemovesProduct() {
	require.NoError(suite.T(), suite.store.Upsert(context.Background(), testProduct("P1", 3)))
	require.NoError(suite.T(), suite.store.Delete(context.Background(), "P1"))

	_, err := suite.store.Get(context.Background(), "P1")

	require.ErrorIs(suite.T(), err, model.ErrProductNotFound)
}

func (suite *CatalogRepoTestSuite) TestReserveStockDecrements() {
	require.NoError(suite.T(), suite.store.Upsert(context.Background(), testProduct("P1", 3)))

	reserved, err := suite.store.ReserveStock(context.Background(), "P1", 2)

	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 1, reserved.Quantity)
	require.Equal(suite.T(), "Product P1", reserved.Name)

	got, err := suite.store.Get(context.Background(), "P1")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 1, got.Quantity)
}

func (suite *CatalogRepoTestSuite) TestReserveStockInsufficient() {
	require.NoError(suite.T(), suite.store.Upsert(context.Background(), testProduct("P1", 1)))

	_, err := suite.store.ReserveStock(context.Background(), "P1", 5)

	var stockErr *model.InsufficientStockError
	require.ErrorAs(suite.T(), err, &stockErr)
	require.Equal(suite.T(), "P1", stockErr.ProductID)
	require.Equal(suite.T(), 5, stockErr.Requested)
	require.Equal(suite.T(), 1, stockErr.Available)

	// failed reservation leaves stock untouched
	got, err := suite.store.Get(context.Background(), "P1")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 1, got.Quantity)
}

func (suite *CatalogRepoTestSuite) TestReserveStockNotFound() {
	_, err := suite.store.ReserveStock(context.Background(), "missing", 1)

	require.ErrorIs(suite.T(), err, model.ErrProductNotFound)
}

func (suite *CatalogRepoTestSuite) TestReleaseStockRestores() {
	require.NoError(suite.T(), suite.store.Upsert(context.Background(), testProduct("P1", 3)))
	_, err := suite.store.ReserveStock(context.Background(), "P1", 3)
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.store.ReleaseStock(context.Background(), "P1", 3))

	got, err := suite.store.Get(context.Background(), "P1")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 3, got.Quantity)
}

func (suite *CatalogRepoTestSuite) TestReloadReproducesState() {
	expiry := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	p := testProduct("P1", 7)
	p.Expiry = &expiry
	require.NoError(suite.T(), suite.store.Upsert(context.Background(), p))
	require.NoError(suite.T(), suite.store.Upsert(context.Background(), testProduct("P2", 0)))
	_, err := suite.store.ReserveStock(context.Background(), "P1", 2)
	require.NoError(suite.T(), err)

	reloaded := suite.reopen()

	products, err := reloaded.List(context.Background())
	require.NoError(suite.T(), err)
	require.Len(suite.T(), products, 2)
	require.Equal(suite.T(), "P1", products[0].ProductID)
	require.Equal(suite.T(), 5, products[0].Quantity)
	require.NotNil(suite.T(), products[0].Expiry)
	require.True(suite.T(), expiry.Equal(*products[0].Expiry))
	require.True(suite.T(), decimal.NewFromFloat(10.00).Equal(products[0].Price))
	require.True(suite.T(), decimal.NewFromFloat(6.50).Equal(products[0].CostPrice))
	require.Nil(suite.T(), products[1].Expiry)
}

func (suite *CatalogRepoTestSuite) TestPersistFailureRollsBack() {
	// table whose directory does not exist: every snapshot write fails
	broken, err := NewStore(snapshot.NewTable(filepath.Join(suite.T().TempDir(), "gone", "products.csv"), Header()), zerolog.Nop())
	require.NoError(suite.T(), err)

	err = broken.Upsert(context.Background(), testProduct("P1", 3))

	var persistErr *model.PersistenceError
	require.ErrorAs(suite.T(), err, &persistErr)

	// in-memory state rolled back along with the failed write
	_, err = broken.Get(context.Background(), "P1")
	require.ErrorIs(suite.T(), err, model.ErrProductNotFound)
}

func TestCatalogRepoTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogRepoTestSuite))
}
