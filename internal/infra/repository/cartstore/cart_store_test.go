package cartstore

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/raosiddharth510-rao/store/internal/domain/model"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	cart := model.NewCart()
	require.NoError(t, cart.Add("P1", "Milk", decimal.NewFromFloat(10.00), 2))

	require.NoError(t, store.Save(context.Background(), "s1", cart))

	got, err := store.Get(context.Background(), "s1")
	require.NoError(t, err)
	require.Equal(t, cart.CartID, got.CartID)
	require.Equal(t, 2, got.Items["P1"].Quantity)
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "missing")

	require.ErrorIs(t, err, ErrCartNotExist)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), "s1", model.NewCart()))

	require.NoError(t, store.Delete(context.Background(), "s1"))

	_, err := store.Get(context.Background(), "s1")
	require.ErrorIs(t, err, ErrCartNotExist)
}
