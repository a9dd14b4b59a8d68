package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdom "coliseum/internal/domain/order"
)

type mockPreferenceCreator struct {
	pref     CheckoutPreference
	fail     error
	received []orderdom.Order
}

func (m *mockPreferenceCreator) CreateCheckoutPreference(ctx context.Context, o orderdom.Order) (CheckoutPreference, error) {
	m.received = append(m.received, o)
	if m.fail != nil {
		return CheckoutPreference{}, m.fail
	}
	return m.pref, nil
}

func checkoutInput() CheckoutInput {
	return CheckoutInput{
		PayerEmail: "buyer@example.com",
		Items: []CheckoutItemInput{
			{ProductID: "p1", Title: "Shirt", Quantity: 2, UnitPrice: 49.9},
		},
	}
}

func TestCheckoutCreatesOrderBeforePreference(t *testing.T) {
	repo := newMemOrderRepo()
	prefs := &mockPreferenceCreator{pref: CheckoutPreference{ID: "pref-1", InitPoint: "https://mp.example/init"}}
	uc := NewCheckoutUsecase(repo, prefs)

	res, err := uc.Checkout(context.Background(), checkoutInput())
	require.NoError(t, err)
	assert.NotEmpty(t, res.OrderID)
	assert.Equal(t, "pref-1", res.PreferenceID)
	assert.Equal(t, "https://mp.example/init", res.InitPoint)

	// The provider saw an order that was already persisted with an id, so the
	// webhook can correlate by external_reference later.
	require.Len(t, prefs.received, 1)
	assert.Equal(t, res.OrderID, prefs.received[0].ID)
	assert.Equal(t, orderdom.StatusPending, prefs.received[0].Status)

	stored, err := repo.GetByID(context.Background(), res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "pref-1", stored.PreferenceID)
	assert.Equal(t, orderdom.StatusPending, stored.Status)
}

func TestCheckoutCancelsOrderWhenProviderFails(t *testing.T) {
	repo := newMemOrderRepo()
	prefs := &mockPreferenceCreator{fail: errors.New("mp: 500")}
	uc := NewCheckoutUsecase(repo, prefs)

	_, err := uc.Checkout(context.Background(), checkoutInput())
	require.Error(t, err)

	require.Len(t, prefs.received, 1)
	stored, gErr := repo.GetByID(context.Background(), prefs.received[0].ID)
	require.NoError(t, gErr)
	assert.Equal(t, orderdom.StatusCancelled, stored.Status)
}

func TestCheckoutNormalizesSloppyInput(t *testing.T) {
	repo := newMemOrderRepo()
	prefs := &mockPreferenceCreator{pref: CheckoutPreference{ID: "pref-1"}}
	uc := NewCheckoutUsecase(repo, prefs)

	in := CheckoutInput{
		PayerEmail: "buyer@example.com",
		Items: []CheckoutItemInput{
			{ProductID: "p1", Title: "", Quantity: 0, UnitPrice: -5},
		},
	}
	res, err := uc.Checkout(context.Background(), in)
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), res.OrderID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 1, stored.Items[0].Quantity)
	assert.Equal(t, float64(0), stored.Items[0].UnitPrice)
	assert.Equal(t, "unnamed product", stored.Items[0].Name)
}

func TestCheckoutValidation(t *testing.T) {
	ctx := context.Background()
	repo := newMemOrderRepo()
	prefs := &mockPreferenceCreator{}

	_, err := NewCheckoutUsecase(nil, prefs).Checkout(ctx, checkoutInput())
	assert.ErrorIs(t, err, ErrCheckoutRepoMissing)

	_, err = NewCheckoutUsecase(repo, nil).Checkout(ctx, checkoutInput())
	assert.ErrorIs(t, err, ErrCheckoutPrefsMissing)

	_, err = NewCheckoutUsecase(repo, prefs).Checkout(ctx, CheckoutInput{PayerEmail: "a@b.c"})
	assert.ErrorIs(t, err, ErrCheckoutItemsEmpty)

	in := checkoutInput()
	in.PayerEmail = "nope"
	_, err = NewCheckoutUsecase(repo, prefs).Checkout(ctx, in)
	assert.ErrorIs(t, err, orderdom.ErrInvalidPayerEmail)
	assert.Empty(t, prefs.received)
}

func TestCheckoutSurvivesPreferenceIDSaveFailure(t *testing.T) {
	repo := newMemOrderRepo()
	repo.setPrefErr = errors.New("firestore down")
	prefs := &mockPreferenceCreator{pref: CheckoutPreference{ID: "pref-1", InitPoint: "https://mp.example/init"}}
	uc := NewCheckoutUsecase(repo, prefs)

	res, err := uc.Checkout(context.Background(), checkoutInput())
	require.NoError(t, err)
	assert.Equal(t, "pref-1", res.PreferenceID)
}
