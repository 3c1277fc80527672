package services_test

import (
	"context"
	"testing"

	"minimall/internal/models"
	"minimall/internal/services"

	"github.com/stretchr/testify/assert"
)

// deliveredOrder creates an order for prod-1 and walks it to delivered.
func deliveredOrder(t *testing.T, f *orderFixture) *models.Order {
	t.Helper()
	order, err := f.orders.CreateOrder(context.Background(), f.userID, services.CreateOrderInput{
		Items:     []services.OrderItemInput{{ProductID: "prod-1", Quantity: 1, Price: 10.00}},
		AddressID: f.addressID,
	})
	assert.NoError(t, err)
	f.advance(t, order, models.OrderStatusPaid, models.OrderStatusShipped, models.OrderStatusDelivered)
	return order
}

func TestCreateReviewCompletesOrder(t *testing.T) {
	f := newOrderFixture(t)
	f.seedProduct(t, "prod-1", "Green Apple", 10.00, 5)
	reviews := services.NewReviewService(f.uow)
	order := deliveredOrder(t, f)

	review, err := reviews.Create(f.userID, order.ID, "prod-1", 5, "Crisp and sweet")
	assert.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.Equal(t, 5, review.Rating)

	// Reviewing is what completes the order.
	reloaded, err := f.orders.GetOrder(f.userID, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, reloaded.Status)

	listed, err := reviews.ListByProduct("prod-1")
	assert.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, "Crisp and sweet", listed[0].Content)
}

func TestCreateReviewRejectsDuplicate(t *testing.T) {
	f := newOrderFixture(t)
	f.seedProduct(t, "prod-1", "Green Apple", 10.00, 5)
	reviews := services.NewReviewService(f.uow)
	order := deliveredOrder(t, f)

	_, err := reviews.Create(f.userID, order.ID, "prod-1", 4, "")
	assert.NoError(t, err)

	// The first review completed the order, so a second one fails on status.
	_, err = reviews.Create(f.userID, order.ID, "prod-1", 2, "changed my mind")
	assert.ErrorIs(t, err, models.ErrInvalidStateTransition)
}

func TestCreateReviewValidation(t *testing.T) {
	f := newOrderFixture(t)
	f.seedProduct(t, "prod-1", "Green Apple", 10.00, 5)
	reviews := services.NewReviewService(f.uow)
	order := deliveredOrder(t, f)

	// Rating outside 1..5.
	_, err := reviews.Create(f.userID, order.ID, "prod-1", 0, "")
	assert.ErrorIs(t, err, models.ErrValidation)
	_, err = reviews.Create(f.userID, order.ID, "prod-1", 6, "")
	assert.ErrorIs(t, err, models.ErrValidation)

	// The product must actually be part of the order.
	_, err = reviews.Create(f.userID, order.ID, "prod-unrelated", 5, "")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCreateReviewRequiresDeliveredOrder(t *testing.T) {
	f := newOrderFixture(t)
	f.seedProduct(t, "prod-1", "Green Apple", 10.00, 5)
	reviews := services.NewReviewService(f.uow)

	order, err := f.orders.CreateOrder(context.Background(), f.userID, services.CreateOrderInput{
		Items:     []services.OrderItemInput{{ProductID: "prod-1", Quantity: 1, Price: 10.00}},
		AddressID: f.addressID,
	})
	assert.NoError(t, err)

	_, err = reviews.Create(f.userID, order.ID, "prod-1", 5, "")
	assert.ErrorIs(t, err, models.ErrInvalidStateTransition)
}
