package models_test

import (
	"testing"

	"minimall/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	// The happy path walks the full lifecycle.
	assert.True(t, models.OrderStatusPending.CanTransitionTo(models.OrderStatusPaid))
	assert.True(t, models.OrderStatusPaid.CanTransitionTo(models.OrderStatusShipped))
	assert.True(t, models.OrderStatusShipped.CanTransitionTo(models.OrderStatusDelivered))
	assert.True(t, models.OrderStatusDelivered.CanTransitionTo(models.OrderStatusCompleted))

	// Cancellation is only reachable before shipment.
	assert.True(t, models.OrderStatusPending.CanTransitionTo(models.OrderStatusCancelled))
	assert.True(t, models.OrderStatusPaid.CanTransitionTo(models.OrderStatusCancelled))
	assert.False(t, models.OrderStatusShipped.CanTransitionTo(models.OrderStatusCancelled))
	assert.False(t, models.OrderStatusDelivered.CanTransitionTo(models.OrderStatusCancelled))

	// No skipping steps or moving backwards.
	assert.False(t, models.OrderStatusPending.CanTransitionTo(models.OrderStatusShipped))
	assert.False(t, models.OrderStatusPending.CanTransitionTo(models.OrderStatusDelivered))
	assert.False(t, models.OrderStatusPaid.CanTransitionTo(models.OrderStatusPending))
	assert.False(t, models.OrderStatusShipped.CanTransitionTo(models.OrderStatusPaid))

	// Terminal states allow nothing at all.
	for _, next := range []models.OrderStatus{
		models.OrderStatusPending, models.OrderStatusPaid, models.OrderStatusShipped,
		models.OrderStatusDelivered, models.OrderStatusCompleted, models.OrderStatusCancelled,
	} {
		assert.False(t, models.OrderStatusCompleted.CanTransitionTo(next))
		assert.False(t, models.OrderStatusCancelled.CanTransitionTo(next))
	}
}

func TestOrderStatusIsValid(t *testing.T) {
	valid := []models.OrderStatus{
		models.OrderStatusPending, models.OrderStatusPaid, models.OrderStatusShipped,
		models.OrderStatusDelivered, models.OrderStatusCompleted, models.OrderStatusCancelled,
	}
	for _, status := range valid {
		assert.True(t, status.IsValid(), "expected %s to be valid", status)
	}

	assert.False(t, models.OrderStatus("").IsValid())
	assert.False(t, models.OrderStatus("refunded").IsValid())
	assert.False(t, models.OrderStatus("PENDING").IsValid())
}
