package services_test

import (
	"context"
	"testing"

	"minimall/internal/models"
	"minimall/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestAddressDefaultIsExclusive(t *testing.T) {
	f := newOrderFixture(t)
	addresses := services.NewAddressService(f.uow)

	// The fixture seeds one default address. Creating another default
	// demotes it in the same transaction.
	second := &models.Address{
		ReceiverName:  "Han Meimei",
		ReceiverPhone: "13900000000",
		Province:      "Jiangsu",
		City:          "Nanjing",
		District:      "Gulou",
		Detail:        "No. 2 Zhongshan Road",
		IsDefault:     true,
	}
	assert.NoError(t, addresses.Create(f.userID, second))

	listed, err := addresses.List(f.userID)
	assert.NoError(t, err)
	assert.Len(t, listed, 2)

	var defaults int
	for _, address := range listed {
		if address.IsDefault {
			defaults++
			assert.Equal(t, second.ID, address.ID)
		}
	}
	assert.Equal(t, 1, defaults)

	// The default sorts first.
	assert.Equal(t, second.ID, listed[0].ID)
}

func TestAddressUpdateIsAllowListed(t *testing.T) {
	f := newOrderFixture(t)
	addresses := services.NewAddressService(f.uow)

	newDetail := "No. 99 Wensan Road"
	err := addresses.Update(f.userID, f.addressID, services.UpdateAddressInput{
		Detail: &newDetail,
	})
	assert.NoError(t, err)

	address, err := addresses.Get(f.userID, f.addressID)
	assert.NoError(t, err)
	assert.Equal(t, newDetail, address.Detail)
	// Untouched fields survive a partial update.
	assert.Equal(t, "Li Lei", address.ReceiverName)
	assert.True(t, address.IsDefault)

	// Another user's address is invisible.
	err = addresses.Update("someone-else", f.addressID, services.UpdateAddressInput{Detail: &newDetail})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAddressDeleteKeepsOrderSnapshot(t *testing.T) {
	f := newOrderFixture(t)
	f.seedProduct(t, "prod-1", "Green Apple", 10.00, 5)
	addresses := services.NewAddressService(f.uow)

	order, err := f.orders.CreateOrder(context.Background(), f.userID, services.CreateOrderInput{
		Items:     []services.OrderItemInput{{ProductID: "prod-1", Quantity: 1, Price: 10.00}},
		AddressID: f.addressID,
	})
	assert.NoError(t, err)

	assert.NoError(t, addresses.Delete(f.userID, f.addressID))
	_, err = addresses.Get(f.userID, f.addressID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	// The order still carries the receiver snapshot.
	reloaded, err := f.orders.GetOrder(f.userID, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Li Lei", reloaded.ReceiverName)
	assert.Equal(t, "Zhejiang Hangzhou Xihu No. 1 Wensan Road", reloaded.ReceiverAddress)
}
