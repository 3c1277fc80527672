package services

import (
	"minimall/internal/models"
	"minimall/internal/repositories"
)

// UpdateAddressInput is the validated partial update for an address. Only
// the fields present here can change; everything maps onto the repository's
// column allow-list.
type UpdateAddressInput struct {
	ReceiverName  *string `json:"receiver_name" validate:"omitempty,min=1,max=50"`
	ReceiverPhone *string `json:"receiver_phone" validate:"omitempty,min=1,max=20"`
	Province      *string `json:"province" validate:"omitempty,min=1,max=50"`
	City          *string `json:"city" validate:"omitempty,min=1,max=50"`
	District      *string `json:"district" validate:"omitempty,min=1,max=50"`
	Detail        *string `json:"detail" validate:"omitempty,min=1,max=200"`
	IsDefault     *bool   `json:"is_default"`
}

func (in UpdateAddressInput) fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if in.ReceiverName != nil {
		fields["receiver_name"] = *in.ReceiverName
	}
	if in.ReceiverPhone != nil {
		fields["receiver_phone"] = *in.ReceiverPhone
	}
	if in.Province != nil {
		fields["province"] = *in.Province
	}
	if in.City != nil {
		fields["city"] = *in.City
	}
	if in.District != nil {
		fields["district"] = *in.District
	}
	if in.Detail != nil {
		fields["detail"] = *in.Detail
	}
	if in.IsDefault != nil {
		fields["is_default"] = *in.IsDefault
	}
	return fields
}

// AddressService manages the user's shipping addresses.
type AddressService struct {
	uow repositories.UnitOfWork
}

// NewAddressService creates a new AddressService.
func NewAddressService(uow repositories.UnitOfWork) *AddressService {
	return &AddressService{
		uow: uow,
	}
}

// List returns the user's addresses, default first.
func (s *AddressService) List(userID string) ([]models.Address, error) {
	return s.uow.Repos().Addresses.ListByUser(userID)
}

// Get returns one of the user's addresses.
func (s *AddressService) Get(userID, addressID string) (*models.Address, error) {
	return s.uow.Repos().Addresses.GetByID(userID, addressID)
}

// Create adds an address. Making it the default clears the previous default
// in the same transaction.
func (s *AddressService) Create(userID string, address *models.Address) error {
	address.UserID = userID
	return s.uow.Do(func(r *repositories.Repos) error {
		if address.IsDefault {
			if err := r.Addresses.ClearDefault(userID); err != nil {
				return err
			}
		}
		return r.Addresses.Create(address)
	})
}

// Update applies an allow-listed partial update to one of the user's
// addresses.
func (s *AddressService) Update(userID, addressID string, input UpdateAddressInput) error {
	return s.uow.Do(func(r *repositories.Repos) error {
		if input.IsDefault != nil && *input.IsDefault {
			if err := r.Addresses.ClearDefault(userID); err != nil {
				return err
			}
		}
		return r.Addresses.UpdateFields(userID, addressID, input.fields())
	})
}

// Delete removes one of the user's addresses. Orders keep their receiver
// snapshot, so history is unaffected.
func (s *AddressService) Delete(userID, addressID string) error {
	return s.uow.Repos().Addresses.Delete(userID, addressID)
}
