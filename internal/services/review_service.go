package services

import (
	"fmt"

	"minimall/internal/models"
	"minimall/internal/repositories"
)

// ReviewService records product reviews. Submitting a review of a delivered
// order is what completes it, and both writes share one transaction.
type ReviewService struct {
	uow repositories.UnitOfWork
}

// NewReviewService creates a new ReviewService.
func NewReviewService(uow repositories.UnitOfWork) *ReviewService {
	return &ReviewService{
		uow: uow,
	}
}

// Create reviews a product from one of the user's delivered orders and marks
// the order completed.
func (s *ReviewService) Create(userID, orderID, productID string, rating int, content string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5: %w", models.ErrValidation)
	}

	var review *models.Review
	err := s.uow.Do(func(r *repositories.Repos) error {
		order, err := r.Orders.GetByID(userID, orderID)
		if err != nil {
			return err
		}
		if order.Status != models.OrderStatusDelivered {
			return fmt.Errorf("order %s is %s, only delivered orders can be reviewed: %w",
				orderID, order.Status, models.ErrInvalidStateTransition)
		}

		var inOrder bool
		for _, item := range order.Items {
			if item.ProductID == productID {
				inOrder = true
				break
			}
		}
		if !inOrder {
			return fmt.Errorf("product %s is not part of order %s: %w", productID, orderID, models.ErrValidation)
		}

		exists, err := r.Reviews.ExistsForOrder(orderID, productID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("product %s of order %s already reviewed: %w", productID, orderID, models.ErrValidation)
		}

		review = &models.Review{
			UserID:    userID,
			OrderID:   orderID,
			ProductID: productID,
			Rating:    rating,
			Content:   content,
		}
		if err := r.Reviews.Create(review); err != nil {
			return err
		}

		return r.Orders.UpdateStatus(order.ID, order.Status, models.OrderStatusCompleted, nil)
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// ListByProduct returns a product's reviews, newest first.
func (s *ReviewService) ListByProduct(productID string) ([]models.Review, error) {
	return s.uow.Repos().Reviews.ListByProduct(productID)
}
