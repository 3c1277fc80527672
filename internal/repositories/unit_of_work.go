package repositories

import (
	"errors"
	"fmt"
	"strings"

	"minimall/internal/models"

	"gorm.io/gorm"
)

// Repos bundles every relational repository bound to the same database
// handle, so a transaction scope can hand all of them out at once.
type Repos struct {
	Products  ProductRepository
	Orders    OrderRepository
	Coupons   CouponRepository
	Addresses AddressRepository
	Payments  PaymentRepository
	Reviews   ReviewRepository
	Users     UserRepository
}

// UnitOfWork is the scoped transaction abstraction. Do runs fn against a set
// of repositories bound to one transaction: a nil return commits, any error
// (or panic) rolls everything back. Repos returns repositories bound to the
// shared pool for non-transactional reads.
type UnitOfWork interface {
	Do(fn func(r *Repos) error) error
	Repos() *Repos
}

// GormUnitOfWork implements UnitOfWork on a GORM database handle.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork.
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

func newRepos(db *gorm.DB) *Repos {
	return &Repos{
		Products:  NewGORMProductRepository(db),
		Orders:    NewGORMOrderRepository(db),
		Coupons:   NewGORMCouponRepository(db),
		Addresses: NewGORMAddressRepository(db),
		Payments:  NewGORMPaymentRepository(db),
		Reviews:   NewGORMReviewRepository(db),
		Users:     NewGORMUserRepository(db),
	}
}

// Repos returns repositories bound to the shared connection pool.
func (u *GormUnitOfWork) Repos() *Repos {
	return newRepos(u.db)
}

// Do runs fn inside a single database transaction.
func (u *GormUnitOfWork) Do(fn func(r *Repos) error) error {
	err := u.db.Transaction(func(tx *gorm.DB) error {
		return fn(newRepos(tx))
	})
	if err != nil {
		return translateStorageError(err)
	}
	return nil
}

// translateStorageError maps driver-level lock and serialization failures to
// ErrStorageConflict, the one error kind a caller may retry. Domain errors
// pass through untouched.
func translateStorageError(err error) error {
	if models.ErrorKind(err) != "internal" {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", models.ErrNotFound, err)
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"deadlock", "could not serialize", "database is locked", "lock wait timeout"} {
		if strings.Contains(msg, marker) {
			return fmt.Errorf("%w: %v", models.ErrStorageConflict, err)
		}
	}
	return err
}
