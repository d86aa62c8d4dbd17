package application

import (
	"errors"
	"fmt"

	"github.com/vecino/marketplace/internal/domain/entity"
)

// ErrInvalidCredentials is returned by authentication-style lookups.
var ErrInvalidCredentials = errors.New("invalid credentials")

// NotFoundError is the service-level translation of the repository's
// not-found sentinel; it carries the identifier the caller asked for.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// IsNotFound reports whether err is a service-level not-found failure.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IllegalTransitionError reports an order status change the legality
// table forbids.
type IllegalTransitionError struct {
	From entity.OrderStatus
	To   entity.OrderStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("order cannot move from %s to %s", e.From, e.To)
}
