package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderTransitionTable(t *testing.T) {
	cases := []struct {
		from OrderStatus
		to   OrderStatus
		ok   bool
	}{
		{OrderCreated, OrderPaid, true},
		{OrderCreated, OrderShipped, false},
		{OrderCreated, OrderDelivered, false},
		{OrderCreated, OrderCancelled, true},
		{OrderCreated, OrderRefunded, false},

		{OrderPaid, OrderPaid, false},
		{OrderPaid, OrderShipped, true},
		{OrderPaid, OrderCancelled, true},
		{OrderPaid, OrderRefunded, true},

		{OrderShipped, OrderDelivered, true},
		{OrderShipped, OrderCancelled, false},
		{OrderShipped, OrderRefunded, true},

		{OrderDelivered, OrderRefunded, true},
		{OrderDelivered, OrderShipped, false},

		{OrderCancelled, OrderPaid, false},
		{OrderCancelled, OrderRefunded, false},
		{OrderRefunded, OrderCancelled, false},
	}
	for _, tc := range cases {
		o := &Order{Status: tc.from}
		assert.Equal(t, tc.ok, o.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestOrderCanBeHelpers(t *testing.T) {
	assert.True(t, (&Order{Status: OrderCreated}).CanBeCancelled())
	assert.True(t, (&Order{Status: OrderPaid}).CanBeCancelled())
	assert.False(t, (&Order{Status: OrderShipped}).CanBeCancelled())

	assert.True(t, (&Order{Status: OrderPaid}).CanBeShipped())
	assert.False(t, (&Order{Status: OrderCreated}).CanBeShipped())

	assert.True(t, (&Order{Status: OrderShipped}).CanBeDelivered())
	assert.False(t, (&Order{Status: OrderPaid}).CanBeDelivered())

	assert.True(t, (&Order{Status: OrderDelivered}).CanBeRefunded())
	assert.False(t, (&Order{Status: OrderCreated}).CanBeRefunded())
}
