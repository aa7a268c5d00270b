package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type pinged struct{ n int }
type ponged struct{}

func TestPublishRunsHandlersInline(t *testing.T) {
	bus := NewBus()

	var got []int
	bus.Subscribe(TypeOf(pinged{}), func(e interface{}) { got = append(got, e.(pinged).n) })
	bus.Subscribe(TypeOf(pinged{}), func(e interface{}) { got = append(got, e.(pinged).n*10) })

	bus.Publish(pinged{n: 2})

	// no waiting: handlers have already run
	assert.Equal(t, []int{2, 20}, got)
}

func TestPublishIgnoresOtherTypes(t *testing.T) {
	bus := NewBus()

	called := false
	bus.Subscribe(TypeOf(ponged{}), func(interface{}) { called = true })
	bus.Publish(pinged{})

	assert.False(t, called)
}

func TestHandlerMayPublish(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.Subscribe(TypeOf(pinged{}), func(interface{}) {
		order = append(order, "ping")
		bus.Publish(ponged{})
	})
	bus.Subscribe(TypeOf(ponged{}), func(interface{}) { order = append(order, "pong") })

	bus.Publish(pinged{})
	assert.Equal(t, []string{"ping", "pong"}, order)
}

func TestNullBus(t *testing.T) {
	var bus EventBus = &NullBus{}
	assert.NotPanics(t, func() {
		bus.Subscribe("x", func(interface{}) {})
		bus.Publish(pinged{})
	})
}
