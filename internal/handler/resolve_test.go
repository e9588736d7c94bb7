package handler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeThenable struct {
	run func(resolve func(interface{}), reject func(error), notify func(interface{}))
}

func (f *fakeThenable) Then(resolve func(interface{}), reject func(error), notify func(interface{})) {
	f.run(resolve, reject, notify)
}

func TestGetHandler_PlainValueIsFulfilled(t *testing.T) {
	h := GetHandler(newTestLoop(t), 7)
	require.Equal(t, Snapshot{State: StateFulfilled, Value: 7}, h.Inspect())
}

func TestGetHandler_NilIsFulfilledWithNil(t *testing.T) {
	h := GetHandler(newTestLoop(t), nil)
	require.Equal(t, Snapshot{State: StateFulfilled, Value: nil}, h.Inspect())
}

func TestGetHandler_TrustedValueFollows(t *testing.T) {
	loop := newTestLoop(t)
	target := &fakeTrusted{h: NewFulfilled("value")}

	h := GetHandler(loop, target)
	require.IsType(t, &Following{}, h)
	require.Equal(t, Snapshot{State: StateFulfilled, Value: "value"}, h.Inspect())
}

func TestGetHandler_AssimilatesThenableAfterEnqueueBoundary(t *testing.T) {
	loop := newTestLoop(t)
	thenable := &fakeThenable{
		run: func(resolve func(interface{}), reject func(error), notify func(interface{})) {
			resolve(1)
		},
	}

	h := GetHandler(loop, thenable)
	require.Equal(t, Snapshot{State: StatePending}, h.Inspect(), "adoption must cross an Enqueue boundary before settling")

	require.Eventually(t, func() bool {
		return h.Inspect().State == StateFulfilled
	}, time.Second, time.Millisecond)
	require.Equal(t, 1, h.Inspect().Value)
}

func TestGetHandler_ThenableSecondSettlementIsIgnored(t *testing.T) {
	loop := newTestLoop(t)
	thenable := &fakeThenable{
		run: func(resolve func(interface{}), reject func(error), notify func(interface{})) {
			resolve(1)
			reject(errors.New("should never be observed"))
		},
	}

	h := GetHandler(loop, thenable)

	require.Eventually(t, func() bool {
		return h.Inspect().State == StateFulfilled
	}, time.Second, time.Millisecond)
	require.Equal(t, 1, h.Inspect().Value)
}

func TestGetHandler_ThenableThatPanicsRejects(t *testing.T) {
	loop := newTestLoop(t)
	thenable := &fakeThenable{
		run: func(resolve func(interface{}), reject func(error), notify func(interface{})) {
			panic("thenable exploded")
		},
	}

	h := GetHandler(loop, thenable)

	require.Eventually(t, func() bool {
		return h.Inspect().State == StateRejected
	}, time.Second, time.Millisecond)
	require.Contains(t, h.Inspect().Reason.Error(), "thenable exploded")
}
