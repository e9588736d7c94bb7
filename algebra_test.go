package promise

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPromise_Map_TransformsFulfillmentValue(t *testing.T) {
	f := newTestFactory(t)

	registry := NewCallsRegistry(1)
	f.Of(2).Map(func(v interface{}) interface{} {
		return v.(int) * 10
	}).Then(func(v interface{}) (interface{}, error) {
		require.Equal(t, 20, v)
		registry.Register("mapped")
		return nil, nil
	}, nil, nil)

	registry.AssertCompletedBefore(t, "mapped", time.Second)
}

func TestPromise_FlatMap_FlattensReturnedPromise(t *testing.T) {
	f := newTestFactory(t)

	registry := NewCallsRegistry(1)
	f.Of(2).FlatMap(func(v interface{}) *Promise {
		return f.Of(v.(int) + 1)
	}).Then(func(v interface{}) (interface{}, error) {
		require.Equal(t, 3, v)
		registry.Register("flatmapped")
		return nil, nil
	}, nil, nil)

	registry.AssertCompletedBefore(t, "flatmapped", time.Second)
}

func TestPromise_Ap_AppliesFunctionFromOnePromiseToAnother(t *testing.T) {
	f := newTestFactory(t)
	double := func(v interface{}) interface{} { return v.(int) * 2 }

	registry := NewCallsRegistry(1)
	f.Of(double).Ap(f.Of(21)).Then(func(v interface{}) (interface{}, error) {
		require.Equal(t, 42, v)
		registry.Register("applied")
		return nil, nil
	}, nil, nil)

	registry.AssertCompletedBefore(t, "applied", time.Second)
}

func TestPromise_Ap_RejectsWhenValueIsNotAFunc(t *testing.T) {
	f := newTestFactory(t)

	registry := NewCallsRegistry(1)
	f.Of(7).Ap(f.Of(1)).Catch(func(r error) (interface{}, error) {
		require.Contains(t, r.Error(), "ap")
		registry.Register("rejected")
		return nil, nil
	})

	registry.AssertCompletedBefore(t, "rejected", time.Second)
}

func TestPromise_Concat_IsFirstFulfillmentOfEither(t *testing.T) {
	f := newTestFactory(t)

	registry := NewCallsRegistry(1)
	f.Of(1).Concat(f.Of(2)).Then(func(v interface{}) (interface{}, error) {
		require.Equal(t, 1, v)
		registry.Register("concatenated")
		return nil, nil
	}, nil, nil)

	registry.AssertCompletedBefore(t, "concatenated", time.Second)
}

func TestPromise_Filter_PassesMatchingValueThrough(t *testing.T) {
	f := newTestFactory(t)

	registry := NewCallsRegistry(1)
	f.Of(4).Filter(func(v interface{}) bool { return v.(int)%2 == 0 }).Then(func(v interface{}) (interface{}, error) {
		require.Equal(t, 4, v)
		registry.Register("kept")
		return nil, nil
	}, nil, nil)

	registry.AssertCompletedBefore(t, "kept", time.Second)
}

func TestPromise_Filter_RejectsNonMatchingValue(t *testing.T) {
	f := newTestFactory(t)

	registry := NewCallsRegistry(1)
	f.Of(3).Filter(func(v interface{}) bool { return v.(int)%2 == 0 }).Catch(func(r error) (interface{}, error) {
		require.Contains(t, r.Error(), "filtered")
		registry.Register("filtered")
		return nil, nil
	})

	registry.AssertCompletedBefore(t, "filtered", time.Second)
}

// Reduce deliberately does not flatten: it resolves to the promise itself,
// a promise-of-a-promise, per the open question recorded in DESIGN.md.
func TestPromise_Reduce_ResolvesToAPromiseOfAPromise(t *testing.T) {
	f := newTestFactory(t)
	p := f.Of(5)

	registry := NewCallsRegistry(1)
	p.Reduce().Then(func(v interface{}) (interface{}, error) {
		inner, ok := v.(*Promise)
		require.True(t, ok, "Reduce must resolve to the promise itself, not its value")
		require.Same(t, p, inner)
		registry.Register("reduced")
		return nil, nil
	}, nil, nil)

	registry.AssertCompletedBefore(t, "reduced", time.Second)
}

func TestPromise_ReduceWith_CombinesInitialAndValue(t *testing.T) {
	f := newTestFactory(t)

	registry := NewCallsRegistry(1)
	f.Of(3).ReduceWith(10, func(acc, v interface{}) interface{} {
		return acc.(int) + v.(int)
	}).Then(func(v interface{}) (interface{}, error) {
		require.Equal(t, 13, v)
		registry.Register("reduced")
		return nil, nil
	}, nil, nil)

	registry.AssertCompletedBefore(t, "reduced", time.Second)
}

func TestPromise_ReduceRight_MatchesReduceOnASingleValue(t *testing.T) {
	f := newTestFactory(t)
	p := f.Of(5)

	registry := NewCallsRegistry(1)
	p.ReduceRight().Then(func(v interface{}) (interface{}, error) {
		require.Same(t, p, v)
		registry.Register("reduced")
		return nil, nil
	}, nil, nil)

	registry.AssertCompletedBefore(t, "reduced", time.Second)
}

func TestPromise_ReduceRightWith_MatchesReduceWith(t *testing.T) {
	f := newTestFactory(t)

	registry := NewCallsRegistry(1)
	f.Of(3).ReduceRightWith(10, func(acc, v interface{}) interface{} {
		return acc.(int) + v.(int)
	}).Then(func(v interface{}) (interface{}, error) {
		require.Equal(t, 13, v)
		registry.Register("reduced")
		return nil, nil
	}, nil, nil)

	registry.AssertCompletedBefore(t, "reduced", time.Second)
}
