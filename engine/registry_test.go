package engine

import (
	"errors"
	"testing"

	"github.com/ruteri/biosdk-services/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

func countingFactory(calls *atomic.Int32) Factory {
	return func() (interfaces.BioAPI, error) {
		calls.Inc()
		return new(MockBioAPI), nil
	}
}

func TestRegistry_ResolveConstructsOnce(t *testing.T) {
	reg := NewRegistry()
	calls := atomic.NewInt32(0)
	require.NoError(t, reg.Register("test", countingFactory(calls)))

	first, err := reg.Resolve("test")
	require.NoError(t, err)
	second, err := reg.Resolve("test")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRegistry_ConcurrentFirstUse(t *testing.T) {
	reg := NewRegistry()
	calls := atomic.NewInt32(0)
	require.NoError(t, reg.Register("test", countingFactory(calls)))

	const workers = 32
	results := make([]interfaces.BioAPI, workers)

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error {
			instance, err := reg.Resolve("test")
			results[i] = instance
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

func TestRegistry_BlankIdentifier(t *testing.T) {
	reg := NewRegistry()

	for _, id := range []string{"", "   ", "\t"} {
		_, err := reg.Resolve(id)
		assert.ErrorIs(t, err, ErrNoEngineConfigured)
		assert.ErrorIs(t, reg.Lookup(id), ErrNoEngineConfigured)
	}
	assert.ErrorIs(t, reg.Register(" ", countingFactory(atomic.NewInt32(0))), ErrNoEngineConfigured)
}

func TestRegistry_UnknownIdentifier(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Resolve("missing")
	assert.ErrorIs(t, err, ErrUnknownEngine)
	assert.ErrorIs(t, reg.Lookup("missing"), ErrUnknownEngine)
}

func TestRegistry_LookupDoesNotConstruct(t *testing.T) {
	reg := NewRegistry()
	calls := atomic.NewInt32(0)
	require.NoError(t, reg.Register("test", countingFactory(calls)))

	require.NoError(t, reg.Lookup("test"))
	assert.Equal(t, int32(0), calls.Load())
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("test", countingFactory(atomic.NewInt32(0))))

	err := reg.Register("test", countingFactory(atomic.NewInt32(0)))
	assert.ErrorIs(t, err, ErrDuplicateEngine)
}

func TestRegistry_FactoryFailureNotMemoized(t *testing.T) {
	reg := NewRegistry()
	calls := atomic.NewInt32(0)
	require.NoError(t, reg.Register("flaky", func() (interfaces.BioAPI, error) {
		if calls.Inc() == 1 {
			return nil, errors.New("license server unreachable")
		}
		return new(MockBioAPI), nil
	}))

	_, err := reg.Resolve("flaky")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "license server unreachable")

	instance, err := reg.Resolve("flaky")
	require.NoError(t, err)
	assert.NotNil(t, instance)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRegistry_Identifiers(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("b", countingFactory(atomic.NewInt32(0))))
	require.NoError(t, reg.Register("a", countingFactory(atomic.NewInt32(0))))

	assert.Equal(t, []string{"a", "b"}, reg.Identifiers())
}
