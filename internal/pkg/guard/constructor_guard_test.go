package guard_test

import (
	"errors"
	"testing"

	"freight/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		g := guard.NewConstructorGuard()

		// Then
		customError := errors.New("test object not constructed")
		require.NoError(t, g.Validate(customError))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()
		customError := errors.New("not constructed")

		// When
		err := g.Validate(customError)

		// Then
		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value
		expectedError := errors.New("entity not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard is used
// in a value object to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	type escrowAmount struct {
		cents int64
		guard guard.ConstructorGuard
	}

	var errAmountNotConstructed = errors.New("escrowAmount must be created via newEscrowAmount")

	newEscrowAmount := func(cents int64) (escrowAmount, error) {
		if cents < 0 {
			return escrowAmount{}, errors.New("cents cannot be negative")
		}
		return escrowAmount{
			cents: cents,
			guard: guard.NewConstructorGuard(),
		}, nil
	}

	validateAmount := func(a escrowAmount) error {
		return a.guard.Validate(errAmountNotConstructed)
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		// When
		amount, err := newEscrowAmount(2500)

		// Then
		require.NoError(t, err)
		require.NoError(t, validateAmount(amount))
		assert.Equal(t, int64(2500), amount.cents)
	})

	t.Run("zero_value_construction_validation", func(t *testing.T) {
		// Given
		var amount escrowAmount // zero value

		// When
		err := validateAmount(amount)

		// Then
		require.Error(t, err)
		assert.Equal(t, errAmountNotConstructed, err)
	})

	t.Run("constructor_validates_business_rules", func(t *testing.T) {
		_, err := newEscrowAmount(-1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})
}

// TestConstructorGuardDefaultError verifies the default error behavior.
func TestConstructorGuardDefaultError(t *testing.T) {
	t.Run("default_error_constant_has_meaningful_message", func(t *testing.T) {
		require.Error(t, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

// TestConstructorGuardConcurrency verifies that ConstructorGuard is safe for concurrent use.
func TestConstructorGuardConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	done := make(chan bool)
	for range 100 {
		go func() {
			for range 1000 {
				err := g.Validate(validationError)
				assert.NoError(t, err)
			}
			done <- true
		}()
	}

	for range 100 {
		<-done
	}
}

// TestConstructorGuardImmutability verifies that a guard can be copied freely.
func TestConstructorGuardImmutability(t *testing.T) {
	t.Run("guard_can_be_safely_passed_by_value", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()
		testError := errors.New("test error")

		// When
		guardCopy := g // pass by value

		// Then
		require.NoError(t, g.Validate(testError))
		require.NoError(t, guardCopy.Validate(testError))
	})
}
