package relink_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/relink"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := relink.NewNotFoundError("User")
		assert.Equal(t, "relink: entity User not found", err.Error())

		err = relink.NewNotFoundErrorWithProperty("Order", "customer")
		assert.Equal(t, "relink: relationship Order.customer not found", err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := relink.NewNotFoundError("Post")
		assert.True(t, errors.Is(err, relink.ErrNotFound))
	})

	t.Run("IsNotFound", func(t *testing.T) {
		err := relink.NewNotFoundErrorWithProperty("Comment", "author")
		assert.True(t, relink.IsNotFound(err))
		assert.Equal(t, "Comment", err.Entity())
		assert.Equal(t, "author", err.Property())

		// Wrapped error
		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, relink.IsNotFound(wrapped))

		// Sentinel error
		assert.True(t, relink.IsNotFound(relink.ErrNotFound))

		// Non-matching error
		assert.False(t, relink.IsNotFound(errors.New("other error")))
		assert.False(t, relink.IsNotFound(nil))
	})
}

func TestContractError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := relink.NewContractError("SetRef", "nil owner node")
		assert.Equal(t, "relink: SetRef: nil owner node", err.Error())
		assert.Equal(t, "SetRef", err.Op())
	})

	t.Run("Is", func(t *testing.T) {
		err := relink.NewContractError("Add", "relationship %q is not a collection", "customer")
		assert.True(t, errors.Is(err, relink.ErrContract))
	})

	t.Run("IsContractError", func(t *testing.T) {
		err := relink.NewContractError("Remove", "nil item node")
		assert.True(t, relink.IsContractError(err))

		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, relink.IsContractError(wrapped))

		assert.True(t, relink.IsContractError(relink.ErrContract))
		assert.False(t, relink.IsContractError(errors.New("other error")))
		assert.False(t, relink.IsContractError(nil))
	})
}
