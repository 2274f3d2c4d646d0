package adaptext_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/adaptext"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("application error", func(t *testing.T) {
		t.Parallel()
		err := adaptext.Errorf(adaptext.EINVALID, "bad selector %q", "h1[[[")
		assert.Equal(t, adaptext.EINVALID, adaptext.ErrorCode(err))
	})

	t.Run("wrapped application error", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("query: %w", adaptext.Errorf(adaptext.ENOTFOUND, "article not found"))
		assert.Equal(t, adaptext.ENOTFOUND, adaptext.ErrorCode(err))
	})

	t.Run("non-application error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, adaptext.EINTERNAL, adaptext.ErrorCode(errors.New("boom")))
	})

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, adaptext.ErrorCode(nil))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("application error", func(t *testing.T) {
		t.Parallel()
		err := adaptext.Errorf(adaptext.EINVALID, "bad selector %q", "h1[[[")
		assert.Equal(t, `bad selector "h1[[["`, adaptext.ErrorMessage(err))
	})

	t.Run("non-application error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Internal error.", adaptext.ErrorMessage(errors.New("boom")))
	})

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, adaptext.ErrorMessage(nil))
	})
}
