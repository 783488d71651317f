package network

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindsMatchSentinels(t *testing.T) {
	err := forbidden("meetings.accept", "only the requested user may answer")
	wrapped := fmt.Errorf("handler: %w", err)

	assert.True(t, errors.Is(wrapped, ErrForbidden))
	assert.False(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, KindForbidden, KindOf(wrapped))
	assert.Equal(t, "meetings.accept: only the requested user may answer", err.Error())
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("disk on fire")))
	assert.Equal(t, "precondition failed", KindPreconditionFailed.String())
}

func TestPassthroughKeepsKind(t *testing.T) {
	orig := conflict("connections.request", "exists", nil)
	assert.Same(t, orig, passthrough("x", "y", orig))

	wrapped := passthrough("x", "storage failure", errors.New("locked"))
	assert.Equal(t, KindInternal, KindOf(wrapped))
	assert.Contains(t, wrapped.Error(), "locked")
}
