package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSentinel = New("sentinel")

func TestWrapKeepsSentinel(t *testing.T) {
	wrapped := Wrapf(Wrap(errSentinel, "inner"), "outer %d", 1)

	assert.True(t, Is(wrapped, errSentinel))
	assert.Equal(t, "outer 1: inner: sentinel", wrapped.Error())
	assert.Contains(t, fmt.Sprintf("%+v", wrapped), "TestWrapKeepsSentinel")
}

func TestNilStaysNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))
	assert.NoError(t, WithStack(nil))
}

type codedError struct{ code string }

func (e *codedError) Error() string { return e.code }

func TestAs(t *testing.T) {
	err := WithStack(&codedError{code: "E1"})

	var target *codedError
	assert.True(t, As(err, &target))
	assert.Equal(t, "E1", target.code)
}
