package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyHTTPError(t *testing.T) {
	cases := map[int]ErrorCategory{
		400: Irrecoverable,
		401: Irrecoverable,
		404: Irrecoverable,
		408: Recoverable,
		429: Recoverable,
		500: Recoverable,
		503: Recoverable,
		302: Recoverable,
	}
	for code, want := range cases {
		got := NewHTTPError(code, "body", "search")
		assert.Equal(t, want, got.Category, "status %d", code)
		assert.Equal(t, code, got.StatusCode)
	}
}

func TestNetworkErrorRecoverable(t *testing.T) {
	err := NewNetworkError("push", fmt.Errorf("dial tcp: refused"))
	assert.True(t, IsRecoverable(err))
	assert.False(t, IsIrrecoverable(err))
	assert.Contains(t, err.Error(), "push: dial tcp: refused")
	assert.Zero(t, err.StatusCode)
}

func TestSentinels(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Argumentf("bad %s", "op"))
	assert.True(t, stderrors.Is(wrapped, ErrArgument))
	assert.True(t, IsIrrecoverable(wrapped))

	qe := &QueryError{Msg: "query statement required."}
	assert.True(t, stderrors.Is(qe, ErrQuery))
	assert.False(t, stderrors.Is(qe, ErrArgument))

	ae := &APIError{Code: "E1", Message: "bad"}
	assert.True(t, stderrors.Is(ae, ErrAPI))
	assert.Equal(t, "api response code: E1 message: bad", ae.Error())

	he := NewHTTPError(502, "", "search")
	assert.True(t, stderrors.Is(he, ErrHTTP))
	var target *HTTPError
	assert.True(t, stderrors.As(fmt.Errorf("wrap: %w", he), &target))
	assert.Equal(t, 502, target.StatusCode)
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "Recoverable", Recoverable.String())
	assert.Equal(t, "Irrecoverable", Irrecoverable.String())
	assert.Equal(t, "Unknown(7)", ErrorCategory(7).String())
}
