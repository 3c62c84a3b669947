package types

import (
	"encoding/json"
	"errors"
	"testing"

	oserrors "github.com/findyi/opensearch-go/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvelope_Success(t *testing.T) {
	env, err := ParseEnvelope([]byte(`{"status":"OK","result":{"x":1},"request_id":"r-1"}`))
	require.NoError(t, err)
	assert.True(t, env.IsSuccess())
	assert.Equal(t, "r-1", env.RequestID)
	assert.Equal(t, "", env.ErrorCode())
	assert.Equal(t, "", env.ErrorMessage())

	data, err := json.Marshal(env.Data)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":1}`, string(data))

	got, err := env.Result()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": json.Number("1")}, got)

	var decoded struct {
		X int `json:"x"`
	}
	require.NoError(t, env.DecodeResult(&decoded))
	assert.Equal(t, 1, decoded.X)
}

func TestParseEnvelope_Failure(t *testing.T) {
	env, err := ParseEnvelope([]byte(`{"status":"FAIL","errors":{"code":"E1","message":"bad"}}`))
	require.NoError(t, err)
	assert.False(t, env.IsSuccess())
	assert.Equal(t, "E1", env.ErrorCode())
	assert.Equal(t, "bad", env.ErrorMessage())

	_, err = env.Result()
	require.Error(t, err)
	assert.True(t, errors.Is(err, oserrors.ErrAPI))
	var apiErr *oserrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "E1", apiErr.Code)
	assert.Equal(t, "bad", apiErr.Message)

	var v map[string]any
	assert.Error(t, env.DecodeResult(&v))
}

func TestParseEnvelope_RequestIDFallback(t *testing.T) {
	env, err := ParseEnvelope([]byte(`{"status":"OK","RequestId":"legacy"}`))
	require.NoError(t, err)
	assert.Equal(t, "legacy", env.RequestID)

	env, err = ParseEnvelope([]byte(`{"status":"OK","request_id":"first","RequestId":"second"}`))
	require.NoError(t, err)
	assert.Equal(t, "first", env.RequestID)
}

func TestParseEnvelope_ErrorsList(t *testing.T) {
	env, err := ParseEnvelope([]byte(`{"status":"FAIL","errors":[{"code":1001,"message":"app not exist"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "1001", env.ErrorCode())
	assert.Equal(t, "app not exist", env.ErrorMessage())
}

func TestParseEnvelope_StatusIsExact(t *testing.T) {
	for _, body := range []string{`{"status":"ok"}`, `{"status":"OK "}`, `{}`, `{"status":1}`} {
		env, err := ParseEnvelope([]byte(body))
		require.NoError(t, err, body)
		assert.False(t, env.IsSuccess(), body)
		assert.NotNil(t, env.Errors, body)
	}
}

func TestParseEnvelope_NotObject(t *testing.T) {
	for _, body := range []string{`[1,2]`, `"OK"`, `42`, `null`} {
		_, err := ParseEnvelope([]byte(body))
		assert.True(t, errors.Is(err, ErrNotObject), body)
	}
	_, err := ParseEnvelope([]byte(`{bad json`))
	assert.Error(t, err)
}

func TestNewEnvelope_Decoded(t *testing.T) {
	env, err := NewEnvelope(map[string]any{"status": "OK", "result": []any{"a"}})
	require.NoError(t, err)
	var out []string
	require.NoError(t, env.DecodeResult(&out))
	assert.Equal(t, []string{"a"}, out)

	_, err = NewEnvelope([]any{})
	assert.True(t, errors.Is(err, ErrNotObject))
}
