package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecamelizeKeys(t *testing.T) {
	tree, err := DecamelizeKeys(map[string]any{
		"firstName": "Alice",
		"nested": map[string]any{
			"lastName": "Wanjiru",
			"items":    []any{map[string]any{"tokenType": "bearer"}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"first_name": "Alice",
		"nested": map[string]any{
			"last_name": "Wanjiru",
			"items":     []any{map[string]any{"token_type": "bearer"}},
		},
	}, tree)
}

func TestCamelizeKeys(t *testing.T) {
	out, err := CamelizeKeys([]byte(`{"access_token":"a","refreshToken":"r","count":12345678901234}`))
	require.NoError(t, err)

	assert.JSONEq(t, `{"accessToken":"a","refreshToken":"r","count":12345678901234}`, string(out))
}

func TestCamelizeKeys_CollidingKeys(t *testing.T) {
	out, err := CamelizeKeys([]byte(`{"ID":"y","id":"1","first_name":"a","firstName":"b"}`))
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":"1","firstName":"b"}`, string(out))
}

func TestCamelizeKeys_InvalidJSON(t *testing.T) {
	_, err := CamelizeKeys([]byte(`{`))
	assert.Error(t, err)
}
