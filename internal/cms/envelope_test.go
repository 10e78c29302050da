package cms

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrapList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"bare array", `[{"id":1},{"id":2}]`, 2},
		{"data envelope", `{"data":[{"id":1}]}`, 1},
		{"items envelope", `{"items":[{"id":1},{"id":2},{"id":3}]}`, 3},
		{"results envelope", `{"results":[{"id":1}]}`, 1},
		{"double data envelope", `{"data":{"data":[{"id":1},{"id":2}]}}`, 2},
		{"empty array", `[]`, 0},
		{"null", `null`, 0},
		{"scalar", `42`, 0},
		{"object without list", `{"meta":{"page":1}}`, 0},
		{"invalid json", `{not json`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, UnwrapList(json.RawMessage(tt.raw)), tt.want)
		})
	}
}

func TestUnwrapListSkipsNonObjects(t *testing.T) {
	entries := UnwrapList(json.RawMessage(`[{"id":1}, 7, "x", {"id":2}]`))
	assert.Len(t, entries, 2)
}

func TestUnwrapEntity(t *testing.T) {
	e := UnwrapEntity(json.RawMessage(`{"data":{"id":5,"name":"Filtro"}}`))
	require.NotNil(t, e)
	assert.Equal(t, "5", e.Str("id"))

	e = UnwrapEntity(json.RawMessage(`{"item":{"id":6}}`))
	require.NotNil(t, e)
	assert.Equal(t, "6", e.Str("id"))

	e = UnwrapEntity(json.RawMessage(`{"id":7,"name":"Bare"}`))
	require.NotNil(t, e)
	assert.Equal(t, "7", e.Str("id"))

	assert.Nil(t, UnwrapEntity(json.RawMessage(`{}`)))
	assert.Nil(t, UnwrapEntity(json.RawMessage(`null`)))
	assert.Nil(t, UnwrapEntity(nil))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Invalid credentials",
		errorMessage([]byte(`{"error":{"message":"Invalid credentials"}}`)))
	assert.Equal(t, "Not found",
		errorMessage([]byte(`{"message":"Not found"}`)))
	assert.Equal(t, "", errorMessage([]byte(`<html>gateway error</html>`)))
}
