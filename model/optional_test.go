package model_test

import (
	"encoding/json"
	"testing"

	"ewintr.nl/potongin/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalJSON(t *testing.T) {
	type req struct {
		Language model.Optional[string] `json:"language"`
	}

	for _, tc := range []struct {
		name   string
		body   string
		exp    string
		expSet bool
	}{
		{name: "missing", body: `{}`},
		{name: "null", body: `{"language":null}`},
		{name: "present", body: `{"language":"id"}`, exp: "id", expSet: true},
		{name: "empty string", body: `{"language":""}`, exp: "", expSet: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var r req
			require.NoError(t, json.Unmarshal([]byte(tc.body), &r))
			act, ok := r.Language.Get()
			assert.Equal(t, tc.expSet, ok)
			assert.Equal(t, tc.exp, act)
		})
	}
}

func TestOptionalMarshal(t *testing.T) {
	body, err := json.Marshal(struct {
		A model.Optional[string] `json:"a"`
		B model.Optional[string] `json:"b"`
	}{A: model.Some("x")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"x","b":null}`, string(body))
}

func TestExportStatusValid(t *testing.T) {
	assert.True(t, model.ExportStatusReady.Valid())
	assert.True(t, model.ExportStatusDraft.Valid())
	assert.False(t, model.ExportStatus("done").Valid())
}
