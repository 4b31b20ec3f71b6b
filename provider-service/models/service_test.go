package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRequirements(t *testing.T) {
	t.Run("EmptyPayloadYieldsEmptyFields", func(t *testing.T) {
		for _, raw := range []json.RawMessage{nil, json.RawMessage("null")} {
			normalized, err := NormalizeRequirements(raw)

			require.NoError(t, err)
			assert.JSONEq(t, `{"fields":[]}`, string(normalized))
		}
	})

	t.Run("CanonicalShapePassesThroughUnchanged", func(t *testing.T) {
		raw := json.RawMessage(`{"fields":[{"name":"oil_type","label":"Oil Type","type":"select","options":["synthetic","mineral"]}]}`)

		normalized, err := NormalizeRequirements(raw)

		require.NoError(t, err)
		assert.Equal(t, string(raw), string(normalized))
	})

	t.Run("NormalizationIsIdempotent", func(t *testing.T) {
		raw := json.RawMessage(`{"mileage":"Current mileage","vin":"Vehicle VIN"}`)

		once, err := NormalizeRequirements(raw)
		require.NoError(t, err)

		twice, err := NormalizeRequirements(json.RawMessage(once))
		require.NoError(t, err)

		assert.Equal(t, string(once), string(twice))
	})

	t.Run("FlatMapBecomesStringFields", func(t *testing.T) {
		raw := json.RawMessage(`{"vin":"Vehicle VIN","mileage":"Current mileage"}`)

		normalized, err := NormalizeRequirements(raw)
		require.NoError(t, err)

		decoded, err := DecodeRequirements(normalized)
		require.NoError(t, err)
		require.Len(t, decoded.Fields, 2)

		// Keys are emitted in sorted order
		assert.Equal(t, "mileage", decoded.Fields[0].Name)
		assert.Equal(t, "Current mileage", decoded.Fields[0].Label)
		assert.Equal(t, "string", decoded.Fields[0].Type)
		assert.Equal(t, "vin", decoded.Fields[1].Name)
	})

	t.Run("NonStringValuesKeepJSONText", func(t *testing.T) {
		raw := json.RawMessage(`{"wheels":4}`)

		normalized, err := NormalizeRequirements(raw)
		require.NoError(t, err)

		decoded, err := DecodeRequirements(normalized)
		require.NoError(t, err)
		require.Len(t, decoded.Fields, 1)
		assert.Equal(t, "4", decoded.Fields[0].Label)
	})

	t.Run("NonObjectPayloadRejected", func(t *testing.T) {
		_, err := NormalizeRequirements(json.RawMessage(`["not","an","object"]`))
		assert.Error(t, err)

		_, err = NormalizeRequirements(json.RawMessage(`"just a string"`))
		assert.Error(t, err)
	})

	t.Run("MalformedFieldsDescriptorRejected", func(t *testing.T) {
		_, err := NormalizeRequirements(json.RawMessage(`{"fields":"not an array"}`))
		assert.Error(t, err)
	})
}

func TestDecodeRequirements(t *testing.T) {
	t.Run("EmptyColumnDecodesToEmptyFields", func(t *testing.T) {
		decoded, err := DecodeRequirements(nil)

		require.NoError(t, err)
		assert.Empty(t, decoded.Fields)
	})
}
