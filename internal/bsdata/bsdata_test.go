package bsdata

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshal_ToleratesUnknownAndMissingFields(t *testing.T) {
	in := `{
		"roster": {
			"name": "Test List",
			"generatedBy": "someone",
			"costs": [{"name": "pts", "value": 1995}],
			"forces": [{
				"catalogueName": "Imperium - Space Marines",
				"selections": [{"name": "Captain", "type": "model", "extra": {"x": 1}}]
			}]
		}
	}`
	doc, err := Unmarshal([]byte(in))
	require.NoError(t, err)
	require.NotNil(t, doc.FirstForce())
	assert.Equal(t, "Test List", doc.Roster.Name)
	assert.Equal(t, 1995.0, doc.Roster.Costs[0].Value)
	assert.Equal(t, "Captain", doc.FirstForce().Selections[0].Name)
}

func TestCharacteristic_ScalarValues(t *testing.T) {
	in := `{"roster": {"forces": [{"selections": [{"profiles": [{"typeName": "Unit", "characteristics": [
		{"name": "T", "$text": 4},
		{"name": "W", "value": "5"},
		{"name": "OC", "$text": null}
	]}]}]}]}}`
	doc, err := Unmarshal([]byte(in))
	require.NoError(t, err)

	chars := doc.FirstForce().Selections[0].Profiles[0].Characteristics
	assert.Equal(t, "4", chars[0].Text)
	assert.Equal(t, "5", chars[1].Value)
	assert.Empty(t, chars[2].Text)
}

func TestDecode_SizeLimit(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"roster": {"name": "much too long"}}`), 10)
	assert.True(t, errors.Is(err, ErrTooLarge))

	doc, err := Decode(strings.NewReader(`{"roster": {"name": "ok"}}`), 0)
	require.NoError(t, err)
	assert.Equal(t, "ok", doc.Roster.Name)
}

func TestFirstForce_Absent(t *testing.T) {
	var doc *Document
	assert.Nil(t, doc.FirstForce())
	assert.Nil(t, (&Document{}).FirstForce())
	assert.Nil(t, (&Document{Roster: &Roster{Forces: []*Force{nil}}}).FirstForce())
}

func TestUnmarshal_InvalidJSON(t *testing.T) {
	_, err := Unmarshal([]byte(`{"roster":`))
	assert.Error(t, err)
}
