package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadMarshalJSONFlattensCustom(t *testing.T) {
	lead := Lead{
		ID:     "lead-1",
		Name:   "Jane",
		Status: "New",
		Notes:  []Note{},
		Custom: map[string]interface{}{"industry": "fintech", "priority": 3},
	}

	raw, err := json.Marshal(lead)
	require.NoError(t, err)

	var flat map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &flat))

	assert.Equal(t, "lead-1", flat["id"])
	assert.Equal(t, "fintech", flat["industry"])
	assert.Equal(t, float64(3), flat["priority"])
	assert.NotContains(t, flat, "PK")
	assert.NotContains(t, flat, "SK")
}

func TestLeadMarshalJSONCoreFieldsWin(t *testing.T) {
	lead := Lead{
		ID:     "lead-1",
		Name:   "Real Name",
		Notes:  []Note{},
		Custom: map[string]interface{}{"name": "Forged Name"},
	}

	raw, err := json.Marshal(lead)
	require.NoError(t, err)

	var flat map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.Equal(t, "Real Name", flat["name"])
}

func TestIsCoreLeadAttr(t *testing.T) {
	assert.True(t, IsCoreLeadAttr("PK"))
	assert.True(t, IsCoreLeadAttr("notes"))
	assert.True(t, IsCoreLeadAttr("createdAt"))
	assert.False(t, IsCoreLeadAttr("industry"))
}
