package gh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoardItems(t *testing.T) {
	payload := `{
		"data": {
			"repository": {
				"issue": {
					"projectItems": {
						"nodes": [
							{"id": "PVTI_aaa", "project": {"number": 4}},
							{"id": "PVTI_bbb", "project": {"number": 9}}
						]
					}
				}
			}
		}
	}`

	items, err := parseBoardItems([]byte(payload))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, BoardItem{ID: "PVTI_aaa", ProjectNumber: 4}, items[0])
	assert.Equal(t, BoardItem{ID: "PVTI_bbb", ProjectNumber: 9}, items[1])
}

func TestParseBoardItemsEmpty(t *testing.T) {
	items, err := parseBoardItems([]byte(`{"data":{"repository":{"issue":{"projectItems":{"nodes":[]}}}}}`))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestParseStatusField(t *testing.T) {
	payload := `{
		"data": {
			"node": {
				"fields": {
					"nodes": [
						{},
						{"id": "F_title", "name": "Title", "options": []},
						{"id": "F_status", "name": "Status", "options": [
							{"id": "opt1", "name": "Todo"},
							{"id": "opt2", "name": "In Progress"},
							{"id": "opt3", "name": "Done"}
						]}
					]
				}
			}
		}
	}`

	field, err := parseStatusField([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, "F_status", field.ID)
	assert.Equal(t, "opt2", field.Options["In Progress"])
	assert.Equal(t, "Done", field.OptionName("opt3"))
	assert.Equal(t, "Unknown", field.OptionName("missing"))
}

func TestParseStatusFieldMissing(t *testing.T) {
	payload := `{"data":{"node":{"fields":{"nodes":[{"id":"F_x","name":"Priority","options":[]}]}}}}`

	_, err := parseStatusField([]byte(payload))
	assert.ErrorIs(t, err, ErrNoStatusField)
}
