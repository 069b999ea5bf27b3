package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagecrew/stageinv/internal/model"
)

func TestWriteItemsCSV(t *testing.T) {
	items := []model.Item{
		{ID: 1, Name: "Mason jar", Category: "Props", CrewTag: "Props", Location: "Storage Room B"},
		{ID: 3, Name: `XLR Cable, 25"`, Category: "Sound", CrewTag: "Sound", Location: "Tech Booth", InUse: true},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteItemsCSV(&buf, items))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "name", "category", "crew_tag", "location", "in_use"}, rows[0])
	assert.Equal(t, []string{"1", "Mason jar", "Props", "Props", "Storage Room B", "false"}, rows[1])
	assert.Equal(t, []string{"3", `XLR Cable, 25"`, "Sound", "Sound", "Tech Booth", "true"}, rows[2])
}

func TestWriteItemsCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteItemsCSV(&buf, nil))
	assert.Equal(t, "id,name,category,crew_tag,location,in_use\n", buf.String())
}
