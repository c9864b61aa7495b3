package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func TestCSV_QuotesAndDoubling(t *testing.T) {
	var buf bytes.Buffer
	err := CSV(&buf, []string{"name", "note"}, [][]string{
		{`O"Brien`, "a,b"},
	})
	assert.NoError(t, err)

	// kutip ganda di dalam nilai harus digandakan
	assert.Contains(t, buf.String(), `"O""Brien"`)

	// round-trip lewat csv.Reader
	r := csv.NewReader(strings.NewReader(buf.String()))
	records, err := r.ReadAll()
	assert.NoError(t, err)
	assert.Equal(t, 2, len(records))
	assert.Equal(t, `O"Brien`, records[1][0])
	assert.Equal(t, "a,b", records[1][1])
}

func TestCSV_EmptyDatasetEmitsHeadersOnly(t *testing.T) {
	var buf bytes.Buffer
	err := CSV(&buf, []string{"name", "email"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "name,email\n", buf.String())
}

func TestXLSX_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	err := XLSX(&buf, "Leads", []string{"name", "stage"}, [][]string{
		{"Priya", "New"},
		{"Rahul", "Converted"},
	})
	assert.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	assert.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Leads")
	assert.NoError(t, err)
	assert.Equal(t, 3, len(rows))
	assert.Equal(t, []string{"name", "stage"}, rows[0])
	assert.Equal(t, []string{"Rahul", "Converted"}, rows[2])
}
