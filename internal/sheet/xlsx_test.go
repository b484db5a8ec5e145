package sheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func buildWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := xlsx.NewFile()
	sh, err := f.AddSheet("Leads")
	require.NoError(t, err)

	for _, row := range rows {
		r := sh.AddRow()
		for _, cell := range row {
			r.AddCell().SetString(cell)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestReadLeads_BindsHeadersAnyCase(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"Business Name", "MOBILE NUMBER", "email", "Ignored Column"},
		{"Acme Corp", "9876543210", "a@acme.test", "garbage"},
	})

	rows, err := ReadLeads(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Acme Corp", rows[0]["businessName"])
	assert.Equal(t, "9876543210", rows[0]["mobileNumber"])
	assert.Equal(t, "a@acme.test", rows[0]["email"])
	_, hasIgnored := rows[0]["Ignored Column"]
	assert.False(t, hasIgnored)
}

func TestReadLeads_EmptyCellsBecomeNil(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"Business Name", "Mobile Number", "Zone"},
		{"Acme Corp", "", "  "},
	})

	rows, err := ReadLeads(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Acme Corp", rows[0]["businessName"])
	assert.Nil(t, rows[0]["mobileNumber"])
	assert.Nil(t, rows[0]["zone"])
}

func TestReadLeads_SkipsFullyEmptyRows(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"Business Name", "Mobile Number"},
		{"Acme Corp", "111"},
		{"", ""},
		{"Beta Traders", "222"},
	})

	rows, err := ReadLeads(data)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Beta Traders", rows[1]["businessName"])
}

func TestReadLeads_HeaderOnly(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"Business Name", "Mobile Number"},
	})

	rows, err := ReadLeads(data)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadLeads_ShortRowsTolerated(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"Business Name", "Mobile Number", "Email"},
		{"Acme Corp"},
	})

	rows, err := ReadLeads(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0]["mobileNumber"])
	assert.Nil(t, rows[0]["email"])
}

func TestReadLeads_NotAWorkbook(t *testing.T) {
	_, err := ReadLeads([]byte("this is not a zip archive"))
	assert.Error(t, err)
}
