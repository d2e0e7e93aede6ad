package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFactoryRecognizedTags(t *testing.T) {
	for _, tag := range []string{"json", "yaml", "csv", "xlsx"} {
		p, err := New(tag)
		require.NoError(t, err, tag)
		assert.Equal(t, tag, p.Format())
	}

	// Tags match case-insensitively.
	p, err := New("JSON")
	require.NoError(t, err)
	assert.Equal(t, "json", p.Format())
}

func TestFactoryUnrecognizedTag(t *testing.T) {
	_, err := New("toml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "toml")
}

func TestRegisterOverride(t *testing.T) {
	Register("testonly", func() Parser { return &CSVParser{} })
	p, err := New("testonly")
	require.NoError(t, err)
	assert.Equal(t, "csv", p.Format())
	assert.Contains(t, Formats(), "testonly")
}

func TestDetect(t *testing.T) {
	assert.Equal(t, "json", Detect("data/people.json"))
	assert.Equal(t, "yaml", Detect("people.YAML"))
	assert.Equal(t, "yaml", Detect("people.yml"))
	assert.Equal(t, "csv", Detect("people.csv"))
	assert.Equal(t, "xlsx", Detect("people.xlsx"))
	assert.Equal(t, "", Detect("people.txt"))
	assert.Equal(t, "", Detect("people"))
}

func TestJSONParse(t *testing.T) {
	input := `[
		{"name": "ada", "age": 36},
		{"age": 41, "city": "london", "name": "grace"}
	]`
	p := &JSONParser{}
	table, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age", "city"}, table.Columns)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "ada", table.Rows[0]["name"])
	assert.Equal(t, 36.0, table.Rows[0]["age"])
	assert.Equal(t, "london", table.Rows[1]["city"])
}

func TestJSONParseSingleObject(t *testing.T) {
	p := &JSONParser{}
	table, err := p.Parse(strings.NewReader(`{"name": "ada"}`))
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "ada", table.Rows[0]["name"])
}

func TestJSONParseEmpty(t *testing.T) {
	p := &JSONParser{}
	table, err := p.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestJSONParseNotTabular(t *testing.T) {
	p := &JSONParser{}
	_, err := p.Parse(strings.NewReader(`[1, 2, 3]`))
	assert.Error(t, err)
}

func TestYAMLParse(t *testing.T) {
	input := `
- name: ada
  age: 36
- name: grace
  age: 41
  city: london
`
	p := &YAMLParser{}
	table, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age", "city"}, table.Columns)
	require.Equal(t, 2, table.Len())
	// yaml ints widen to float64 so every format agrees on cell types.
	assert.Equal(t, 36.0, table.Rows[0]["age"])
	assert.Equal(t, "grace", table.Rows[1]["name"])
}

func TestYAMLParseEmpty(t *testing.T) {
	p := &YAMLParser{}
	table, err := p.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestCSVParse(t *testing.T) {
	input := "name,age\nada,36\ngrace,41\n"
	p := &CSVParser{}
	table, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age"}, table.Columns)
	require.Equal(t, 2, table.Len())
	// CSV keeps strings; numeric comparison happens at sort time.
	assert.Equal(t, "36", table.Rows[0]["age"])
}

func TestCSVParseRaggedRow(t *testing.T) {
	input := "name,age\nada\n"
	p := &CSVParser{}
	table, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	_, ok := table.Rows[0]["age"]
	assert.False(t, ok, "missing cell should be absent, not empty")
}

func TestCSVParseDuplicateHeader(t *testing.T) {
	p := &CSVParser{}
	_, err := p.Parse(strings.NewReader("name,name\nada,grace\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate header")
}

func TestCSVParseEmpty(t *testing.T) {
	p := &CSVParser{}
	table, err := p.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestXLSXParse(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"name", "age"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"ada", "36"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"grace", "41"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	p := &XLSXParser{}
	table, err := p.Parse(&buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age"}, table.Columns)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "ada", table.Rows[0]["name"])
	assert.Equal(t, "41", table.Rows[1]["age"])
}

func TestXLSXParseEmpty(t *testing.T) {
	p := &XLSXParser{}
	table, err := p.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestXLSXParseGarbage(t *testing.T) {
	p := &XLSXParser{}
	_, err := p.Parse(strings.NewReader("not a zip archive"))
	assert.Error(t, err)
}
