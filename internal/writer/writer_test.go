package writer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rowkit/internal/record"
)

func sampleTable() *record.Table {
	t := record.NewTable("name", "city")
	t.Rows = []record.Record{
		{"name": "ada", "city": "london"},
		{"name": "grace", "city": "arlington"},
	}
	return t
}

func TestFactoryRecognizedTags(t *testing.T) {
	for _, tag := range []string{"json", "yaml", "csv"} {
		w, err := New(tag)
		require.NoError(t, err, tag)
		assert.Equal(t, tag, w.Format())
	}

	w, err := New("CSV")
	require.NoError(t, err)
	assert.Equal(t, "csv", w.Format())
}

func TestFactoryUnrecognizedTag(t *testing.T) {
	_, err := New("parquet")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "parquet")
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONWriter{}).Write(sampleTable(), &buf))

	want := `[
  {
    "name": "ada",
    "city": "london"
  },
  {
    "name": "grace",
    "city": "arlington"
  }
]
`
	assert.Equal(t, want, buf.String())
}

func TestJSONWriterEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONWriter{}).Write(record.NewTable("a"), &buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestJSONWriterSkipsMissingCells(t *testing.T) {
	tbl := record.NewTable("name", "city")
	tbl.Rows = []record.Record{{"name": "ada"}}

	var buf bytes.Buffer
	require.NoError(t, (&JSONWriter{}).Write(tbl, &buf))
	assert.NotContains(t, buf.String(), "city")
	assert.NotContains(t, buf.String(), "null")
}

func TestYAMLWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&YAMLWriter{}).Write(sampleTable(), &buf))

	want := `- name: ada
  city: london
- name: grace
  city: arlington
`
	assert.Equal(t, want, buf.String())
}

func TestCSVWriter(t *testing.T) {
	tbl := record.NewTable("name", "age")
	tbl.Rows = []record.Record{
		{"name": "ada", "age": 36.0},
		{"name": "grace"}, // missing age renders empty
	}

	var buf bytes.Buffer
	require.NoError(t, (&CSVWriter{}).Write(tbl, &buf))
	assert.Equal(t, "name,age\nada,36\ngrace,\n", buf.String())
}
