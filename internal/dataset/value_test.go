package dataset

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestValueKinds(t *testing.T) {
	assert.True(t, Null().IsNull())
	assert.Equal(t, KindNull, Null().Kind())

	empty := Text("")
	assert.False(t, empty.IsNull(), "empty text is not missing")
	assert.Equal(t, KindText, empty.Kind())

	n := Number("1")
	assert.Equal(t, KindNumber, n.Kind())
	assert.Equal(t, "1", n.String())

	yes := Bool(true)
	assert.Equal(t, KindBool, yes.Kind())
	assert.Equal(t, "TRUE", yes.String())
	assert.True(t, yes.Truth())
	assert.False(t, Bool(false).Truth())
	assert.False(t, Text("TRUE").Truth(), "only boolean cells are true")
}

func TestRowGet(t *testing.T) {
	row := Row{
		"title":  Text("Naruto"),
		"band":   Number("1"),
		"author": Null(),
		"note":   Text(""),
	}

	v, ok := row.Get("title")
	assert.True(t, ok)
	assert.Equal(t, "Naruto", v.String())

	_, ok = row.Get("author")
	assert.False(t, ok, "null value is missing")

	_, ok = row.Get("publisher")
	assert.False(t, ok, "absent key is missing")

	v, ok = row.Get("note")
	assert.True(t, ok)
	assert.Equal(t, "", v.String())
}

func TestDatasetSetRegistersColumns(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"title", "band"},
		Rows:    []Row{{"title": Text("A")}, {"title": Text("B")}},
	}

	ds.Set(1, "ISBN", Text("123"))
	ds.Set(0, "ISBN", Text("456"))
	ds.Set(1, "Verlag", Text("Carlsen"))

	assert.Equal(t, []string{"title", "band", "ISBN", "Verlag"}, ds.Columns)
	assert.Equal(t, "456", ds.Rows[0]["ISBN"].String())
	assert.Equal(t, "123", ds.Rows[1]["ISBN"].String())
	assert.Equal(t, 2, ds.Len())
}

func TestDatasetSetNilRow(t *testing.T) {
	ds := &Dataset{Rows: make([]Row, 1)}

	ds.Set(0, "title", Text("Akira"))

	assert.Equal(t, "Akira", ds.Rows[0]["title"].String())
}
