package dataset

import (
	"testing"

	"github.com/lepinkainen/manga-autofill/internal/errors"
	"github.com/lepinkainen/manga-autofill/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook creates an xlsx file whose first sheet holds cells, row by row.
// A nil cell is left empty.
func writeWorkbook(t *testing.T, path string, cells [][]any) {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for r, row := range cells {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}

	require.NoError(t, f.SaveAs(path))
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "relative xlsx", input: "data/manga.xlsx", want: "data/manga_anreichert.xlsx"},
		{name: "legacy xls", input: "manga.xls", want: "manga_anreichert.xlsx"},
		{name: "absolute path", input: "/tmp/in/liste.xlsx", want: "/tmp/in/liste_anreichert.xlsx"},
		{name: "no extension", input: "data/manga", want: "data/manga_anreichert.xlsx"},
		{name: "dots in name", input: "data/manga.v2.xlsx", want: "data/manga.v2_anreichert.xlsx"},
		{name: "dotfile", input: "data/.xlsx", want: "data/.xlsx_anreichert.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputPath(tt.input))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	env := testutil.NewTestEnv(t)

	ds, err := Load(env.Path("missing.xlsx"))
	require.Error(t, err)
	assert.Nil(t, ds)
	assert.True(t, errors.IsInputNotFoundError(err))
}

func TestLoadNotAWorkbook(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFile("broken.xlsx", []byte("not a zip"))

	_, err := Load(env.Path("broken.xlsx"))
	require.Error(t, err)
	assert.False(t, errors.IsInputNotFoundError(err))
	assert.Contains(t, err.Error(), "failed to open workbook")
}

func TestLoadRows(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.Path("manga.xlsx")
	writeWorkbook(t, path, [][]any{
		{"title", "band", "author", "notes"},
		{"Naruto", 1, nil, "signed"},
		{nil, 2, "Someone", nil},
		{"One Piece", "3a", "Eiichiro Oda"},
	})

	ds, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Sheet1", ds.Sheet)
	assert.Equal(t, []string{"title", "band", "author", "notes"}, ds.Columns)
	require.Equal(t, 3, ds.Len())

	first := ds.Rows[0]
	assert.Equal(t, "Naruto", first["title"].String())
	assert.Equal(t, KindNumber, first["band"].Kind())
	assert.Equal(t, "1", first["band"].String())
	assert.True(t, first["author"].IsNull())
	assert.Equal(t, "signed", first["notes"].String())

	second := ds.Rows[1]
	assert.True(t, second["title"].IsNull())
	assert.Equal(t, "2", second["band"].String())

	third := ds.Rows[2]
	assert.Equal(t, KindText, third["band"].Kind())
	assert.Equal(t, "3a", third["band"].String())
	assert.True(t, third["notes"].IsNull(), "short rows are padded with null")
}

func TestLoadHeaderNames(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.Path("header.xlsx")
	writeWorkbook(t, path, [][]any{
		{"title", nil, "title", "band"},
		{"A", "x", "B", 1},
	})

	ds, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"title", "Unnamed: 1", "title.1", "band"}, ds.Columns)
	assert.Equal(t, "x", ds.Rows[0]["Unnamed: 1"].String())
	assert.Equal(t, "B", ds.Rows[0]["title.1"].String())
}

func TestLoadKeepsCellsBeyondHeader(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.Path("wide.xlsx")
	writeWorkbook(t, path, [][]any{
		{"title", "band"},
		{"Naruto", 1, "keep-me"},
		{"Bleach", 2},
	})

	ds, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"title", "band", "Unnamed: 2"}, ds.Columns)
	assert.Equal(t, "keep-me", ds.Rows[0]["Unnamed: 2"].String())
	assert.True(t, ds.Rows[1]["Unnamed: 2"].IsNull())

	out := env.Path("wide_anreichert.xlsx")
	require.NoError(t, Save(ds, out))

	reloaded, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, ds.Columns, reloaded.Columns)
	require.Equal(t, 2, reloaded.Len())
	assert.Equal(t, "keep-me", reloaded.Rows[0]["Unnamed: 2"].String())
}

func TestBooleanCellsRoundTrip(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.Path("bools.xlsx")
	writeWorkbook(t, path, [][]any{
		{"title", "gelesen"},
		{"Naruto", true},
		{"Bleach", false},
	})

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, KindBool, ds.Rows[0]["gelesen"].Kind())
	assert.True(t, ds.Rows[0]["gelesen"].Truth())
	assert.False(t, ds.Rows[1]["gelesen"].Truth())

	out := env.Path("bools_anreichert.xlsx")
	require.NoError(t, Save(ds, out))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	typ, err := f.GetCellType(DefaultSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeBool, typ, "written back as a boolean, not a string")

	reloaded, err := Load(out)
	require.NoError(t, err)
	assert.True(t, reloaded.Rows[0]["gelesen"].Truth())
	assert.Equal(t, KindBool, reloaded.Rows[1]["gelesen"].Kind())
}

func TestLoadEmptySheet(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.Path("empty.xlsx")
	writeWorkbook(t, path, nil)

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, ds.Columns)
	assert.Equal(t, 0, ds.Len())
}

func TestSaveAndReload(t *testing.T) {
	env := testutil.NewTestEnv(t)

	ds := &Dataset{
		Columns: []string{"title", "band", "author"},
		Rows: []Row{
			{"title": Text("Naruto"), "band": Number("1"), "author": Null()},
			{"title": Null(), "band": Number("2.5"), "author": Text("Someone")},
		},
	}
	ds.Set(0, "Autor", Text("Masashi Kishimoto"))
	ds.Set(0, "ISBN", Text("9781569319000"))

	out := env.Path("manga_anreichert.xlsx")
	require.NoError(t, Save(ds, out))
	env.RequireFileExists("manga_anreichert.xlsx")

	reloaded, err := Load(out)
	require.NoError(t, err)

	assert.Equal(t, []string{"title", "band", "author", "Autor", "ISBN"}, reloaded.Columns)
	require.Equal(t, 2, reloaded.Len())

	assert.Equal(t, "Naruto", reloaded.Rows[0]["title"].String())
	assert.Equal(t, KindNumber, reloaded.Rows[0]["band"].Kind())
	assert.Equal(t, "1", reloaded.Rows[0]["band"].String())
	assert.True(t, reloaded.Rows[0]["author"].IsNull())
	assert.Equal(t, "Masashi Kishimoto", reloaded.Rows[0]["Autor"].String())
	assert.Equal(t, KindText, reloaded.Rows[0]["ISBN"].Kind(), "ISBN stays text")
	assert.Equal(t, "9781569319000", reloaded.Rows[0]["ISBN"].String())

	assert.True(t, reloaded.Rows[1]["title"].IsNull())
	assert.Equal(t, "2.5", reloaded.Rows[1]["band"].String())
	assert.True(t, reloaded.Rows[1]["Autor"].IsNull())
	assert.True(t, reloaded.Rows[1]["ISBN"].IsNull())
}

func TestSaveHeaderOnly(t *testing.T) {
	env := testutil.NewTestEnv(t)
	ds := &Dataset{Columns: []string{"title", "band"}}

	out := env.Path("header_only.xlsx")
	require.NoError(t, Save(ds, out))

	reloaded, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "band"}, reloaded.Columns)
	assert.Equal(t, 0, reloaded.Len())
}
