package dataset

// Kind distinguishes the variants a cell value can take.
type Kind int

const (
	// KindNull marks a missing value (empty cell or absent column).
	KindNull Kind = iota
	// KindText is a string value. The empty string is a valid text value.
	KindText
	// KindNumber is a numeric value kept in its raw spreadsheet form.
	KindNumber
	// KindBool is a boolean cell, shown as TRUE or FALSE.
	KindBool
)

// Value is a single cell of a Row.
type Value struct {
	kind Kind
	raw  string
}

// Null returns the missing value.
func Null() Value {
	return Value{}
}

// Text returns a text value.
func Text(s string) Value {
	return Value{kind: KindText, raw: s}
}

// Number returns a numeric value from its raw representation, e.g. "1" or "2.5".
func Number(raw string) Value {
	return Value{kind: KindNumber, raw: raw}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	if b {
		return Value{kind: KindBool, raw: "TRUE"}
	}
	return Value{kind: KindBool, raw: "FALSE"}
}

// Kind returns the variant of v.
func (v Value) Kind() Kind {
	return v.kind
}

// Truth reports whether v is the boolean TRUE.
func (v Value) Truth() bool {
	return v.kind == KindBool && v.raw == "TRUE"
}

// IsNull reports whether v is missing.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// String returns the textual form of v; empty for Null.
func (v Value) String() string {
	return v.raw
}

// Row maps column names to values.
type Row map[string]Value

// Get returns the value for column and whether it is present and not null.
func (r Row) Get(column string) (Value, bool) {
	v, ok := r[column]
	if !ok || v.IsNull() {
		return Null(), false
	}
	return v, true
}

// Dataset is an ordered sequence of rows loaded from one sheet.
type Dataset struct {
	Sheet   string
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// Set stores v in column of row i, registering the column if it is new.
func (d *Dataset) Set(i int, column string, v Value) {
	d.addColumn(column)
	if d.Rows[i] == nil {
		d.Rows[i] = make(Row)
	}
	d.Rows[i][column] = v
}

func (d *Dataset) addColumn(column string) {
	for _, c := range d.Columns {
		if c == column {
			return
		}
	}
	d.Columns = append(d.Columns, column)
}
