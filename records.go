package csvmap

import (
	"fmt"
	"io"
	"reflect"
	"time"
)

// Column declares one entry of a runtime binding table for MapRecords: the
// header column to read and the name of the value type to convert it to. The
// yaml tags let column tables load straight from configuration files.
type Column struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

var columnTypes = map[string]reflect.Type{
	"string":   reflect.TypeOf((*string)(nil)).Elem(),
	"int":      reflect.TypeOf((*int)(nil)).Elem(),
	"int32":    reflect.TypeOf((*int32)(nil)).Elem(),
	"int64":    reflect.TypeOf((*int64)(nil)).Elem(),
	"float32":  reflect.TypeOf((*float32)(nil)).Elem(),
	"float64":  reflect.TypeOf((*float64)(nil)).Elem(),
	"bool":     reflect.TypeOf((*bool)(nil)).Elem(),
	"time":     reflect.TypeOf((*time.Time)(nil)).Elem(),
	"*string":  reflect.TypeOf((**string)(nil)).Elem(),
	"*int":     reflect.TypeOf((**int)(nil)).Elem(),
	"*int32":   reflect.TypeOf((**int32)(nil)).Elem(),
	"*int64":   reflect.TypeOf((**int64)(nil)).Elem(),
	"*float32": reflect.TypeOf((**float32)(nil)).Elem(),
	"*float64": reflect.TypeOf((**float64)(nil)).Elem(),
	"*bool":    reflect.TypeOf((**bool)(nil)).Elem(),
	"*time":    reflect.TypeOf((**time.Time)(nil)).Elem(),
}

// ColumnType resolves a Column.Type name to its reflect.Type. Conversion for
// the resolved type still requires a registered converter; in particular
// "time" needs one of the codec package's time converters.
func ColumnType(name string) (reflect.Type, bool) {
	t, ok := columnTypes[name]
	return t, ok
}

// MapRecords maps rows from src into generic records using an explicit column
// table instead of struct reflection. Each record maps column name to the
// converted value; a blank cell stores the absent value (nil) under its key,
// since a record slot can always hold absence.
//
// The source contract matches MapSource: src is closed when it implements
// io.Closer, and the first error aborts the whole call.
func MapRecords(m *Mapper, src RowSource, cols []Column) ([]map[string]any, error) {
	if src == nil {
		return nil, singleIssue(CodeReadError, "row source cannot be nil")
	}
	if c, ok := src.(io.Closer); ok {
		defer c.Close()
	}
	if m == nil || m.registry == nil {
		return nil, singleIssue(CodeRegistryRequired, "converter registry cannot be nil")
	}
	if len(cols) == 0 {
		return nil, singleIssue(CodeNoMappedFields, "column table is empty")
	}
	binds := make([]binding, len(cols))
	for i, c := range cols {
		if c.Name == "" {
			return nil, singleIssue(CodeNoMappedFields, fmt.Sprintf("column %d has no name", i))
		}
		t, ok := ColumnType(c.Type)
		if !ok {
			return nil, singleIssue(CodeUnsupportedType, "unsupported column type: "+c.Type)
		}
		binds[i] = binding{column: c.Name, typ: t, allowAbsent: true}
	}

	out := []map[string]any{}
	emit := func(_ int, vals []any) error {
		rec := make(map[string]any, len(binds))
		for i, b := range binds {
			rec[b.column] = vals[i]
		}
		out = append(out, rec)
		return nil
	}
	if err := mapRows(src, m.registry, binds, emit); err != nil {
		return nil, err
	}
	return out, nil
}
