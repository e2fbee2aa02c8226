package csvmap

import (
	"reflect"
	"strings"
)

// ResolveColumnKey applies the repository-wide rule to resolve the CSV column
// a struct field binds to.
// Priority: csv:"name" tag > field name; "-" disables the field.
func ResolveColumnKey(sf reflect.StructField) string {
	if tag := sf.Tag.Get("csv"); tag != "" {
		name := tag
		if i := strings.IndexByte(tag, ','); i >= 0 {
			name = tag[:i]
		}
		name = strings.TrimSpace(name)
		if name == "-" {
			return "-"
		}
		if name != "" {
			return name
		}
	}
	return sf.Name
}

// binding associates one target slot with the column it loads from. The typed
// path fills index from struct reflection; the dynamic path leaves it nil.
type binding struct {
	column      string
	typ         reflect.Type
	index       []int
	allowAbsent bool
}

// fieldBindings resolves the mappable fields of struct type rt. Unexported
// fields and fields tagged csv:"-" are skipped. Discovery order follows field
// declaration order, though the engine indexes by column name, not position.
func fieldBindings(rt reflect.Type) ([]binding, error) {
	out := make([]binding, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := ResolveColumnKey(sf)
		if name == "-" || name == "" {
			continue
		}
		out = append(out, binding{
			column:      name,
			typ:         sf.Type,
			index:       sf.Index,
			allowAbsent: nillable(sf.Type),
		})
	}
	if len(out) == 0 {
		return nil, singleIssue(CodeNoMappedFields, "no mappable fields found in type: "+rt.String())
	}
	return out, nil
}

// nillable reports whether t can represent the absent value. Value-kinded
// fields (including string) cannot; optional columns are declared as pointer
// fields.
func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return true
	default:
		return false
	}
}
