package csvmap

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
)

// Mapper maps CSV row sources into typed record slices using a converter
// Registry. A Mapper is read-only after construction and may be reused across
// Map calls on the Registry's read-mostly contract.
type Mapper struct {
	registry *Registry
}

// ForCSV returns a Mapper backed by a Registry with the default converters.
func ForCSV() *Mapper {
	return &Mapper{registry: NewRegistry()}
}

// ForCSVWith returns a Mapper backed by the given Registry. A nil registry is
// a configuration error, not a fallback to defaults.
func ForCSVWith(r *Registry) (*Mapper, error) {
	if r == nil {
		return nil, singleIssue(CodeRegistryRequired, "converter registry cannot be nil")
	}
	return &Mapper{registry: r}, nil
}

// Registry exposes the mapper's registry so callers can register further
// converters after construction.
func (m *Mapper) Registry() *Registry { return m.registry }

// Map reads the CSV file at path and returns one T per data row, in row
// order. T must be a struct or pointer to struct with at least one mappable
// field; the first row of the file is the mandatory header.
//
// The whole call fails on the first error: a missing column, a short row, or
// a conversion failure discards all partially accumulated results.
func Map[T any](m *Mapper, path string) ([]T, error) {
	if err := validateCSVPath(path); err != nil {
		return nil, err
	}
	src, err := FileSource(path)
	if err != nil {
		// validated above, but the file can vanish between Stat and Open
		return nil, Issues{Issue{Path: "/", Code: CodeFileNotFound, Message: "file not found: " + absPath(path), Cause: err}}
	}
	return MapSource[T](m, src)
}

// MapSource maps rows from src into a []T. When src implements io.Closer it
// is closed on every exit path, normal or failing.
func MapSource[T any](m *Mapper, src RowSource) ([]T, error) {
	if src == nil {
		return nil, singleIssue(CodeReadError, "row source cannot be nil")
	}
	if c, ok := src.(io.Closer); ok {
		defer c.Close()
	}
	// a zero-value Mapper never went through ForCSV/ForCSVWith
	if m == nil || m.registry == nil {
		return nil, singleIssue(CodeRegistryRequired, "converter registry cannot be nil")
	}
	rt, ptr, err := targetStruct[T]()
	if err != nil {
		return nil, err
	}
	binds, err := fieldBindings(rt)
	if err != nil {
		return nil, err
	}

	out := []T{} // non-nil even with zero data rows
	emit := func(rowNum int, vals []any) error {
		rv := reflect.New(rt).Elem()
		for i, b := range binds {
			if vals[i] == nil {
				continue // nillable field stays nil
			}
			fv := rv.FieldByIndex(b.index)
			vv := reflect.ValueOf(vals[i])
			switch {
			case vv.Type().AssignableTo(fv.Type()):
				fv.Set(vv)
			case vv.Type().ConvertibleTo(fv.Type()):
				fv.Set(vv.Convert(fv.Type()))
			default:
				return issueAt(
					rowPath(rowNum, b.column),
					CodeTypeMismatch,
					fmt.Sprintf("type mismatch for column %q: converter returned %s, field is %s", b.column, vv.Type(), fv.Type()),
				)
			}
		}
		if ptr {
			out = append(out, rv.Addr().Interface().(T))
		} else {
			out = append(out, rv.Interface().(T))
		}
		return nil
	}
	if err := mapRows(src, m.registry, binds, emit); err != nil {
		return nil, err
	}
	return out, nil
}

// targetStruct resolves the concrete struct type behind T, handling the
// pointer-to-struct form. Interface and other non-struct type arguments are
// not default-constructible targets.
func targetStruct[T any]() (rt reflect.Type, ptr bool, err error) {
	rt = reflect.TypeOf((*T)(nil)).Elem()
	if rt.Kind() == reflect.Pointer {
		ptr = true
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil, false, singleIssue(CodeNotConstructible, "target type must be a struct or pointer to struct, got "+rt.String())
	}
	return rt, ptr, nil
}

// mapRows drives the header/row loop shared by the typed and dynamic entry
// points. It consumes the header, resolves every binding against it up front,
// then calls emit once per data row with the converted value per binding, in
// binding order. The first failure anywhere aborts the whole run.
func mapRows(src RowSource, reg *Registry, binds []binding, emit func(rowNum int, vals []any) error) error {
	header, err := src.ReadNext()
	if err != nil {
		if err == io.EOF {
			return singleIssue(CodeEmptyInput, "input is empty or does not contain a header row")
		}
		return readIssue(src, err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		// first occurrence wins on duplicate header names
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}
	cols := make([]int, len(binds))
	for i, b := range binds {
		idx, ok := index[b.column]
		if !ok {
			return issueAt("/header", CodeColumnNotFound, "column not found in headers: "+b.column)
		}
		cols[i] = idx
	}

	vals := make([]any, len(binds))
	for rowNum := 1; ; rowNum++ {
		row, err := src.ReadNext()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return readIssue(src, err)
		}
		for i, b := range binds {
			idx := cols[i]
			if idx >= len(row) {
				return issueAt(
					rowPath(rowNum, b.column),
					CodeRowTooShort,
					fmt.Sprintf("missing value for column %q (index %d) in row %d", b.column, idx, rowNum),
				)
			}
			v, err := reg.Convert(row[idx], b.typ)
			if err != nil {
				return issuesAt(err, rowPath(rowNum, b.column))
			}
			if v == nil && !b.allowAbsent {
				return issueAt(
					rowPath(rowNum, b.column),
					CodeNullToValue,
					"cannot map empty value to non-nullable type: "+b.typ.String(),
				)
			}
			vals[i] = v
		}
		if err := emit(rowNum, vals); err != nil {
			return err
		}
	}
}

func rowPath(rowNum int, column string) string {
	return fmt.Sprintf("/row/%d/%s", rowNum, column)
}

func readIssue(src RowSource, err error) error {
	name := "row source"
	if n, ok := src.(namer); ok {
		name = n.Name()
	}
	return Issues{Issue{Path: "/", Code: CodeReadError, Message: "error reading " + name, Cause: err}}
}

// validateCSVPath enforces the file-level contract before any byte is read:
// the path must name an existing regular file with a .csv extension. Each
// rejection carries its own message: a missing path, a wrong extension, and a
// directory posing as a file are distinct failures. The extension is checked
// before the directory test, so only directories named *.csv reach the
// "file not found" rejection.
func validateCSVPath(path string) error {
	if path == "" {
		return singleIssue(CodeFileNotFound, "sheet data file cannot be null and must exist")
	}
	info, err := os.Stat(path)
	if err != nil {
		return singleIssue(CodeFileNotFound, "sheet data file cannot be null and must exist")
	}
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return singleIssue(CodeNotCSV, "sheet data file must be a CSV file: "+absPath(path))
	}
	if info.IsDir() {
		return singleIssue(CodeFileNotFound, "file not found: "+absPath(path))
	}
	return nil
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
