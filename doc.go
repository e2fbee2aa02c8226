package csvmap

// Package csvmap maps delimited tabular text into strongly typed records.
//
// - Header-driven column resolution: struct fields bind to header columns via
//   csv:"..." tags, defaulting to the field name
// - A pluggable string-to-value conversion layer via Registry, pre-populated
//   for the common scalar types and open to per-type extension and override
// - A stable error model via Issues (path, code, message, cause)
// - Fail-fast, whole-call semantics: the first row or field error aborts the
//   mapping call and discards partial results
//
// Design policy:
// - Keep only public APIs in the root package; CSV tokenizing lives under
//   source/csv, extra converters under codec/, and the CLI under cmd/csvmap.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	type User struct {
//		ID     int    `csv:"ID"`
//		Name   string `csv:"Username"`
//		Active bool   `csv:"Active"`
//	}
//
//	m := csvmap.ForCSV()
//	users, err := csvmap.Map[User](m, "users.csv")
