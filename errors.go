package csvmap

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// Configuration
	CodeRegistryRequired = "registry_required"
	CodeNotConstructible = "not_constructible"
	CodeNoMappedFields   = "no_mapped_fields"
	// Input validation
	CodeFileNotFound = "file_not_found"
	CodeNotCSV       = "not_csv"
	CodeReadError    = "read_error"
	// Structural
	CodeEmptyInput     = "empty_input"
	CodeColumnNotFound = "column_not_found"
	CodeRowTooShort    = "row_too_short"
	// Conversion
	CodeUnsupportedType = "unsupported_type"
	CodeConversionError = "conversion_error"
	CodeNullToValue     = "null_to_value"
	CodeTypeMismatch    = "type_mismatch"
)

// Issue represents a single mapping error entry.
type Issue struct {
	Path    string // Slash path into the input (for example: /row/2/Username).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
}

// Issues is a collection of mapping errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. column_not_found at /header: column not found in headers: Username
		fmt.Fprintf(b, "%s at %s: %s", it.Code, it.Path, it.Message)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes underlying causes to errors.Is/errors.As chains.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func singleIssue(code, msg string) Issues {
	return Issues{Issue{Path: "/", Code: code, Message: msg}}
}

func issueAt(path, code, msg string) Issues {
	return Issues{Issue{Path: path, Code: code, Message: msg}}
}

// issuesAt rebases iss onto path. Leaf components (the Registry in particular)
// raise issues anchored at "/"; the engine rebases them onto the row/column
// they arose at before returning them to the caller.
func issuesAt(err error, path string) error {
	iss, ok := AsIssues(err)
	if !ok {
		return err
	}
	out := make(Issues, len(iss))
	for i, it := range iss {
		if it.Path == "" || it.Path == "/" {
			it.Path = path
		}
		out[i] = it
	}
	return out
}
