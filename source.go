package csvmap

import (
	"io"
	"os"

	csvsrc "github.com/reoring/csvmap/source/csv"
)

// RowSource abstracts over polymorphic row inputs. ReadNext returns the field
// values of the next row, io.EOF when the input is exhausted, or any other
// error for malformed input.
//
// A RowSource handed to the engine is a scoped resource: when it also
// implements io.Closer, the engine closes it on every exit path.
type RowSource interface {
	ReadNext() ([]string, error)
}

// namer lets a source contribute its identity to read_error messages.
type namer interface {
	Name() string
}

// FileSource opens the CSV file at path as a RowSource. The returned source
// owns the file handle and implements io.Closer.
func FileSource(path string, opts ...csvsrc.Option) (RowSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &fileSource{f: f, r: csvsrc.NewReader(f, opts...), path: path}, nil
}

type fileSource struct {
	f    *os.File
	r    *csvsrc.Reader
	path string
}

func (s *fileSource) ReadNext() ([]string, error) { return s.r.ReadNext() }
func (s *fileSource) Close() error                { return s.f.Close() }
func (s *fileSource) Name() string                { return s.path }

// ReaderSource wraps an io.Reader as a CSV RowSource. The caller keeps
// ownership of r.
func ReaderSource(r io.Reader, opts ...csvsrc.Option) RowSource {
	return readerSource{r: csvsrc.NewReader(r, opts...)}
}

type readerSource struct {
	r *csvsrc.Reader
}

func (s readerSource) ReadNext() ([]string, error) { return s.r.ReadNext() }
