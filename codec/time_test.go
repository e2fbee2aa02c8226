package codec_test

import (
	"reflect"
	"testing"
	"time"

	csvmap "github.com/reoring/csvmap"
	"github.com/reoring/csvmap/codec"
)

func TestTime(t *testing.T) {
	fn := codec.Time("02/01/2006")

	v, err := fn("25/10/2025")
	if err != nil {
		t.Fatalf("convert err: %v", err)
	}
	got, ok := v.(time.Time)
	if !ok || !got.Equal(time.Date(2025, 10, 25, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected value: %#v", v)
	}

	if _, err := fn("2025-10-25"); err == nil {
		t.Fatalf("expected layout mismatch error")
	}
}

func TestTimePtr(t *testing.T) {
	fn := codec.TimePtr(time.RFC3339)

	v, err := fn("2025-10-25T12:00:00Z")
	if err != nil {
		t.Fatalf("convert err: %v", err)
	}
	p, ok := v.(*time.Time)
	if !ok || p == nil || p.Hour() != 12 {
		t.Fatalf("unexpected value: %#v", v)
	}
}

func TestRegisterTime(t *testing.T) {
	r := csvmap.NewRegistry()
	codec.RegisterTime(r, "2006-01-02")

	v, err := r.Convert("2025-10-25", reflect.TypeOf((*time.Time)(nil)).Elem())
	if err != nil {
		t.Fatalf("Convert err: %v", err)
	}
	if _, ok := v.(time.Time); !ok {
		t.Fatalf("expected time.Time, got %#v", v)
	}

	p, err := r.Convert("2025-10-25", reflect.TypeOf((**time.Time)(nil)).Elem())
	if err != nil {
		t.Fatalf("Convert ptr err: %v", err)
	}
	if _, ok := p.(*time.Time); !ok {
		t.Fatalf("expected *time.Time, got %#v", p)
	}
}
