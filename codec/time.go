// Package codec provides converter functions for value types beyond the
// Registry defaults.
package codec

import (
	"reflect"
	"time"

	csvmap "github.com/reoring/csvmap"
)

// TimeRFC3339 returns a ConverterFunc parsing RFC3339 timestamps into
// time.Time.
func TimeRFC3339() csvmap.ConverterFunc { return Time(time.RFC3339) }

// Time returns a ConverterFunc parsing timestamps with the given layout.
func Time(layout string) csvmap.ConverterFunc {
	return func(raw string) (any, error) {
		return time.Parse(layout, raw)
	}
}

// TimePtr is the pointer-producing counterpart of Time, for *time.Time fields.
func TimePtr(layout string) csvmap.ConverterFunc {
	return func(raw string) (any, error) {
		t, err := time.Parse(layout, raw)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
}

// RegisterTime registers layout-based converters for time.Time and *time.Time
// on r, replacing any prior entries for those types.
func RegisterTime(r *csvmap.Registry, layout string) {
	r.Register(reflect.TypeOf((*time.Time)(nil)).Elem(), Time(layout))
	r.Register(reflect.TypeOf((**time.Time)(nil)).Elem(), TimePtr(layout))
}
