package debuglog

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strings"
	"time"
)

// FormatTimestamp renders the UTC time of day as HH:MM:SS.mmm.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("15:04:05.000")
}

// FormatLogMessage renders "label: arg1 arg2 ...". Scalars print as-is, composite
// values as compact JSON.
func FormatLogMessage(label string, args []any) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, formatArg(a))
	}
	return label + ": " + strings.Join(parts, " ")
}

func formatArg(a any) string {
	switch v := a.(type) {
	case nil:
		return "null"
	case string:
		return v
	case *big.Int:
		if v == nil {
			return "null"
		}
		return v.String()
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	}

	switch reflect.ValueOf(a).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Pointer, reflect.Interface:
		b, err := json.Marshal(a)
		if err != nil {
			return fmt.Sprintf("%v", a)
		}
		return string(b)
	default:
		return fmt.Sprint(a)
	}
}
