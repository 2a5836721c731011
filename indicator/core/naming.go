package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Name builds the catalog name of an indicator output: the prefix followed by
// each parameter, joined with underscores (TRENDFLEX_20_20_0.04).
func Name(prefix string, params ...any) string {
	if len(params) == 0 {
		return prefix
	}
	var sb strings.Builder
	sb.WriteString(prefix)
	for _, p := range params {
		sb.WriteByte('_')
		sb.WriteString(formatParam(p))
	}
	return sb.String()
}

func formatParam(p any) string {
	switch v := p.(type) {
	case int:
		return strconv.Itoa(v)
	case float64:
		return FormatFloat(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// FormatFloat renders a parameter the way catalog names have always shown
// them: shortest round-trip digits, and a trailing ".0" for integral values
// (2 → "2.0", 0.04 → "0.04").
func FormatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	s := decimal.NewFromFloat(v).String()
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
