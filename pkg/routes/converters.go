package routes

import (
	"math/big"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Converters validate path variables after the mux has matched a route.
// A false result means the URL does not match and the view should 404.

// Int converts a non-negative decimal integer path variable of any length.
func Int(r *http.Request, name string) (*big.Int, bool) {
	v := r.PathValue(name)
	if v == "" || !allDigits(v) {
		return nil, false
	}
	n, ok := new(big.Int).SetString(v, 10)
	if !ok {
		return nil, false
	}
	return n, true
}

// Float converts a non-negative decimal path variable of the form 1.5.
func Float(r *http.Request, name string) (float64, bool) {
	v := r.PathValue(name)
	whole, frac, found := strings.Cut(v, ".")
	if !found || whole == "" || frac == "" || !allDigits(whole) || !allDigits(frac) {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// UUID converts a path variable in canonical 8-4-4-4-12 hexadecimal form.
func UUID(r *http.Request, name string) (uuid.UUID, bool) {
	v := r.PathValue(name)
	if len(v) != 36 {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Path returns a {name...} variable, which may contain slashes.
func Path(r *http.Request, name string) string {
	return r.PathValue(name)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
