package cart

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
)

const maxAddBody = 1 << 20

// intField accepts a JSON number or a numeric string. Valid is false when a
// value was sent but is not a whole number.
type intField struct {
	Value   int
	Present bool
	Valid   bool
}

func (f *intField) UnmarshalJSON(b []byte) error {
	*f = intField{}

	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	f.Present = true

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
	}

	n, ok := parseWholeNumber(s)
	if !ok {
		return nil
	}
	f.Value, f.Valid = n, true
	return nil
}

// maxExactFloat is the largest magnitude at which every integer is
// representable as a float64.
const maxExactFloat = 1 << 53

// parseWholeNumber accepts integers and whole-valued decimals such as 1.0 or
// 2e0. Fractions, infinities and NaN are rejected.
func parseWholeNumber(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}

	v, err := json.Number(s).Float64()
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v != math.Trunc(v) || math.Abs(v) > maxExactFloat {
		return 0, false
	}
	return int(v), true
}

type addReq struct {
	ProductID intField `json:"productId"`
	Quantity  intField `json:"quantity"`
}

var errExtraData = errors.New("extra data after json object")

// decodeAddRequest treats an empty body as an empty object.
func decodeAddRequest(w http.ResponseWriter, r *http.Request) (addReq, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAddBody)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)

	var req addReq
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return addReq{}, nil
		}
		return addReq{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return addReq{}, errExtraData
	}
	return req, nil
}

// quantity returns the requested quantity with absent and zero mapped to the
// default; ok is false for negative or non-numeric input.
func (r addReq) quantity() (int, bool) {
	switch {
	case !r.Quantity.Present:
		return defaultQuantity, true
	case !r.Quantity.Valid || r.Quantity.Value < 0:
		return 0, false
	case r.Quantity.Value == 0:
		return defaultQuantity, true
	default:
		return r.Quantity.Value, true
	}
}
