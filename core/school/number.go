package school

import (
	"bytes"
	"strconv"

	"github.com/pkg/errors"
)

// Number is a float64 that unmarshals from either a JSON number or a numeric
// string ("87" and 87 are both accepted). Request payloads use it for marks,
// weights and grades so callers sending stringified numbers keep working.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return errors.Wrap(err, "unquoting number")
		}
		data = []byte(s)
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return errors.Wrap(err, "parsing number")
	}
	*n = Number(f)
	return nil
}

func (n Number) Float64() float64 { return float64(n) }
func (n Number) Int() int         { return int(n) }
