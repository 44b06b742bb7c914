package model

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrMalformedData = errors.New("malformed data")

// Id is an opaque server identifier. Some servers encode it as a JSON string, others as an integer.
type Id string

func (id *Id) UnmarshalJSON(data []byte) (err error) {
	s := string(data)
	switch {
	case s == "null":
		*id = ""
	case len(s) > 1 && s[0] == '"':
		s, err = strconv.Unquote(s)
		if err == nil {
			*id = Id(s)
		}
	default:
		_, err = strconv.ParseInt(s, 10, 64)
		if err == nil {
			*id = Id(s)
		}
	}
	if err != nil {
		err = fmt.Errorf("%w: invalid id %s", ErrMalformedData, s)
	}
	return
}

func (id Id) String() string {
	return string(id)
}
