package school

import (
	"strconv"

	"github.com/pkg/errors"
)

// IDPolicy selects how new record identifiers are assigned.
//
// IDPolicySequential computes max(existing)+1 per collection (a single global
// counter across all tests, even when they are embedded in courses). The
// read-then-write has no compare-and-swap protection: two concurrent creates
// may compute the same next value. Acceptable only because writes are
// low-frequency administrative operations.
//
// IDPolicyUUID lets the storage layer issue a globally unique identifier at
// insert time; no read-before-write, no collision. Preferred default.
type IDPolicy string

const (
	IDPolicySequential IDPolicy = "sequential"
	IDPolicyUUID       IDPolicy = "uuid"
)

func ParseIDPolicy(s string) (IDPolicy, error) {
	switch IDPolicy(s) {
	case IDPolicySequential, IDPolicyUUID:
		return IDPolicy(s), nil
	}
	return "", errors.Errorf("unknown identifier policy %q", s)
}

// NextSequentialID returns max(ids)+1 rendered as a decimal string, or "1"
// for an empty collection. Non-numeric ids are ignored.
func NextSequentialID(ids []string) string {
	var max int64
	for _, id := range ids {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return strconv.FormatInt(max+1, 10)
}
