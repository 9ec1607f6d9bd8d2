package entity

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
)

// ID identifies locally stored records (drafts, deployment history). Deployment ids
// issued by the server are plain strings.
type ID string

func NewID(id any) ID {
	switch v := id.(type) {
	case string:
		return ID(v)
	case uint:
		return ID(strconv.FormatUint(uint64(v), 10))
	}
	panic("unsupported ID type")
}

// ParseID validates an id received from outside, e.g. a route parameter.
func ParseID(s string) (ID, error) {
	if _, err := strconv.ParseUint(s, 10, 64); err != nil {
		return "", fmt.Errorf("%w: id %q", ErrInvalid, s)
	}
	return ID(s), nil
}

func (id ID) String() string { return string(id) }
func (id ID) Uint() uint     { return uint(lo.Must(strconv.ParseUint(id.String(), 10, 64))) }
