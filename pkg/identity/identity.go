// Package identity derives stable keys for scene nodes from their ancestry.
//
// An ID is never stored on a node. It is recomputed every frame from the
// label path, so renaming or moving a node yields a new ID and any UI state
// keyed by the old one is left behind.
package identity

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// ID is an opaque key derived from a node's ancestry path.
type ID uint64

const (
	rootTag  byte = 0
	childTag byte = 1
)

// Root returns the ID of a node with no parent.
func Root(label string) ID {
	d := xxhash.New()
	_, _ = d.Write([]byte{rootTag})
	_, _ = d.WriteString(label)
	return ID(d.Sum64())
}

// With returns the ID of a child of id carrying label.
// Parent and label are combined order-sensitively.
func (id ID) With(label string) ID {
	var buf [9]byte
	buf[0] = childTag
	binary.LittleEndian.PutUint64(buf[1:], uint64(id))

	d := xxhash.New()
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(label)
	return ID(d.Sum64())
}

// Resolve derives the ID for label under parent. A nil parent means the
// node is a root.
func Resolve(parent *ID, label string) ID {
	if parent == nil {
		return Root(label)
	}
	return parent.With(label)
}

// ResolvePath folds Resolve over a full label path, root first.
// An empty path yields the zero ID.
func ResolvePath(path []string) ID {
	var id ID
	for i, label := range path {
		if i == 0 {
			id = Resolve(nil, label)
			continue
		}
		parent := id
		id = Resolve(&parent, label)
	}
	return id
}

// String renders the ID as 16 lowercase hex digits.
func (id ID) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}

// MarshalText encodes the ID in its hex form.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText parses the hex form written by MarshalText.
func (id *ID) UnmarshalText(text []byte) error {
	v, err := strconv.ParseUint(string(text), 16, 64)
	if err != nil {
		return fmt.Errorf("parsing id %q: %w", text, err)
	}
	*id = ID(v)
	return nil
}
