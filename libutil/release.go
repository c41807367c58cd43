package libutil

import (
	"golang.org/x/exp/slices"
)

// ReleaseStack owns GPU objects in acquisition order.
// Release deletes them in reverse order.
type ReleaseStack struct {
	items []Deleter
	names []string
}

// Own registers d and returns it unchanged, so it can wrap a constructor call.
func Own[T Deleter](rs *ReleaseStack, name string, d T) T {
	rs.items = append(rs.items, d)
	rs.names = append(rs.names, name)
	return d
}

func (rs *ReleaseStack) Len() int {
	return len(rs.items)
}

// Names lists the owned objects in the order they will be released.
func (rs *ReleaseStack) Names() []string {
	names := slices.Clone(rs.names)
	slices.Reverse(names)
	return names
}

func (rs *ReleaseStack) Release() {
	for i := len(rs.items) - 1; i >= 0; i-- {
		rs.items[i].Delete()
	}
	rs.items = nil
	rs.names = nil
}
