package instrument

import "github.com/google/uuid"

// Element is a single addressable row of an instrument.
type Element interface {
	ElementID() string
}

// NewID returns a fresh element identifier. It is a variable so tests can
// make identifiers predictable.
var NewID = uuid.NewString

// appendElement returns a copy of elems with e appended.
func appendElement[E Element](elems []E, e E) []E {
	out := make([]E, len(elems), len(elems)+1)
	copy(out, elems)
	return append(out, e)
}

// removeElement returns elems without the element identified by id. The
// original slice is returned when nothing matches.
func removeElement[E Element](elems []E, id string) []E {
	idx := indexOf(elems, id)
	if idx < 0 {
		return elems
	}
	out := make([]E, 0, len(elems)-1)
	out = append(out, elems[:idx]...)
	return append(out, elems[idx+1:]...)
}

// updateElement returns a copy of elems where fn has been applied to the
// element identified by id. The original slice is returned when nothing
// matches.
func updateElement[E Element](elems []E, id string, fn func(*E)) []E {
	idx := indexOf(elems, id)
	if idx < 0 {
		return elems
	}
	out := make([]E, len(elems))
	copy(out, elems)
	fn(&out[idx])
	return out
}

func indexOf[E Element](elems []E, id string) int {
	for i, e := range elems {
		if e.ElementID() == id {
			return i
		}
	}
	return -1
}

func idsOf[E Element](elems []E) []string {
	ids := make([]string, len(elems))
	for i, e := range elems {
		ids[i] = e.ElementID()
	}
	return ids
}

// find returns the element identified by id.
func find[E Element](elems []E, id string) (E, bool) {
	if idx := indexOf(elems, id); idx >= 0 {
		return elems[idx], true
	}
	var zero E
	return zero, false
}
