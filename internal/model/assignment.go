package model

import "fmt"

// Assignment maps a student's stable name to the Position they occupy.
type Assignment map[string]Position

// Validate checks the two invariants every successful assignment must
// satisfy: injectivity on seats, and domain membership for every student
// named in students.
func (a Assignment) Validate(room *Room, students []Student, domains map[string]SeatSet) error {
	seen := make(map[Position]string, len(a))
	for _, st := range students {
		pos, ok := a[st.Name]
		if !ok {
			return fmt.Errorf("model: student %q has no seat in assignment", st.Name)
		}
		idx, ok := room.IndexOf(pos)
		if !ok {
			return fmt.Errorf("model: student %q assigned to nonexistent seat %+v", st.Name, pos)
		}
		if dom, ok := domains[st.Name]; ok && !dom.Contains(idx) {
			return fmt.Errorf("model: student %q assigned to seat %+v outside their domain", st.Name, pos)
		}
		if other, dup := seen[pos]; dup {
			return fmt.Errorf("model: seat %+v occupied by both %q and %q", pos, other, st.Name)
		}
		seen[pos] = st.Name
	}
	return nil
}
