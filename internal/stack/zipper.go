package stack

// Stack is a non-empty, focus-centred ordered sequence. Up is stored
// reversed (its head is the element immediately before Focus) so that
// "previous window" is an O(1) slice access rather than an O(n) walk.
// Naive forward storage for Up breaks the complexity claim for
// FocusUp/SwapUp; preserve the reversed representation in any port.
type Stack[T comparable] struct {
	Up    []T
	Focus T
	Down  []T
}

// NewStack builds a singleton stack focused on v.
func NewStack[T comparable](v T) *Stack[T] {
	return &Stack[T]{Focus: v}
}

// clone returns a deep-enough copy of s (nil-safe) so that algebra
// functions never alias a caller's backing arrays.
func (s *Stack[T]) clone() *Stack[T] {
	if s == nil {
		return nil
	}
	out := &Stack[T]{Focus: s.Focus}
	if len(s.Up) > 0 {
		out.Up = append([]T(nil), s.Up...)
	}
	if len(s.Down) > 0 {
		out.Down = append([]T(nil), s.Down...)
	}
	return out
}

// ToList flattens s into master-first order: reverse(Up), Focus, Down.
func (s *Stack[T]) ToList() []T {
	if s == nil {
		return nil
	}
	out := make([]T, 0, len(s.Up)+1+len(s.Down))
	for i := len(s.Up) - 1; i >= 0; i-- {
		out = append(out, s.Up[i])
	}
	out = append(out, s.Focus)
	out = append(out, s.Down...)
	return out
}

// FromList builds a stack from a master-first list focused on its head.
// It returns nil for an empty list, never an empty stack.
func FromList[T comparable](items []T) *Stack[T] {
	if len(items) == 0 {
		return nil
	}
	return &Stack[T]{Focus: items[0], Down: append([]T(nil), items[1:]...)}
}

// Contains reports whether v is present anywhere in s.
func (s *Stack[T]) Contains(v T) bool {
	if s == nil {
		return false
	}
	if s.Focus == v {
		return true
	}
	for _, u := range s.Up {
		if u == v {
			return true
		}
	}
	for _, d := range s.Down {
		if d == v {
			return true
		}
	}
	return false
}

// Len returns the number of elements in s.
func (s *Stack[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Up) + 1 + len(s.Down)
}

// focusUp moves focus to the previous element, wrapping cyclically.
func (s *Stack[T]) focusUp() *Stack[T] {
	if s == nil || s.Len() <= 1 {
		return s
	}
	if len(s.Up) == 0 {
		// Wrap: focus becomes the last element of Down; rebuild Up as
		// the reverse of everything before it.
		all := s.ToList()
		newFocus := all[len(all)-1]
		rest := all[:len(all)-1]
		up := make([]T, len(rest))
		for i, v := range rest {
			up[len(rest)-1-i] = v
		}
		return &Stack[T]{Up: up, Focus: newFocus}
	}
	newFocus := s.Up[0]
	up := append([]T(nil), s.Up[1:]...)
	down := append([]T{s.Focus}, s.Down...)
	return &Stack[T]{Up: up, Focus: newFocus, Down: down}
}

// focusDown moves focus to the next element, wrapping cyclically.
func (s *Stack[T]) focusDown() *Stack[T] {
	if s == nil || s.Len() <= 1 {
		return s
	}
	if len(s.Down) == 0 {
		all := s.ToList()
		newFocus := all[0]
		rest := all[1:]
		return &Stack[T]{Focus: newFocus, Down: append([]T(nil), rest...)}
	}
	newFocus := s.Down[0]
	down := append([]T(nil), s.Down[1:]...)
	up := append([]T{s.Focus}, s.Up...)
	return &Stack[T]{Up: up, Focus: newFocus, Down: down}
}

// swapUp exchanges Focus with its previous neighbour; Focus keeps pointing
// at the same window, which now sits one position closer to the master.
func (s *Stack[T]) swapUp() *Stack[T] {
	if s == nil || len(s.Up) == 0 {
		return s
	}
	prev := s.Up[0]
	up := append([]T(nil), s.Up[1:]...)
	down := append([]T{prev}, s.Down...)
	return &Stack[T]{Up: up, Focus: s.Focus, Down: down}
}

// swapDown exchanges Focus with its next neighbour; Focus keeps pointing
// at the same window, which now sits one position closer to the tail.
func (s *Stack[T]) swapDown() *Stack[T] {
	if s == nil || len(s.Down) == 0 {
		return s
	}
	next := s.Down[0]
	down := append([]T(nil), s.Down[1:]...)
	up := append([]T{next}, s.Up...)
	return &Stack[T]{Up: up, Focus: s.Focus, Down: down}
}

// swapMaster moves Focus to the master position. If Focus is already
// master (Up empty), it swaps with the element at position 1 (Down's
// head) instead, per this implementation's definition of swap_master.
func (s *Stack[T]) swapMaster() *Stack[T] {
	if s == nil {
		return nil
	}
	if len(s.Up) == 0 {
		return s.swapDown()
	}
	// Move Focus to the head of the spatial order (Up becomes empty). The
	// windows that were between the old master and Focus keep their order
	// and now come first after Focus; the old master moves behind them,
	// just before the old Down.
	oldMaster := s.Up[len(s.Up)-1]
	betweenMasterAndFocus := reverseCopy(s.Up[:len(s.Up)-1]) // master-to-focus order, excluding master
	down := append(append([]T(nil), betweenMasterAndFocus...), oldMaster)
	down = append(down, s.Down...)
	return &Stack[T]{Up: nil, Focus: s.Focus, Down: down}
}

// insertUp inserts v immediately before Focus, becoming the new focus; the
// previous focus slides into Down.
func (s *Stack[T]) insertUp(v T) *Stack[T] {
	if s == nil {
		return NewStack(v)
	}
	down := append([]T{s.Focus}, s.Down...)
	return &Stack[T]{Up: s.Up, Focus: v, Down: down}
}

// delete removes v from s wherever it is, returning the resulting stack
// (nil if s becomes empty). If v was the focus, the new focus is the head
// of Down if non-empty, else the head of Up, else the stack becomes empty.
func (s *Stack[T]) delete(v T) *Stack[T] {
	if s == nil {
		return nil
	}
	if s.Focus == v {
		if len(s.Down) > 0 {
			return &Stack[T]{Up: s.Up, Focus: s.Down[0], Down: append([]T(nil), s.Down[1:]...)}
		}
		if len(s.Up) > 0 {
			return &Stack[T]{Up: append([]T(nil), s.Up[1:]...), Focus: s.Up[0]}
		}
		return nil
	}
	up := removeFrom(s.Up, v)
	down := removeFrom(s.Down, v)
	return &Stack[T]{Up: up, Focus: s.Focus, Down: down}
}

func removeFrom[T comparable](xs []T, v T) []T {
	if len(xs) == 0 {
		return xs
	}
	out := make([]T, 0, len(xs))
	for _, x := range xs {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// Filter returns a new stack containing only elements for which keep
// returns true, preserving relative order and focus when possible. If the
// focused element is filtered out, the new focus is the first remaining
// element after it in the original order, else the first remaining
// element before it, else nil.
func (s *Stack[T]) Filter(keep func(T) bool) *Stack[T] {
	if s == nil {
		return nil
	}
	all := s.ToList()
	focusIdx := len(s.Up)
	var kept []T
	keptFocusIdx := -1
	for i, v := range all {
		if keep(v) {
			if i == focusIdx {
				keptFocusIdx = len(kept)
			}
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	if keptFocusIdx == -1 {
		// Original focus was filtered out: prefer the nearest surviving
		// element that followed it, else fall back to the first kept.
		keptFocusIdx = 0
	search:
		for _, v := range all[focusIdx+1:] {
			for j, k := range kept {
				if k == v {
					keptFocusIdx = j
					break search
				}
			}
		}
	}
	return &Stack[T]{
		Up:    reverseCopy(kept[:keptFocusIdx]),
		Focus: kept[keptFocusIdx],
		Down:  append([]T(nil), kept[keptFocusIdx+1:]...),
	}
}

func reverseCopy[T any](xs []T) []T {
	out := make([]T, len(xs))
	for i, v := range xs {
		out[len(xs)-1-i] = v
	}
	return out
}
