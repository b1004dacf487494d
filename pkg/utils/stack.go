package utils

// Array backed LIFO stack
type Stack[T any] struct {
	items []T
}

// Creates an empty stack with room for capacity items before growing
func NewStack[T any](capacity int) *Stack[T] {
	return &Stack[T]{
		items: make([]T, 0, capacity),
	}
}

func (s *Stack[T]) Push(value T) {
	s.items = append(s.items, value)
}

// Removes and returns the top of the stack. Returns false if the stack is empty
func (s *Stack[T]) Pop() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}

	top := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return top, true
}

// Returns the top of the stack without removing it. Returns false if the stack is empty
func (s *Stack[T]) Peek() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}

	return s.items[len(s.items)-1], true
}

func (s *Stack[T]) Len() int {
	return len(s.items)
}

func (s *Stack[T]) Empty() bool {
	return len(s.items) == 0
}

// Drops all items keeping the allocated storage
func (s *Stack[T]) Clear() {
	s.items = s.items[:0]
}
