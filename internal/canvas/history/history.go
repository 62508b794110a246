// Package history keeps bounded per-board undo/redo stacks of applied
// mutations. It stores descriptions only; the caller replays the inverses
// against the store.
package history

import (
	"sync"

	"sketchdeck-backend/internal/canvas/mutation"
)

// DefaultLimit bounds how many mutations a board stack retains.
const DefaultLimit = 100

type Stack struct {
	mu    sync.Mutex
	limit int
	undo  []mutation.Mutation
	redo  []mutation.Mutation
}

func NewStack(limit int) *Stack {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Stack{limit: limit}
}

// Push records an applied mutation and clears the redo stack.
func (s *Stack) Push(m mutation.Mutation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.undo = append(s.undo, m)
	if len(s.undo) > s.limit {
		s.undo = s.undo[len(s.undo)-s.limit:]
	}
	s.redo = nil
}

// Undo pops the latest mutation and returns its inverse for the caller to
// apply. Returns false when there is nothing to undo or the inverse cannot
// be derived.
func (s *Stack) Undo() (mutation.Mutation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undo) == 0 {
		return mutation.Mutation{}, false
	}
	last := s.undo[len(s.undo)-1]
	inv, ok := last.Inverse()
	if !ok {
		return mutation.Mutation{}, false
	}
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, last)
	return inv, true
}

// Redo re-applies the most recently undone mutation.
func (s *Stack) Redo() (mutation.Mutation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.redo) == 0 {
		return mutation.Mutation{}, false
	}
	last := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, last)
	return last, true
}

// Boards tracks one stack per board.
type Boards struct {
	mu     sync.Mutex
	stacks map[string]*Stack
	limit  int
}

func NewBoards(limit int) *Boards {
	return &Boards{stacks: make(map[string]*Stack), limit: limit}
}

// For returns the stack for a board, creating it on first use.
func (b *Boards) For(boardID string) *Stack {
	b.mu.Lock()
	defer b.mu.Unlock()
	st, ok := b.stacks[boardID]
	if !ok {
		st = NewStack(b.limit)
		b.stacks[boardID] = st
	}
	return st
}
