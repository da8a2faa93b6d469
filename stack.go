// Copyright (c) 2023 Paweł Gaczyński
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fastack

import (
	"sync/atomic"

	"github.com/pawelgaczynski/fastack/logger"
	"github.com/pawelgaczynski/fastack/pkg/arena"
	fastackErrors "github.com/pawelgaczynski/fastack/pkg/errors"
	"github.com/pawelgaczynski/fastack/pkg/hazard"
	"github.com/rs/zerolog"
)

// Cloner is implemented by values that need a deep copy when they are moved
// in or out of the stack. Values of other types are copied by assignment.
type Cloner[T any] interface {
	Clone() T
}

func duplicate[T any](value T) T {
	if cloner, ok := any(value).(Cloner[T]); ok {
		return cloner.Clone()
	}

	return value
}

func getZero[T any]() T {
	var result T

	return result
}

type node[T any] struct {
	value T
	next  hazard.AtomicPtr
}

// Stack is a lock-free LIFO stack. Nodes live in an arena and are recycled
// only after no hazard pointer protects them anymore.
type Stack[T any] struct {
	head hazard.AtomicPtr
	_    [56]byte
	len  atomic.Int64

	nodes   *arena.Arena[node[T]]
	dropbox *hazard.BoxedPointer
	config  Config
	logger  zerolog.Logger

	casHead func(old, new hazard.Pointer) bool
}

// NewStack creates a new lock-free stack.
func NewStack[T any](opts ...ConfigOption) *Stack[T] {
	config := NewConfig(opts...)
	log := logger.NewLogger("stack", config.LoggerLevel, config.PrettyLogger)

	stack := &Stack[T]{
		nodes: arena.New[node[T]](),
		dropbox: hazard.NewBoxedPointer(
			hazard.WithReclaimThreshold(config.ReclaimThreshold),
			hazard.WithLogger(log),
		),
		config: config,
		logger: log,
	}
	stack.casHead = stack.head.CompareAndSwap

	return stack
}

// Insert pushes value on top of the stack. It fails with ErrContentionExceeded
// when every attempt lost the race for the head.
func (s *Stack[T]) Insert(value T) error {
	holder := hazard.NewHolder()
	defer holder.Release()

	value = duplicate(value)

	for attempt := 0; attempt < s.config.MaxAttempts; attempt++ {
		var current hazard.Pointer
		if guard, ok := holder.LoadPointer(&s.head); ok {
			current = guard.Pointer()
		}

		ptr := s.nodes.Alloc()
		item := s.nodes.Get(ptr)
		item.value = value
		item.next.Store(current)

		if s.casHead(current, ptr) {
			s.len.Add(1)
			holder.Reset()
			s.dropbox.MaybeReclaim()

			return nil
		}

		// never published, nobody else can see it
		s.nodes.Free(ptr)
	}

	s.logger.Debug().Int("attempts", s.config.MaxAttempts).Msg("Insert contention exceeded")

	return fastackErrors.ErrorContentionExceeded("insert", s.config.MaxAttempts)
}

// Delete pops the value from the top of the stack. It returns ErrEmpty when
// the stack has no elements and ErrContentionExceeded when every attempt lost
// the race for the head. Observing an empty stack does not use up an attempt.
func (s *Stack[T]) Delete() (T, error) {
	holder := hazard.NewHolder()
	defer holder.Release()

	for attempt := 0; attempt < s.config.MaxAttempts; attempt++ {
		guard, ok := holder.LoadPointer(&s.head)
		if !ok {
			return getZero[T](), ErrEmpty
		}

		current := guard.Pointer()
		next := s.nodes.Get(current).next.Load()

		if !s.casHead(current, next) {
			continue
		}

		value := duplicate(s.nodes.Get(current).value)
		s.len.Add(-1)

		var unlinked hazard.AtomicPtr
		unlinked.Store(current)

		if wrapper, ok := holder.GetWrapper(&unlinked, s.dropbox, s.nodes); ok {
			wrapper.Retire()
		}

		holder.Reset()
		s.dropbox.MaybeReclaim()

		return value, nil
	}

	s.logger.Debug().Int("attempts", s.config.MaxAttempts).Msg("Delete contention exceeded")

	return getZero[T](), fastackErrors.ErrorContentionExceeded("delete", s.config.MaxAttempts)
}

// TryReclaim frees retired nodes that are no longer protected and returns
// how many were freed.
func (s *Stack[T]) TryReclaim() int {
	return s.dropbox.TryReclaim()
}

// Len returns the number of elements in the stack.
func (s *Stack[T]) Len() int {
	return int(s.len.Load())
}

func (s *Stack[T]) IsEmpty() bool {
	return s.head.Load().IsNil()
}

// Pending returns the number of retired nodes waiting for reclamation.
func (s *Stack[T]) Pending() int {
	return s.dropbox.Pending()
}

// Close releases every node still linked in the stack and flushes pending
// reclamation. The stack must not be used concurrently with or after Close.
func (s *Stack[T]) Close() {
	var current hazard.Pointer

	for {
		current = s.head.Load()
		if s.head.CompareAndSwap(current, hazard.Nil) {
			break
		}
	}

	released := 0

	for !current.IsNil() {
		next := s.nodes.Get(current).next.Load()
		s.nodes.Free(current)
		current = next
		released++
	}

	s.len.Add(int64(-released))
	reclaimed := s.dropbox.TryReclaim()

	s.logger.Debug().
		Int("released", released).
		Int("reclaimed", reclaimed).
		Int("pending", s.dropbox.Pending()).
		Msg("Stack closed")
}
