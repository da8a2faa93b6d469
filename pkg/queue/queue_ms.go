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

package queue

import (
	"sync/atomic"

	"github.com/pawelgaczynski/fastack/pkg/arena"
	"github.com/pawelgaczynski/fastack/pkg/hazard"
)

type LockFreeQueue[T any] interface {
	Enqueue(T)
	Dequeue() (T, bool)
	IsEmpty() bool
	Size() int32
	// Close releases all nodes. The queue must not be used after Close.
	Close()
}

// msQueue is a Michael-Scott queue. head always points to a dummy node, the
// first element lives in the dummy's successor. Dequeued dummies are retired
// and recycled once no hazard protects them.
type msQueue[T any] struct {
	head      hazard.AtomicPtr
	_         [56]byte
	tail      hazard.AtomicPtr
	_         [56]byte
	queueSize atomic.Int32

	nodes   *arena.Arena[node[T]]
	dropbox *hazard.BoxedPointer
}

type node[T any] struct {
	value T
	next  hazard.AtomicPtr
}

func NewQueue[T any](opts ...hazard.Option) LockFreeQueue[T] {
	q := &msQueue[T]{
		nodes:   arena.New[node[T]](),
		dropbox: hazard.NewBoxedPointer(opts...),
	}
	dummy := q.nodes.Alloc()
	q.head.Store(dummy)
	q.tail.Store(dummy)

	return q
}

func NewIntQueue(opts ...hazard.Option) LockFreeQueue[int] {
	return NewQueue[int](opts...)
}

func (q *msQueue[T]) Enqueue(value T) {
	holder := hazard.NewHolder()
	defer holder.Release()

	ptr := q.nodes.Alloc()
	q.nodes.Get(ptr).value = value

	for {
		guard, _ := holder.LoadPointer(&q.tail)
		tail := guard.Pointer()
		next := q.nodes.Get(tail).next.Load()

		if tail != q.tail.Load() {
			continue
		}

		if next.IsNil() {
			if q.nodes.Get(tail).next.CompareAndSwap(hazard.Nil, ptr) {
				q.tail.CompareAndSwap(tail, ptr)
				q.queueSize.Add(1)

				return
			}
		} else {
			q.tail.CompareAndSwap(tail, next)
		}
	}
}

func (q *msQueue[T]) Dequeue() (T, bool) {
	headHolder := hazard.NewHolder()
	defer headHolder.Release()

	nextHolder := hazard.NewHolder()
	defer nextHolder.Release()

	for {
		guard, _ := headHolder.LoadPointer(&q.head)
		head := guard.Pointer()
		tail := q.tail.Load()
		nextGuard, ok := nextHolder.LoadPointer(&q.nodes.Get(head).next)

		// next is only safe while head is still the dummy
		if head != q.head.Load() {
			continue
		}

		if !ok {
			return getZero[T](), false
		}

		next := nextGuard.Pointer()

		if head == tail {
			q.tail.CompareAndSwap(tail, next)

			continue
		}

		value := q.nodes.Get(next).value
		if q.head.CompareAndSwap(head, next) {
			q.queueSize.Add(-1)
			q.dropbox.Retire(head, q.nodes)

			headHolder.Reset()
			nextHolder.Reset()
			q.dropbox.MaybeReclaim()

			return value, true
		}
	}
}

func (q *msQueue[T]) IsEmpty() bool {
	return q.queueSize.Load() == 0
}

func (q *msQueue[T]) Size() int32 {
	return q.queueSize.Load()
}

func (q *msQueue[T]) Close() {
	current := q.head.Swap(hazard.Nil)
	q.tail.Store(hazard.Nil)

	for !current.IsNil() {
		next := q.nodes.Get(current).next.Load()
		q.nodes.Free(current)
		current = next
	}

	q.queueSize.Store(0)
	q.dropbox.TryReclaim()
}

func getZero[T any]() T {
	var result T

	return result
}
