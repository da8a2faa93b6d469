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

// Package arena provides slot storage addressed by stable hazard.Pointer
// handles. Freed slots are recycled, which is what makes hazard pointers
// necessary for structures built on top of it.
package arena

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/pawelgaczynski/fastack/pkg/hazard"
)

const (
	chunkBits = 10
	chunkSize = 1 << chunkBits
	chunkMask = chunkSize - 1

	// MaxSlots is the number of slots a single arena can address.
	MaxSlots = 1 << 31

	endOfList = 0
)

var lastArenaID atomic.Uint32

type slot[T any] struct {
	value T
	// next links free slots, it holds index+1 of the following free slot.
	next atomic.Uint32
}

type chunk[T any] [chunkSize]slot[T]

// Arena is a lock-free allocator of T values. Allocation and release never
// block, growing the arena takes a short lock once per chunk.
type Arena[T any] struct {
	id uint64

	// free is the head of the free list tagged with a stamp in its upper
	// 32 bits, the stamp changes on every update to rule out ABA.
	free atomic.Uint64
	_    [56]byte
	top  atomic.Uint32
	live atomic.Int64

	growMu sync.Mutex
	chunks atomic.Pointer[[]*chunk[T]]
}

func New[T any]() *Arena[T] {
	a := &Arena[T]{
		id: uint64(lastArenaID.Add(1)),
	}
	dir := make([]*chunk[T], 0)
	a.chunks.Store(&dir)

	return a
}

// ID returns the identifier encoded in the upper half of every handle.
func (a *Arena[T]) ID() uint32 {
	return uint32(a.id)
}

// Alloc returns a handle to a zeroed slot.
func (a *Arena[T]) Alloc() hazard.Pointer {
	for {
		tag := a.free.Load()
		head := uint32(tag)

		if head == endOfList {
			break
		}

		next := a.slot(head - 1).next.Load()
		if a.free.CompareAndSwap(tag, stamp(tag)|uint64(next)) {
			a.live.Add(1)

			return a.pointer(head - 1)
		}
	}

	index := a.top.Add(1) - 1
	if index >= MaxSlots {
		panic(fmt.Sprintf("arena %d: exhausted %d slots", a.id, MaxSlots))
	}

	a.grow(index)
	a.live.Add(1)

	return a.pointer(index)
}

// Get returns the value stored in the slot behind p.
func (a *Arena[T]) Get(p hazard.Pointer) *T {
	return &a.slot(a.index(p)).value
}

// Free zeroes the slot behind p and puts it back on the free list. The
// caller guarantees that nobody can reach p anymore.
func (a *Arena[T]) Free(p hazard.Pointer) {
	index := a.index(p)
	s := a.slot(index)

	var zero T
	s.value = zero

	for {
		tag := a.free.Load()
		s.next.Store(uint32(tag))

		if a.free.CompareAndSwap(tag, stamp(tag)|uint64(index+1)) {
			a.live.Add(-1)

			return
		}
	}
}

// Do implements hazard.Doer, so retired slots can be freed by a registry.
func (a *Arena[T]) Do(p hazard.Pointer) {
	a.Free(p)
}

// Len returns the number of allocated slots.
func (a *Arena[T]) Len() int {
	return int(a.live.Load())
}

// Cap returns the number of slots backed by memory.
func (a *Arena[T]) Cap() int {
	return len(*a.chunks.Load()) * chunkSize
}

func (a *Arena[T]) pointer(index uint32) hazard.Pointer {
	return hazard.Pointer(a.id<<32 | uint64(index+1))
}

func (a *Arena[T]) index(p hazard.Pointer) uint32 {
	if uint64(p)>>32 != a.id || uint32(p) == 0 {
		panic(fmt.Sprintf("arena %d: foreign or nil pointer %#x", a.id, uint64(p)))
	}

	return uint32(p) - 1
}

func (a *Arena[T]) slot(index uint32) *slot[T] {
	dir := *a.chunks.Load()

	return &dir[index>>chunkBits][index&chunkMask]
}

func (a *Arena[T]) grow(index uint32) {
	want := int(index>>chunkBits) + 1
	if len(*a.chunks.Load()) >= want {
		return
	}

	a.growMu.Lock()
	defer a.growMu.Unlock()

	old := *a.chunks.Load()
	if len(old) >= want {
		return
	}

	dir := make([]*chunk[T], want)
	copy(dir, old)

	for i := len(old); i < want; i++ {
		dir[i] = new(chunk[T])
	}

	a.chunks.Store(&dir)
}

func stamp(tag uint64) uint64 {
	return (tag>>32 + 1) << 32
}
