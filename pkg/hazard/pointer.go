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

package hazard

import "sync/atomic"

// Pointer is an opaque address of a reclaimable object. Pointers are unique
// across all allocators for the lifetime of the process, so a hazard published
// for one structure never matches an object owned by another one.
type Pointer uint64

// Nil is the zero Pointer.
const Nil Pointer = 0

func (p Pointer) IsNil() bool {
	return p == Nil
}

// AtomicPtr is an atomically accessed Pointer. All operations are
// sequentially consistent.
type AtomicPtr struct {
	v atomic.Uint64
}

func NewAtomicPtr(p Pointer) *AtomicPtr {
	a := &AtomicPtr{}
	a.v.Store(uint64(p))

	return a
}

func (a *AtomicPtr) Load() Pointer {
	return Pointer(a.v.Load())
}

func (a *AtomicPtr) Store(p Pointer) {
	a.v.Store(uint64(p))
}

func (a *AtomicPtr) Swap(p Pointer) Pointer {
	return Pointer(a.v.Swap(uint64(p)))
}

func (a *AtomicPtr) CompareAndSwap(old, new Pointer) bool {
	return a.v.CompareAndSwap(uint64(old), uint64(new))
}
