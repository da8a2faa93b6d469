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

// Package hazard implements hazard pointers. A Holder publishes the Pointer it
// is about to dereference in a process wide slot table, a BoxedPointer keeps
// retired Pointers until a sweep finds no slot publishing them.
//
// Publication and the sweep snapshot use sequentially consistent atomics, so
// a hazard published and validated before a sweep takes its snapshot is always
// seen by that sweep.
package hazard

import (
	"github.com/pawelgaczynski/fastack/pkg/pool/sync"
)

var holderPool = sync.NewPoolWithCtor(func() *Holder {
	return &Holder{}
})

// Holder is a per operation hazard guard. It owns a single hazard slot and
// publishes at most one Pointer at a time. A Holder must be released with
// Release, usually deferred right after NewHolder, and must not be used
// after that.
type Holder struct {
	slot *slot
}

// Guard is the Pointer protected by a Holder. It stays valid until the
// Holder loads another Pointer, is reset or released.
type Guard struct {
	ptr Pointer
}

func (g Guard) Pointer() Pointer {
	return g.ptr
}

// Wrapper binds a protected Pointer to the registry that will retire it.
type Wrapper struct {
	ptr  Pointer
	reg  *BoxedPointer
	doer Doer
}

func (w *Wrapper) Pointer() Pointer {
	return w.ptr
}

// Retire hands the wrapped Pointer over to its registry. The caller must
// have unlinked the object from every shared location beforehand.
func (w *Wrapper) Retire() {
	w.reg.Retire(w.ptr, w.doer)
}

func NewHolder() *Holder {
	h := holderPool.Get()
	h.slot = slots.acquire()

	return h
}

// LoadPointer protects the current value of src. The value is published
// first and then src is read again, publication is repeated until both reads
// agree. Once LoadPointer returns, the Pointer is not reclaimed until the
// Holder drops it. For a nil value the publication is cleared and ok is false.
func (h *Holder) LoadPointer(src *AtomicPtr) (Guard, bool) {
	ptr := src.Load()

	for {
		if ptr.IsNil() {
			h.slot.hazard.Store(Nil)

			return Guard{}, false
		}

		h.slot.hazard.Store(ptr)

		current := src.Load()
		if current == ptr {
			return Guard{ptr: ptr}, true
		}

		ptr = current
	}
}

// GetWrapper protects the current value of src and binds it to reg and doer
// so it can be retired.
func (h *Holder) GetWrapper(src *AtomicPtr, reg *BoxedPointer, doer Doer) (*Wrapper, bool) {
	guard, ok := h.LoadPointer(src)
	if !ok {
		return nil, false
	}

	return &Wrapper{ptr: guard.Pointer(), reg: reg, doer: doer}, true
}

// Reset drops the current publication but keeps the slot.
func (h *Holder) Reset() {
	h.slot.hazard.Store(Nil)
}

func (h *Holder) Release() {
	if h.slot == nil {
		return
	}

	slots.release(h.slot)
	h.slot = nil
	holderPool.Put(h)
}
