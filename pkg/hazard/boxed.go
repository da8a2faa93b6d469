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

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

const defaultReclaimThreshold = 64

type retired struct {
	ptr  Pointer
	doer Doer
	next *retired
}

type Option func(*BoxedPointer)

// WithReclaimThreshold sets the number of pending entries that triggers an
// opportunistic sweep in MaybeReclaim. Zero sweeps on every call.
func WithReclaimThreshold(threshold int) Option {
	return func(b *BoxedPointer) {
		if threshold < 0 {
			threshold = 0
		}
		b.threshold = int64(threshold)
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(b *BoxedPointer) {
		b.logger = logger
	}
}

// BoxedPointer is a retirement registry. Retired pointers are kept on a
// pending list until a sweep proves no hazard protects them.
type BoxedPointer struct {
	head      atomic.Pointer[retired]
	pending   atomic.Int64
	threshold int64
	logger    zerolog.Logger
}

func NewBoxedPointer(opts ...Option) *BoxedPointer {
	b := &BoxedPointer{
		threshold: defaultReclaimThreshold,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Retire queues p for deferred destruction by doer. It never frees memory
// and never blocks.
func (b *BoxedPointer) Retire(p Pointer, doer Doer) {
	if p.IsNil() {
		return
	}

	entry := &retired{ptr: p, doer: doer}
	b.pending.Add(1)
	b.push(entry, entry)
}

func (b *BoxedPointer) push(first, last *retired) {
	for {
		head := b.head.Load()
		last.next = head

		if b.head.CompareAndSwap(head, first) {
			return
		}
	}
}

// TryReclaim frees every pending entry that is not protected by a published
// hazard and returns the number of freed entries. The pending list is
// detached as a whole before hazards are scanned, so concurrent sweeps never
// see the same entry. Protected entries are put back for a later sweep.
func (b *BoxedPointer) TryReclaim() int {
	list := b.head.Swap(nil)
	if list == nil {
		return 0
	}

	hazards := slots.snapshot()

	var (
		keepFirst, keepLast *retired
		freed, kept         int
	)

	for entry := list; entry != nil; {
		next := entry.next

		if hazards.contains(entry.ptr) {
			entry.next = keepFirst
			if keepFirst == nil {
				keepLast = entry
			}
			keepFirst = entry
			kept++
		} else {
			entry.doer.Do(entry.ptr)
			freed++
		}

		entry = next
	}

	b.pending.Add(int64(-freed))

	if keepFirst != nil {
		b.push(keepFirst, keepLast)
	}

	b.logger.Trace().Int("freed", freed).Int("kept", kept).Int("hazards", len(hazards)).Msg("Reclaim sweep")

	return freed
}

// MaybeReclaim sweeps only when the pending list reached the threshold.
func (b *BoxedPointer) MaybeReclaim() int {
	if b.pending.Load() < b.threshold {
		return 0
	}

	return b.TryReclaim()
}

// Pending returns the number of retired entries not freed yet.
func (b *BoxedPointer) Pending() int {
	return int(b.pending.Load())
}
