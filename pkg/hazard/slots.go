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
	"sort"
	"sync/atomic"
)

// slot is a single hazard publication. Slots are linked into the table once
// and never unlinked, an idle slot is only marked inactive and reused later.
type slot struct {
	hazard AtomicPtr
	active atomic.Bool
	// next is written before the slot is published and never changes after.
	next *slot
}

type slotTable struct {
	head  atomic.Pointer[slot]
	slots atomic.Int64
}

// slots is the process wide hazard table shared by every Holder.
var slots slotTable

func (t *slotTable) acquire() *slot {
	for s := t.head.Load(); s != nil; s = s.next {
		if !s.active.Load() && s.active.CompareAndSwap(false, true) {
			return s
		}
	}

	s := &slot{}
	s.active.Store(true)

	for {
		head := t.head.Load()
		s.next = head

		if t.head.CompareAndSwap(head, s) {
			t.slots.Add(1)

			return s
		}
	}
}

func (t *slotTable) release(s *slot) {
	s.hazard.Store(Nil)
	s.active.Store(false)
}

// snapshot returns the sorted set of currently published hazards.
func (t *slotTable) snapshot() hazardSet {
	set := make(hazardSet, 0, t.slots.Load())

	for s := t.head.Load(); s != nil; s = s.next {
		if p := s.hazard.Load(); !p.IsNil() {
			set = append(set, p)
		}
	}

	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })

	return set
}

type hazardSet []Pointer

func (s hazardSet) contains(p Pointer) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= p })

	return i < len(s) && s[i] == p
}

// Slots returns the number of hazard slots allocated so far.
func Slots() int {
	return int(slots.slots.Load())
}

// Published returns the number of hazards currently published.
func Published() int {
	return len(slots.snapshot())
}
