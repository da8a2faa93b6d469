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
	"testing"

	"github.com/alitto/pond"
	"github.com/pawelgaczynski/fastack/pkg/hazard"
	. "github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := NewIntQueue()
	defer q.Close()

	True(t, q.IsEmpty())

	for i := 0; i < 100; i++ {
		q.Enqueue(i)
	}

	Equal(t, int32(100), q.Size())

	for i := 0; i < 100; i++ {
		value, ok := q.Dequeue()
		True(t, ok)
		Equal(t, i, value)
	}

	value, ok := q.Dequeue()
	False(t, ok)
	Equal(t, 0, value)
	True(t, q.IsEmpty())
}

func TestQueueRecyclesNodes(t *testing.T) {
	q := NewQueue[string](hazard.WithReclaimThreshold(0)).(*msQueue[string])
	defer q.Close()

	for round := 0; round < 10; round++ {
		for i := 0; i < 50; i++ {
			q.Enqueue("value")
		}

		for i := 0; i < 50; i++ {
			_, ok := q.Dequeue()
			True(t, ok)
		}
	}

	Equal(t, 0, q.dropbox.Pending())
	Equal(t, 1, q.nodes.Len())
	LessOrEqual(t, q.nodes.Cap(), 1024)
}

func TestQueueClose(t *testing.T) {
	q := NewQueue[int](hazard.WithReclaimThreshold(1 << 20)).(*msQueue[int])

	for i := 0; i < 10; i++ {
		q.Enqueue(i)
	}

	for i := 0; i < 3; i++ {
		_, ok := q.Dequeue()
		True(t, ok)
	}

	Equal(t, 3, q.dropbox.Pending())

	q.Close()

	Equal(t, 0, q.dropbox.Pending())
	Equal(t, 0, q.nodes.Len())
	Equal(t, int32(0), q.Size())
}

func TestQueueConcurrentConservation(t *testing.T) {
	const (
		producers = 4
		consumers = 4
		perWorker = 20000
	)

	var (
		q        = NewIntQueue(hazard.WithReclaimThreshold(0))
		pool     = pond.New(producers+consumers, producers+consumers)
		consumed = make([][]int, consumers)
	)

	for p := 0; p < producers; p++ {
		producer := p

		pool.Submit(func() {
			for i := 0; i < perWorker; i++ {
				q.Enqueue(producer*perWorker + i)
			}
		})
	}

	for c := 0; c < consumers; c++ {
		consumer := c

		pool.Submit(func() {
			last := make(map[int]int)

			for i := 0; i < perWorker; i++ {
				value, ok := q.Dequeue()
				if !ok {
					continue
				}

				producer := value / perWorker
				if previous, seen := last[producer]; seen && previous >= value {
					panic("values of a single producer dequeued out of order")
				}
				last[producer] = value

				consumed[consumer] = append(consumed[consumer], value)
			}
		})
	}

	pool.StopAndWait()

	seen := make([]int, producers*perWorker)

	for _, values := range consumed {
		for _, value := range values {
			seen[value]++
		}
	}

	for {
		value, ok := q.Dequeue()
		if !ok {
			break
		}
		seen[value]++
	}

	for value, count := range seen {
		Equal(t, 1, count, "value %d", value)
	}

	q.Close()
}
