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

package sync

import (
	"sync"
	"sync/atomic"
)

// Pool is a typed wrapper over sync.Pool. Objects put into the pool may be
// dropped by the garbage collector at any time, so it must only hold values
// that own no resources outside the Go heap.
type Pool[T any] interface {
	Get() T
	Put(T)
	// Idle returns an approximate number of values put and not yet taken.
	Idle() int64
}

type pool[T any] struct {
	internalPool sync.Pool
	ctor         func() T
	count        atomic.Int64
}

func getZero[T any]() T {
	var result T

	return result
}

func (p *pool[T]) Get() T {
	val, ok := p.internalPool.Get().(T)
	if !ok {
		if p.ctor != nil {
			return p.ctor()
		}

		return getZero[T]()
	}

	p.count.Add(-1)

	return val
}

func (p *pool[T]) Put(value T) {
	p.internalPool.Put(value)
	p.count.Add(1)
}

func (p *pool[T]) Idle() int64 {
	if n := p.count.Load(); n > 0 {
		return n
	}

	return 0
}

// NewPool creates a pool returning the zero value of T when empty.
func NewPool[T any]() Pool[T] {
	return &pool[T]{}
}

// NewPoolWithCtor creates a pool that calls ctor when empty.
func NewPoolWithCtor[T any](ctor func() T) Pool[T] {
	return &pool[T]{ctor: ctor}
}
