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
	"errors"
	"sync/atomic"
)

// KeyPool hands out unique uint64 keys and recycles released ones in LIFO
// order, so recently released keys are reused first.
type KeyPool struct {
	stack   *Stack[uint64]
	nextKey atomic.Uint64
}

func NewKeyPool(firstKey uint64, opts ...ConfigOption) *KeyPool {
	pool := &KeyPool{
		stack: NewStack[uint64](opts...),
	}
	pool.nextKey.Store(firstKey)

	return pool
}

// Get returns a recycled key or mints a new one. A pop that lost to
// contention falls back to minting, no key is ever handed out twice.
func (p *KeyPool) Get() uint64 {
	key, err := p.stack.Delete()
	if err == nil {
		return key
	}

	return p.nextKey.Add(1) - 1
}

// Put returns key to the pool. Contention only delays Put, the key is never
// dropped.
func (p *KeyPool) Put(key uint64) {
	for {
		err := p.stack.Insert(key)
		if !errors.Is(err, ErrContentionExceeded) {
			return
		}
	}
}

// Idle returns the number of released keys waiting for reuse.
func (p *KeyPool) Idle() int {
	return p.stack.Len()
}

func (p *KeyPool) Close() {
	p.stack.Close()
}
