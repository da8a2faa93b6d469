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
	"container/list"
	"fmt"
	"sync"
	"testing"
)

func mutexList(goroutines int) {
	var (
		mu sync.Mutex
		l  = list.New()
		wg sync.WaitGroup
	)

	for i := 0; i < goroutines; i++ {
		wg.Add(2)

		go func(i int) {
			defer wg.Done()
			mu.Lock()
			l.PushFront(i)
			mu.Unlock()
		}(i)

		go func() {
			defer wg.Done()
			mu.Lock()
			if front := l.Front(); front != nil {
				l.Remove(front)
			}
			mu.Unlock()
		}()
	}

	wg.Wait()
}

func lockFreeStack(goroutines int) {
	var (
		stack = NewStack[int]()
		wg    sync.WaitGroup
	)

	for i := 0; i < goroutines; i++ {
		wg.Add(2)

		go func(i int) {
			defer wg.Done()
			_ = stack.Insert(i)
		}(i)

		go func() {
			defer wg.Done()
			_, _ = stack.Delete()
		}()
	}

	wg.Wait()
	stack.Close()
}

func BenchmarkStackVsMutexList(b *testing.B) {
	for _, goroutines := range []int{10, 50, 150} {
		b.Run(fmt.Sprintf("Std.%d", goroutines), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				mutexList(goroutines)
			}
		})
		b.Run(fmt.Sprintf("Fastack.%d", goroutines), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				lockFreeStack(goroutines)
			}
		})
	}
}

func BenchmarkStack(b *testing.B) {
	b.Run("Run.N", func(b *testing.B) {
		stack := NewStack[int]()
		defer stack.Close()

		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = stack.Insert(i)
			_, _ = stack.Delete()
		}
	})
	b.Run("Run.Parallel", func(b *testing.B) {
		stack := NewStack[int]()
		defer stack.Close()

		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			i := 0
			for pb.Next() {
				_ = stack.Insert(i)
				_, _ = stack.Delete()
				i++
			}
		})
	})
}
