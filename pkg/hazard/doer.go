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

// Doer destroys the object behind a retired Pointer and releases its storage.
// It lets a single registry hold retired objects of unrelated types.
type Doer interface {
	Do(p Pointer)
}

// DoerFunc adapts a plain function to the Doer interface.
type DoerFunc func(p Pointer)

func (f DoerFunc) Do(p Pointer) {
	f(p)
}
