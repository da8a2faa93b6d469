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
	fastackErrors "github.com/pawelgaczynski/fastack/pkg/errors"
)

var (
	// ErrEmpty is returned by Delete when the stack has no elements.
	ErrEmpty = fastackErrors.ErrIsEmpty
	// ErrContentionExceeded is returned when the retry budget of an operation
	// is exhausted. Check it with errors.Is, the returned error is wrapped.
	ErrContentionExceeded = fastackErrors.ErrContentionExceeded
)
