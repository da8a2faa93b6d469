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

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrIsEmpty indicates that there is no element to remove.
	ErrIsEmpty = errors.New("is empty")
	// ErrContentionExceeded occurs when an operation lost the compare-and-swap race
	// more times than its retry budget allows. The whole operation can be retried.
	ErrContentionExceeded = errors.New("contention exceeded")
)

func ErrorContentionExceeded(op string, attempts int) error {
	return fmt.Errorf("%w, op: %s, attempts: %d", ErrContentionExceeded, op, attempts)
}
