// Copyright 2025 Poiesic Systems
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


package storage

import "errors"

var (
	// ErrSourceNotFound indicates that the backing file for a domain
	// does not exist.
	ErrSourceNotFound = errors.New("source file not found")

	// ErrMalformedSource indicates a backing file that could not be
	// parsed as CSV.
	ErrMalformedSource = errors.New("malformed source file")
)
