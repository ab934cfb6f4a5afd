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


package search

import "errors"

var (
	// ErrRegistryRequired is returned when a domain registry is not provided.
	ErrRegistryRequired = errors.New("domain registry required")

	// ErrSourceRequired is returned when a row source is not provided.
	ErrSourceRequired = errors.New("row source required")

	// ErrLocalesRequired is returned by SearchLocale when the searcher
	// was built without a locale registry.
	ErrLocalesRequired = errors.New("locale registry required")
)
