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


package registry

import "errors"

var (
	// ErrUnknownLocale is returned when a locale lookup does not match
	// any registered locale.
	ErrUnknownLocale = errors.New("unknown locale")

	// ErrEmptyRegistry indicates a manifest that declares no domains.
	ErrEmptyRegistry = errors.New("registry declares no domains")

	// ErrInvalidDescriptor indicates a manifest entry that failed validation.
	ErrInvalidDescriptor = errors.New("invalid descriptor")

	// ErrUnknownDefault indicates a manifest whose default domain is not declared.
	ErrUnknownDefault = errors.New("default domain not declared")

	// ErrDuplicateDomain indicates a manifest declaring the same domain twice.
	ErrDuplicateDomain = errors.New("duplicate domain")
)
