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


// Package storage defines the row-source abstraction over the
// knowledge-base files.
//
// Sources are deliberately uncached: every Load re-reads the backing
// file, so edits to a hand-maintained CSV are visible on the very next
// search call. Concrete backends live in subpackages (see csvfile).
package storage
