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


// Package registry declares the domain partitions of the knowledge base.
//
// A Registry is an immutable, ordered table of Descriptors, one per
// checklist domain (or, for the locale variant, one per supported
// locale). Each Descriptor names the backing CSV file, the columns
// that feed the search index, the columns projected into results, and
// the keyword set used to auto-detect the domain from free text.
//
// Registries are declared in YAML manifests compiled into the binary;
// the declaration order is the iteration order, which makes detector
// tie-breaks reproducible: the first domain with the maximal keyword
// score wins.
package registry
