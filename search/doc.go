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


// Package search provides lexical BM25 ranking over the knowledge base.
//
// The Searcher type resolves a query to a domain (explicitly or via
// keyword detection), loads that domain's rows, builds a call-scoped
// BM25 index over the domain's search columns, and returns the
// positively scoring rows projected to the domain's output columns.
//
// Nothing survives a call: the index is rebuilt from the backing file
// every time, so hand edits to the knowledge base are always visible.
package search
