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


// Package search runs natural-language queries over stored notes.
//
// Three interchangeable strategies select the candidate pool:
//   - LexicalStrategy: normalized token matching, no model calls
//   - EmbeddingStrategy: cosine-similarity ranking over note vectors
//   - ModelRoutedStrategy: similarity ranking combined with model-based
//     category routing and keyword filtering
//
// The Searcher wraps a strategy with snapshot reads and answer
// synthesis. QuerySession adds the interactive layer: debounced query
// submission and stale-result suppression keyed by a generation
// counter.
//
// Failure policy: external model failures degrade the result (empty
// routed pool, empty answer) at their own stage and never cross the
// Search boundary as errors.
package search
