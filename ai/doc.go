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


// Package ai provides abstractions for the language-model services used in
// Recall.
//
// The external language model is an untrusted, asynchronous, fallible
// collaborator: calls may fail, time out, or return malformed output. This
// package defines the narrow interfaces the rest of the system depends on
// and leaves failure recovery to the callers, which always degrade to a
// partial result rather than surface a hard error.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Router: Picks the best category for a query and extracts keywords
//   - Synthesizer: Composes a one-sentence answer from ranked notes
//   - EmotionClassifier: Tags a note with an inferred emotion
//   - AIProvider: Aggregates the services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewRouter, etc.) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations. This is essential for dependency injection and
// supporting multiple implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.AIProvider
//
// Test utility constructors (mock.NewMockRouter, mock.NewMockSynthesizer)
// return CONCRETE types to enable test assertions and behavior injection via
// the mock's public fields (RouteQueryFunc, CallCount, Reset, etc.).
//
// # Usage Example
//
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	routing, err := provider.Router().RouteQuery(ctx, "which animal is best", []string{"Pets", "Work"})
//	answer, err := provider.Synthesizer().Synthesize(ctx, "which animal is best", noteContents)
//
//	// Testing usage with mocks
//	mockProvider := mock.NewMockProvider()
//	routing, err := mockProvider.Router().RouteQuery(ctx, "query", categories)
package ai
