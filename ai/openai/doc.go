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


// Package openai implements the ai service interfaces against
// OpenAI-compatible chat APIs (Ollama, LocalAI, vLLM, OpenAI).
//
// Routing uses JSON mode with up to three parse attempts and lightweight
// repair of common model formatting mistakes. Every call is bounded by the
// configured timeout; the network call itself is never retried - a failed
// call surfaces as an error for the caller to degrade on.
package openai
