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


package mock

import "github.com/poiesic/recall/ai"

// MockProvider is a test double for ai.AIProvider.
// It aggregates mock router, synthesizer, and classifier instances.
type MockProvider struct {
	router     *MockRouter
	synth      *MockSynthesizer
	classifier *MockEmotionClassifier
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.AIProvider interface for consistency with production constructors.
// Use GetMockRouter()/GetMockSynthesizer()/GetMockClassifier() to access
// concrete types for test assertions.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		router:     NewMockRouter(),
		synth:      NewMockSynthesizer(),
		classifier: NewMockEmotionClassifier(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(router *MockRouter, synth *MockSynthesizer, classifier *MockEmotionClassifier) ai.AIProvider {
	return &MockProvider{
		router:     router,
		synth:      synth,
		classifier: classifier,
	}
}

// Router returns the mock router.
func (p *MockProvider) Router() ai.Router {
	return p.router
}

// Synthesizer returns the mock synthesizer.
func (p *MockProvider) Synthesizer() ai.Synthesizer {
	return p.synth
}

// EmotionClassifier returns the mock emotion classifier.
func (p *MockProvider) EmotionClassifier() ai.EmotionClassifier {
	return p.classifier
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockRouter returns the underlying mock router for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockRouter() *MockRouter {
	return p.router
}

// GetMockSynthesizer returns the underlying mock synthesizer for test assertions.
func (p *MockProvider) GetMockSynthesizer() *MockSynthesizer {
	return p.synth
}

// GetMockClassifier returns the underlying mock emotion classifier for test assertions.
func (p *MockProvider) GetMockClassifier() *MockEmotionClassifier {
	return p.classifier
}
