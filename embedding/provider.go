package embedding

import (
	"log/slog"

	"github.com/poiesic/recall/text"
)

// Provider turns free text into fixed-length embedding vectors by averaging
// pretrained word vectors over the normalized token stream.
type Provider struct {
	vocabulary Vocabulary
	logger     *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewProvider creates an embedding provider backed by the given vocabulary.
func NewProvider(vocabulary Vocabulary, opts ...Option) (*Provider, error) {
	if vocabulary == nil {
		return nil, ErrVocabularyRequired
	}

	p := &Provider{
		vocabulary: vocabulary,
		logger:     slog.Default().With("component", "embedding-provider"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Dimensions returns the vector length produced by Embed.
func (p *Provider) Dimensions() int {
	return p.vocabulary.Dimensions()
}

// Embed normalizes text and averages the word vectors of its tokens.
// Returns an empty vector if no token resolves; callers must treat empty
// vectors as unrankable, not as an error.
func (p *Provider) Embed(content string) []float32 {
	return p.EmbedTokens(text.Normalize(content))
}

// EmbedTokens averages the word vectors of the given tokens component-wise.
// Tokens outside the vocabulary are silently skipped; every resolved
// occurrence contributes to the mean. The result is not normalized -
// comparison happens via cosine similarity, which is scale-invariant.
func (p *Provider) EmbedTokens(tokens []string) []float32 {
	if len(tokens) == 0 {
		return []float32{}
	}

	sum := make([]float32, p.vocabulary.Dimensions())
	resolved := 0
	for _, token := range tokens {
		vector, ok := p.vocabulary.Lookup(token)
		if !ok {
			continue
		}
		for i, v := range vector {
			sum[i] += v
		}
		resolved++
	}

	if resolved == 0 {
		p.logger.Debug("no tokens resolved to vectors", "tokens", len(tokens))
		return []float32{}
	}

	inv := float32(1) / float32(resolved)
	for i := range sum {
		sum[i] *= inv
	}
	return sum
}

// EmbedTexts embeds multiple texts in one call.
// The returned slice contains embeddings in the same order as the inputs;
// unembeddable texts yield empty vectors.
func (p *Provider) EmbedTexts(contents []string) [][]float32 {
	vectors := make([][]float32, len(contents))
	for i, content := range contents {
		vectors[i] = p.Embed(content)
	}
	return vectors
}
