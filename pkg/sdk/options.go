package providerfinder

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs     []string
	username  string
	password  string
	keyPrefix string

	extractor         Extractor
	openaiKey         string
	openaiBaseURL     string
	model             string
	maxRetries        int
	fallbackSpecialty string
	strictSpecialties bool

	noNormalize bool

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithUsername sets the database ACL username.
func WithUsername(username string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
	})
}

// WithKeyPrefix namespaces every key and index, e.g. "pf:".
// Must match the prefix the directory was seeded with.
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithOpenAI enables extraction through an OpenAI-compatible API.
func WithOpenAI(apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.openaiKey = apiKey
	})
}

// WithBaseURL points the OpenAI client at a compatible endpoint.
func WithBaseURL(url string) Option {
	return optionFunc(func(c *clientConfig) {
		c.openaiBaseURL = url
	})
}

// WithModel sets the extraction model. Default: gpt-4o-mini.
func WithModel(model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.model = model
	})
}

// WithExtractor plugs a custom extraction provider in place of the
// built-in OpenAI client.
func WithExtractor(e Extractor) Option {
	return optionFunc(func(c *clientConfig) {
		c.extractor = e
	})
}

// WithMaxRetries sets the extra extraction attempts after the first.
// Default: 2.
func WithMaxRetries(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxRetries = n
	})
}

// WithFallbackSpecialty sets the specialty suggested for vague but
// clearly medical requests. Default: "Family practice".
func WithFallbackSpecialty(s string) Option {
	return optionFunc(func(c *clientConfig) {
		c.fallbackSpecialty = s
	})
}

// WithStrictSpecialties makes parsing fail on specialties outside the
// catalog instead of keeping them with low confidence.
func WithStrictSpecialties() Option {
	return optionFunc(func(c *clientConfig) {
		c.strictSpecialties = true
	})
}

// WithoutNormalization keeps raw match scores instead of rescaling the
// top provider to 100.
func WithoutNormalization() Option {
	return optionFunc(func(c *clientConfig) {
		c.noNormalize = true
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
