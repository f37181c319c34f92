package shell

import (
	"go.trai.ch/aarcache/internal/core/ports"
)

// Provider implements ports.TransformerProvider.
type Provider struct {
	builtin ports.Transformer
	logger  ports.Logger
}

// NewProvider creates a Provider that falls back to builtin when no command is configured.
func NewProvider(builtin ports.Transformer, logger ports.Logger) *Provider {
	return &Provider{builtin: builtin, logger: logger}
}

// Transformer returns a CommandTransformer for a non-empty command, else the builtin transformer.
func (p *Provider) Transformer(command []string) ports.Transformer {
	if len(command) == 0 {
		return p.builtin
	}
	return NewCommandTransformer(command, p.logger)
}
