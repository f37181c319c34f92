package ports

import (
	"context"

	"go.trai.ch/aarcache/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=transformer.go -destination=mocks/mock_transformer.go -package=mocks

// Transformer explodes an archive into a directory under outputBase.
type Transformer interface {
	Transform(ctx context.Context, aarPath, outputBase string, opts domain.VariantOptions) (*domain.TransformResult, error)
}

// TransformerProvider selects the Transformer for a run.
type TransformerProvider interface {
	// Transformer returns an external command transformer when command is non-empty,
	// and the builtin extractor otherwise.
	Transformer(command []string) Transformer
}
