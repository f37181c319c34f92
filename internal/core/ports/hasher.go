package ports

import "go.trai.ch/aarcache/internal/core/domain"

// Hasher computes content digests of archive inputs.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Digest streams the file at path through the given algorithm and returns the lowercase hex digest.
	Digest(path string, algorithm domain.DigestAlgorithm) (string, error)
}
