package ports

// InputResolver expands input patterns into concrete file paths.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type InputResolver interface {
	// ResolveInputs resolves the patterns relative to root into a sorted, de-duplicated list of absolute paths.
	ResolveInputs(patterns []string, root string) ([]string, error)
}
