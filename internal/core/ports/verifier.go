package ports

// Verifier checks that previously produced outputs still exist.
//
//go:generate go run go.uber.org/mock/mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type Verifier interface {
	// DirExists reports whether path exists and is a directory.
	DirExists(path string) (bool, error)

	// FilesExist reports whether every path exists.
	FilesExist(paths []string) (bool, error)
}
