package domain

// Source is one group of archive patterns sharing an origin.
type Source struct {
	Origin   OriginKind
	ModuleID string
	Patterns []string
}

// Config is the validated project configuration.
// All paths are absolute.
type Config struct {
	Root             string
	Variant          Variant
	CachePath        string
	OutputBase       string
	Algorithm        DigestAlgorithm
	StrictReuse      bool
	VariantOptions   VariantOptions
	ClasspathFile    string
	TransformCommand []string
	Sources          []Source
}
