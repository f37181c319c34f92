package config

// ConfigVersion is the only configuration format version understood by this build.
const ConfigVersion = "1"

// Configfile represents the structure of the aarcache.yaml configuration file.
// The same structure is decoded from aarcache.json and aarcache.jsonc.
type Configfile struct {
	Version                  string       `yaml:"version" json:"version"`
	Variant                  string       `yaml:"variant" json:"variant"`
	CacheFile                string       `yaml:"cacheFile" json:"cacheFile"`
	OutputBase               string       `yaml:"outputBase" json:"outputBase"`
	HashAlgorithm            string       `yaml:"hashAlgorithm" json:"hashAlgorithm"`
	StrictReuse              bool         `yaml:"strictReuse" json:"strictReuse"`
	AssetsDestination        string       `yaml:"assetsDestination" json:"assetsDestination"`
	SharedLibraryDestination string       `yaml:"sharedLibraryDestination" json:"sharedLibraryDestination"`
	ClasspathFile            string       `yaml:"classpathFile" json:"classpathFile"`
	Transform                TransformDTO `yaml:"transform" json:"transform"`
	Sources                  []SourceDTO  `yaml:"sources" json:"sources"`
}

// TransformDTO configures an external transform command.
type TransformDTO struct {
	Command []string `yaml:"command" json:"command"`
}

// SourceDTO represents one group of archive patterns in the configuration.
type SourceDTO struct {
	Origin string   `yaml:"origin" json:"origin"`
	Module string   `yaml:"module" json:"module"`
	Paths  []string `yaml:"paths" json:"paths"`
}
