package domain

// DigestAlgorithm names a content hash used to key cache entries.
type DigestAlgorithm string

const (
	// DigestSHA256 is the default algorithm.
	DigestSHA256 DigestAlgorithm = "sha256"
	// DigestSHA384 selects SHA-384.
	DigestSHA384 DigestAlgorithm = "sha384"
	// DigestSHA512 selects SHA-512.
	DigestSHA512 DigestAlgorithm = "sha512"
	// DigestBLAKE3 selects BLAKE3 with a 256-bit output.
	DigestBLAKE3 DigestAlgorithm = "blake3"
)

// ParseDigestAlgorithm converts a configuration string into a DigestAlgorithm.
// An empty string selects DigestSHA256.
func ParseDigestAlgorithm(s string) (DigestAlgorithm, error) {
	switch DigestAlgorithm(s) {
	case "":
		return DigestSHA256, nil
	case DigestSHA256, DigestSHA384, DigestSHA512, DigestBLAKE3:
		return DigestAlgorithm(s), nil
	default:
		return "", ErrUnsupportedDigestAlgorithm
	}
}
