package fs

import (
	_ "crypto/sha256" // register sha256 for go-digest
	_ "crypto/sha512" // register sha384 and sha512 for go-digest
	"encoding/hex"
	"io"

	"github.com/go-git/go-billy/v5"
	"github.com/opencontainers/go-digest"
	"github.com/zeebo/blake3"
	"go.trai.ch/aarcache/internal/core/domain"
	"go.trai.ch/aarcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes content digests of archive files.
type Hasher struct {
	fs billy.Filesystem
}

// NewHasher creates a new Hasher.
func NewHasher(fsys billy.Filesystem) *Hasher {
	return &Hasher{fs: fsys}
}

// Digest streams the file at path through the given algorithm and returns the hex encoded digest.
func (h *Hasher) Digest(path string, algorithm domain.DigestAlgorithm) (string, error) {
	f, err := h.fs.Open(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrInputHashFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	sum, err := digestReader(f, algorithm)
	if err != nil {
		return "", zerr.With(err, "path", path)
	}
	return sum, nil
}

func digestReader(r io.Reader, algorithm domain.DigestAlgorithm) (string, error) {
	switch algorithm {
	case domain.DigestBLAKE3:
		hasher := blake3.New()
		if _, err := io.Copy(hasher, r); err != nil {
			return "", zerr.Wrap(err, domain.ErrInputHashFailed.Error())
		}
		return hex.EncodeToString(hasher.Sum(nil)), nil

	case domain.DigestSHA256, domain.DigestSHA384, domain.DigestSHA512:
		alg := digest.Algorithm(algorithm)
		if !alg.Available() {
			return "", zerr.With(domain.ErrUnsupportedDigestAlgorithm, "algorithm", string(algorithm))
		}
		d, err := alg.FromReader(r)
		if err != nil {
			return "", zerr.Wrap(err, domain.ErrInputHashFailed.Error())
		}
		return d.Encoded(), nil

	default:
		return "", zerr.With(domain.ErrUnsupportedDigestAlgorithm, "algorithm", string(algorithm))
	}
}
