package collectible

import (
	"strings"

	"github.com/iov-one/artmarket/errors"
	cid "github.com/ipfs/go-cid"
)

const (
	ipfsScheme = "ipfs://"

	maxMetadataRefLength = 256
)

// CanonicalMetadataRef returns the form of the reference that is stored and
// used for the uniqueness check. An IPFS content identifier, bare or with the
// ipfs:// scheme, is converted to its CIDv1 string. Any other reference is
// returned unchanged.
func CanonicalMetadataRef(ref string) string {
	c, err := cid.Decode(strings.TrimPrefix(ref, ipfsScheme))
	if err != nil {
		return ref
	}
	if c.Version() == 0 {
		c = cid.NewCidV1(c.Type(), c.Hash())
	}
	return c.String()
}

func validateMetadataRef(ref string) error {
	switch {
	case strings.TrimSpace(ref) == "":
		return errors.Wrap(ErrInvalidMetadata, "empty")
	case len(ref) > maxMetadataRefLength:
		return errors.Wrapf(ErrInvalidMetadata, "longer than %d characters", maxMetadataRefLength)
	}
	return nil
}
