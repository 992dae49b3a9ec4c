package lyrics

import "github.com/mitchellh/hashstructure/v2"

// Fingerprint returns a structural hash of a parsed sequence. Two sequences
// with the same lines in the same order share a fingerprint.
func Fingerprint(lines []Line) (uint64, error) {
	return hashstructure.Hash(lines, hashstructure.FormatV2, nil)
}
