package fileloader

import (
	"encoding/hex"
	"fmt"

	"github.com/minio/highwayhash"
)

// FingerprintKey is the fixed HighwayHash key used for source fingerprints, so
// the same content always yields the same fingerprint.
var FingerprintKey = []byte("themecoder source fingerprint\x00\x00\x00")

// Fingerprint returns the hex HighwayHash-256 of data.
func Fingerprint(data []byte) (string, error) {
	sum, err := highwayhash.New(FingerprintKey)
	if err != nil {
		return "", fmt.Errorf("failed to create hash: %w", err)
	}
	sum.Write(data)
	return hex.EncodeToString(sum.Sum(nil)), nil
}
