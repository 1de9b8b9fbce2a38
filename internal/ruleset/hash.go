package ruleset

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// DomainRuleset is the domain-separation prefix for ruleset content
// hashes. The version suffix leaves room for a future hashing-scheme
// migration without colliding with v1 hashes.
const DomainRuleset = "flexrt/ruleset/v1"

// hashWithDomain computes SHA-256(domain + 0x00 + data). The null byte
// separator prevents a domain/data boundary ambiguity (e.g. domain "ab"
// + data "c" colliding with domain "a" + data "bc").
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Hash computes a content-addressed identifier for rs's configuration,
// stable across process restarts given the same definitions, states, and
// rules. lexctl trace stamps it onto the records it writes through
// internal/tracestore so a scan trace can be traced back to exactly the
// ruleset that produced it.
//
// Order matters: Hash is sensitive to the order definitions, states, and
// rules appear in, since that order is semantically meaningful (it
// decides registration index tie-breaks).
func Hash(rs *Ruleset) (string, error) {
	canonical, err := json.Marshal(rs)
	if err != nil {
		return "", fmt.Errorf("Hash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainRuleset, canonical), nil
}

// MustHash is like Hash but panics on error. Use only in tests or when
// rs is known to be valid (e.g. just returned by Load/Parse).
func MustHash(rs *Ruleset) string {
	hash, err := Hash(rs)
	if err != nil {
		panic(err)
	}
	return hash
}
