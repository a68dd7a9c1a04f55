// Package macaddr synthesizes MAC addresses for virtual NICs using each
// hypervisor vendor's OUI prefix.
//
// Addresses are plausible, not unique: callers that need collision
// avoidance must track allocations themselves.
package macaddr

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"

	"github.com/jbweber/hvcompat/internal/catalog"
)

// RandomOctets is the number of octets drawn after the vendor prefix.
const RandomOctets = 3

// Source draws random integers in [0, n). *rand.Rand from math/rand/v2
// satisfies it.
type Source interface {
	IntN(n int) int
}

// Policy describes how addresses are built for one platform.
type Policy struct {
	// Prefix is the vendor OUI exactly as it is written, e.g. "52:54:00" or "00155D".
	Prefix string
	// Separator goes between the prefix and the body and between body octets.
	Separator string
	// FirstOctetLimit, when non-zero, bounds the first random octet to
	// [0, FirstOctetLimit).
	FirstOctetLimit int
}

// policies is the only place that knows about individual platforms.
var policies = map[catalog.Hypervisor]Policy{
	catalog.VBox:      {Prefix: "080027", Separator: ""},
	catalog.KVM:       {Prefix: "52:54:00", Separator: ":"},
	catalog.Xen3:      {Prefix: "00:16:3e", Separator: ":"},
	catalog.VMX04:     {Prefix: "00:50:56", Separator: ":", FirstOctetLimit: 62},
	catalog.HyperV301: {Prefix: "00155D", Separator: ""},
	// Unicast, locally administered range accepted for user-set XenServer MACs.
	catalog.XenServer: {Prefix: "fe:32:32", Separator: ":"},
}

// PolicyFor returns the address policy for h.
func PolicyFor(h catalog.Hypervisor) (Policy, bool) {
	p, ok := policies[h]
	return p, ok
}

// Generate builds an address for h from src. It returns "" when h has no
// policy.
func Generate(h catalog.Hypervisor, src Source) string {
	p, ok := policies[h]
	if !ok {
		return ""
	}
	return p.Generate(src)
}

// Random builds an address for h from a generator seeded with fresh entropy.
// Each call owns its generator, so concurrent callers share no state.
func Random(h catalog.Hypervisor) string {
	return Generate(h, NewSource())
}

// NewSource returns a ChaCha8 generator seeded from crypto/rand.
func NewSource() *rand.Rand {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		// crypto/rand.Read does not fail on supported platforms.
		panic(fmt.Sprintf("macaddr: reading entropy: %v", err))
	}
	return rand.New(rand.NewChaCha8(seed))
}

// NewSeededSource returns a deterministic generator for reproducible output.
func NewSeededSource(seed uint64) *rand.Rand {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[:], seed)
	return rand.New(rand.NewChaCha8(buf))
}

// Generate builds an address following p.
func (p Policy) Generate(src Source) string {
	octets := make([]string, RandomOctets)
	for i := range octets {
		limit := 256
		if i == 0 && p.FirstOctetLimit > 0 {
			limit = p.FirstOctetLimit
		}
		octets[i] = fmt.Sprintf("%02x", src.IntN(limit))
	}
	return p.Prefix + p.Separator + strings.Join(octets, p.Separator)
}

// Matches reports whether addr could have been produced by p: same prefix,
// same separators, lowercase hex body, and a first octet within the limit.
func (p Policy) Matches(addr string) bool {
	if !strings.HasPrefix(addr, p.Prefix+p.Separator) {
		return false
	}
	body := strings.TrimPrefix(addr, p.Prefix+p.Separator)

	var octets []string
	if p.Separator == "" {
		if len(body) != 2*RandomOctets {
			return false
		}
		for i := 0; i < len(body); i += 2 {
			octets = append(octets, body[i:i+2])
		}
	} else {
		octets = strings.Split(body, p.Separator)
	}
	if len(octets) != RandomOctets {
		return false
	}

	for i, o := range octets {
		if !octetPattern.MatchString(o) {
			return false
		}
		if i == 0 && p.FirstOctetLimit > 0 {
			v, err := strconv.ParseUint(o, 16, 8)
			if err != nil || int(v) >= p.FirstOctetLimit {
				return false
			}
		}
	}
	return true
}

var octetPattern = regexp.MustCompile(`^[0-9a-f]{2}$`)
