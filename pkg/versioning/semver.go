package versioning

import (
	"errors"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Comparator answers the semantic-version questions the Negotiator asks.
// Implementations must be safe for concurrent use.
type Comparator interface {
	// Valid reports whether v is a syntactically valid semantic version.
	Valid(v string) bool
	// LessThan reports whether a has lower precedence than b.
	// Unparseable input compares as not less.
	LessThan(a, b string) bool
	// Satisfies reports whether v falls within the range constraint.
	Satisfies(v, constraint string) bool
}

// RangeChecker is implemented by comparators that can validate a range up front.
type RangeChecker interface {
	ValidRange(constraint string) error
}

// Semver is the default Comparator, backed by Masterminds/semver.
//
// Versions are parsed strictly (major.minor.patch with optional prerelease and
// build metadata, each numeric component at most 2^53-1); a single leading "v"
// is tolerated. Ranges use the library's constraint grammar, so a bare version
// such as "1.2.3" matches only itself.
type Semver struct{}

var (
	_ Comparator   = Semver{}
	_ RangeChecker = Semver{}
)

// maxComponent is the largest integer a JSON number holds exactly; larger
// major, minor or patch values are rejected.
const maxComponent = 1<<53 - 1

var errComponentTooLarge = errors.New("version component exceeds 2^53-1")

func parse(v string) (*semver.Version, error) {
	ver, err := semver.StrictNewVersion(strings.TrimPrefix(v, "v"))
	if err != nil {
		return nil, err
	}
	if ver.Major() > maxComponent || ver.Minor() > maxComponent || ver.Patch() > maxComponent {
		return nil, errComponentTooLarge
	}
	return ver, nil
}

// Valid implements Comparator.
func (Semver) Valid(v string) bool {
	_, err := parse(v)
	return err == nil
}

// LessThan implements Comparator.
func (Semver) LessThan(a, b string) bool {
	va, err := parse(a)
	if err != nil {
		return false
	}
	vb, err := parse(b)
	if err != nil {
		return false
	}
	return va.LessThan(vb)
}

// Satisfies implements Comparator.
func (Semver) Satisfies(v, constraint string) bool {
	ver, err := parse(v)
	if err != nil {
		return false
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false
	}
	return c.Check(ver)
}

// ValidRange implements RangeChecker.
func (Semver) ValidRange(constraint string) error {
	_, err := semver.NewConstraint(constraint)
	return err
}
