package core

// Environment is the deployment environment the service runs in.
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

func (e Environment) String() string { return string(e) }

// IsProduction reports whether the environment corresponds to production.
func (e Environment) IsProduction() bool { return e == Production }

// ParseEnvironment normalises v into a known environment. Unknown values
// fall back to Development.
func ParseEnvironment(v string) Environment {
	switch Environment(v) {
	case Production:
		return Production
	case Testing:
		return Testing
	default:
		return Development
	}
}
