package recommend

// fallbackMovies is the static list served whenever the provider path
// cannot produce a valid result. Same five titles every time, so the
// service stays schema-valid with zero external dependencies reachable.
var fallbackMovies = [...]string{
	"Drishyam (2015)",
	"Kahaani (2012)",
	"Andhadhun (2018)",
	"Badla (2019)",
	"Talvar (2015)",
}

// Fallback returns a fresh copy of the fixed title list.
func Fallback() []string {
	out := make([]string, len(fallbackMovies))
	copy(out, fallbackMovies[:])
	return out
}
