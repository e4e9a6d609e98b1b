package hfget

// SemVerPrefix gets prepended to the below version
// in SemVer, e.g. "v0.4.1".
const SemVerPrefix = "v"

var semVer = "0.4.1"

// SemVer returns the version of hfget.
func SemVer() string {
	return SemVerPrefix + semVer
}
