package buildozer

import "regexp"

var (
	packageName   = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)
	packageDomain = regexp.MustCompile(`^[a-zA-Z][\w]*(\.[a-zA-Z][\w]*)+$`)
)
