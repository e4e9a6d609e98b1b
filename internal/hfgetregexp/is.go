package hfgetregexp

func IsRepoOwner(s string) bool {
	return RepoOwner.MatchString(s)
}

func IsRepoName(s string) bool {
	return RepoName.MatchString(s)
}

func IsRevision(s string) bool {
	return Revision.MatchString(s)
}

func IsRepoSlug(s string) bool {
	return RepoSlug.MatchString(s)
}

func IsAPK(s string) bool {
	return APK.MatchString(s)
}
