package hfgetregexp

import "regexp"

var (
	RepoOwner = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{0,95}$`)
	RepoName  = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{0,95}$`)
	Revision  = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._/-]{0,63}$`)
	RepoSlug  = regexp.MustCompile(`^([a-zA-Z0-9][a-zA-Z0-9._-]*)/([a-zA-Z0-9][a-zA-Z0-9._-]*)$`)

	// TreeURL matches hub URLs referencing a subtree of a repository,
	// e.g. https://huggingface.co/openai/whisper/tree/main/assets.
	TreeURL = regexp.MustCompile(`^(?:https?://)?(huggingface\.co|hf-mirror\.com)/([^/]+)/([^/]+)/tree/([^/]+)(?:/(.*))?$`)

	// FileURL matches hub URLs referencing a single file of a repository.
	// Both the raw (resolve) and the rendered (blob) forms are accepted.
	FileURL = regexp.MustCompile(`^(?:https?://)?(huggingface\.co|hf-mirror\.com)/([^/]+)/([^/]+)/(?:resolve|blob)/([^/]+)/(.+)$`)

	APK = regexp.MustCompile(`(?i)^[\w/.-]+\.apk$`)
)
