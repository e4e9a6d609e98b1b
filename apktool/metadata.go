package apktool

// MetadataName is the file `apktool decode` leaves its
// findings in next to the decoded sources.
const MetadataName = "apktool.yml"

type SDKInfo struct {
	MinSDKVersion    int `yaml:"minSdkVersion"`
	TargetSDKVersion int `yaml:"targetSdkVersion"`
}

type VersionInfo struct {
	VersionCode int    `yaml:"versionCode"`
	VersionName string `yaml:"versionName"`
}

// Metadata models the apktool.yml an `apktool decode` run
// writes about the decoded .apk.
type Metadata struct {
	Version        string         `yaml:"version,omitempty"`
	APKFileName    string         `yaml:"apkFileName,omitempty"`
	IsFrameworkAPK bool           `yaml:"isFrameworkApk,omitempty"`
	SDKInfo        *SDKInfo       `yaml:"sdkInfo,omitempty"`
	VersionInfo    *VersionInfo   `yaml:"versionInfo,omitempty"`
	SharedLibrary  bool           `yaml:"sharedLibrary,omitempty"`
	UnknownFiles   map[string]int `yaml:"unknownFiles,omitempty"`
	DoNotCompress  []string       `yaml:"doNotCompress,omitempty"`
}
