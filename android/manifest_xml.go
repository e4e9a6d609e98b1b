package android

import (
	"encoding/xml"
	"strconv"
)

const (
	AndroidManifestName = "AndroidManifest.xml"

	// SchemaAndroid is the XML namespace of android: attributes.
	SchemaAndroid = "http://schemas.android.com/apk/res/android"
)

type Manifest struct {
	XMLName        xml.Name                 `xml:"manifest"`
	UsesSDK        *ManifestUsesSDK         `xml:"uses-sdk"`
	UsesPermission []ManifestUsesPermission `xml:"uses-permission"`
	UsesFeature    []ManifestUsesFeature    `xml:"uses-feature"`
	Permission     []ManifestPermission     `xml:"permission"`
	Application    ManifestApplication      `xml:"application"`
	Attrs          []xml.Attr               `xml:",any,attr"`
}

func (m *Manifest) Package() string {
	for _, attr := range m.Attrs {
		if attr.Name.Local == "package" {
			return attr.Value
		}
	}

	return ""
}

// Permissions returns the android.permission identifiers the
// manifest declares with uses-permission elements.
func (m *Manifest) Permissions() []string {
	permissions := make([]string, 0, len(m.UsesPermission))

	for _, usesPermission := range m.UsesPermission {
		if name := androidAttr(usesPermission.Attrs, "name"); name != "" {
			permissions = append(permissions, name)
		}
	}

	return permissions
}

// MinSDKVersion returns the uses-sdk android:minSdkVersion,
// or 0 when the manifest does not declare one.
func (m *Manifest) MinSDKVersion() int {
	return m.usesSDKAttr("minSdkVersion")
}

// TargetSDKVersion returns the uses-sdk android:targetSdkVersion,
// or 0 when the manifest does not declare one.
func (m *Manifest) TargetSDKVersion() int {
	return m.usesSDKAttr("targetSdkVersion")
}

func (m *Manifest) usesSDKAttr(name string) int {
	if m.UsesSDK == nil {
		return 0
	}

	version, _ := strconv.Atoi(androidAttr(m.UsesSDK.Attrs, name))
	return version
}

type ManifestUsesSDK struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

type ManifestUsesPermission struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

type ManifestUsesFeature struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

type ManifestPermission struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

type ManifestApplication struct {
	Activities      []ManifestApplicationActivity `xml:"activity"`
	ActivityAliases []ManifestApplicationActivity `xml:"activity-alias"`
	Receivers       []ManifestApplicationActivity `xml:"receiver"`
	Services        []ManifestApplicationActivity `xml:"service"`
	Providers       []ManifestApplicationActivity `xml:"provider"`
	UsesLibraries   []ManifestApplicationMetadata `xml:"uses-library"`
	Attrs           []xml.Attr                    `xml:",any,attr"`
}

// MainActivity returns the android:name of the first activity
// carrying a MAIN intent filter action, which is the entry
// point class of the package.
func (a ManifestApplication) MainActivity() string {
	for _, activity := range a.Activities {
		for _, action := range activity.IntentFilter.Actions {
			if androidAttr(action.Attrs, "name") == "android.intent.action.MAIN" {
				return androidAttr(activity.Attrs, "name")
			}
		}
	}

	return ""
}

type ManifestApplicationActivity struct {
	Metadata     ManifestApplicationMetadata     `xml:"metadata"`
	IntentFilter ManifestApplicationIntentFilter `xml:"intent-filter"`
	Attrs        []xml.Attr                      `xml:",any,attr"`
}

type ManifestApplicationIntentFilter struct {
	Actions    []ManifestApplicationMetadata `xml:"action"`
	Categories []ManifestApplicationMetadata `xml:"category"`
}

type ManifestApplicationMetadata struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

func androidAttr(attrs []xml.Attr, name string) string {
	for _, attr := range attrs {
		if attr.Name.Local == name && (attr.Name.Space == "" || attr.Name.Space == SchemaAndroid) {
			return attr.Value
		}
	}

	return ""
}
