package android

import "strings"

// PermissionPrefix is the namespace of platform permissions.
const PermissionPrefix = "android.permission."

// permissions are the recognized platform permission identifiers,
// without the android.permission. prefix.
var permissions = map[string]struct{}{
	"ACCESS_COARSE_LOCATION":  {},
	"ACCESS_FINE_LOCATION":    {},
	"ACCESS_NETWORK_STATE":    {},
	"ACCESS_WIFI_STATE":       {},
	"BLUETOOTH":               {},
	"BLUETOOTH_ADMIN":         {},
	"BLUETOOTH_CONNECT":       {},
	"BODY_SENSORS":            {},
	"CAMERA":                  {},
	"CHANGE_WIFI_STATE":       {},
	"FOREGROUND_SERVICE":      {},
	"INTERNET":                {},
	"MANAGE_EXTERNAL_STORAGE": {},
	"NFC":                     {},
	"POST_NOTIFICATIONS":      {},
	"READ_CALENDAR":           {},
	"READ_CONTACTS":           {},
	"READ_EXTERNAL_STORAGE":   {},
	"READ_MEDIA_AUDIO":        {},
	"READ_MEDIA_IMAGES":       {},
	"READ_MEDIA_VIDEO":        {},
	"READ_PHONE_STATE":        {},
	"READ_SMS":                {},
	"RECEIVE_BOOT_COMPLETED":  {},
	"RECORD_AUDIO":            {},
	"SEND_SMS":                {},
	"SYSTEM_ALERT_WINDOW":     {},
	"VIBRATE":                 {},
	"WAKE_LOCK":               {},
	"WRITE_CALENDAR":          {},
	"WRITE_CONTACTS":          {},
	"WRITE_EXTERNAL_STORAGE":  {},
}

// IsPermission reports whether name is a recognized platform
// permission, given either bare (INTERNET) or fully qualified
// (android.permission.INTERNET).
func IsPermission(name string) bool {
	_, ok := permissions[strings.TrimPrefix(name, PermissionPrefix)]
	return ok
}

// Permission fully qualifies a bare permission name.
func Permission(name string) string {
	if strings.HasPrefix(name, PermissionPrefix) {
		return name
	}

	return PermissionPrefix + name
}
