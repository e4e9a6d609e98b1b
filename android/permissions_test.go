package android

import "testing"

func TestIsPermission(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"INTERNET", true},
		{"android.permission.INTERNET", true},
		{"WAKE_LOCK", true},
		{"READ_MEDIA_IMAGES", true},
		{"internet", false},
		{"NOT_A_PERMISSION", false},
		{"", false},
	}

	for _, test := range tests {
		if got := IsPermission(test.name); got != test.expected {
			t.Errorf("IsPermission(%q) = %t, expected %t", test.name, got, test.expected)
		}
	}
}

func TestPermission(t *testing.T) {
	if got := Permission("INTERNET"); got != "android.permission.INTERNET" {
		t.Errorf("Permission(INTERNET) = %s", got)
	}

	if got := Permission("android.permission.WAKE_LOCK"); got != "android.permission.WAKE_LOCK" {
		t.Errorf("Permission(android.permission.WAKE_LOCK) = %s", got)
	}
}
