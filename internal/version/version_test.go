package version

import "testing"

func TestGetVersion(t *testing.T) {
	orig := version
	t.Cleanup(func() { version = orig })

	tests := []struct {
		raw  string
		want string
	}{
		{"1.2.3", "1.2.3"},
		{"v1.2.3", "1.2.3"},
		{" 1.2.3\n", "1.2.3"},
	}

	for _, tt := range tests {
		version = tt.raw
		if got := GetVersion(); got != tt.want {
			t.Errorf("GetVersion() with %q = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
