package version

import "testing"

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"no commit", Info{Version: "dev"}, "dev"},
		{"short commit", Info{Version: "v1.0.0", CommitHash: "abc"}, "v1.0.0 (abc)"},
		{"long commit", Info{Version: "v1.0.0", CommitHash: "0123456789abcdef"}, "v1.0.0 (0123456)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
