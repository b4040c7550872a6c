package platform

import "testing"

func TestFromGOOS(t *testing.T) {
	tests := []struct {
		goos string
		want Platform
	}{
		{"linux", Linux},
		{"freebsd", Linux},
		{"windows", Windows},
		{"darwin", MacOS},
		{"plan9", Other},
	}

	for _, tt := range tests {
		if got := FromGOOS(tt.goos); got != tt.want {
			t.Errorf("FromGOOS(%q) = %q, want %q", tt.goos, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Platform
		wantErr bool
	}{
		{"linux", Linux, false},
		{" Windows ", Windows, false},
		{"osx", MacOS, false},
		{"macos", MacOS, false},
		{"beos", "", true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlatform_StaysResidentCapable(t *testing.T) {
	if !Linux.StaysResidentCapable() || !Windows.StaysResidentCapable() {
		t.Error("linux and windows should allow staying resident")
	}
	if MacOS.StaysResidentCapable() {
		t.Error("macos should never stay resident on last close")
	}
}

func TestPlatform_In(t *testing.T) {
	if !Linux.In(nil) {
		t.Error("empty list should match every platform")
	}
	if !MacOS.In([]Platform{Linux, MacOS}) {
		t.Error("expected macos in list")
	}
	if Windows.In([]Platform{Linux, MacOS}) {
		t.Error("windows not in list")
	}
}
