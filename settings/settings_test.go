package settings

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		show    string
		border  string
		want    Settings
		wantErr bool
	}{
		{name: "unset", want: Settings{ShowInfo: true, ShowInfoBorder: true}},
		{name: "disabled", show: "false", border: "0", want: Settings{}},
		{name: "mixed", show: "true", border: "FALSE", want: Settings{ShowInfo: true}},
		{name: "padded", show: " f ", want: Settings{ShowInfoBorder: true}},
		{name: "invalid", show: "sometimes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TP_SHOW_INFO", tt.show)
			t.Setenv("TP_SHOW_INFO_BORDER", tt.border)

			got, err := FromEnv("TP_")
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidValue) {
					t.Fatalf("error = %v, want ErrInvalidValue", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromEnv() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FromEnv() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Settings
		wantErr bool
	}{
		{name: "empty", data: "", want: Default()},
		{name: "yaml", data: "showInfo: false\n", want: Settings{ShowInfoBorder: true}},
		{name: "json", data: `{"showInfo": true, "showInfoBorder": false}`, want: Settings{ShowInfo: true}},
		{name: "unknown key", data: "showFLAC: true\n", wantErr: true},
		{name: "wrong type", data: "showInfo: [1]\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.data))
			if tt.wantErr {
				if !errors.Is(err, ErrReadFile) {
					t.Fatalf("error = %v, want ErrReadFile", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("showInfoBorder: false\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if want := (Settings{ShowInfo: true}); got != want {
		t.Errorf("LoadFile() = %+v, want %+v", got, want)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, ErrReadFile) {
		t.Errorf("missing file error = %v, want ErrReadFile", err)
	}
}

func TestStore(t *testing.T) {
	var zero Store
	if zero.Settings() != Default() {
		t.Error("zero Store should return defaults")
	}

	s := NewStore(Settings{ShowInfo: true})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); s.Set(Settings{}) }()
		go func() { defer wg.Done(); _ = s.Settings() }()
	}
	wg.Wait()

	s.Set(Settings{ShowInfoBorder: true})
	if got := s.Settings(); got != (Settings{ShowInfoBorder: true}) {
		t.Errorf("Settings() = %+v", got)
	}
}

func TestStatic(t *testing.T) {
	s := Static{ShowInfo: true}
	if got := s.Settings(); got != (Settings{ShowInfo: true}) {
		t.Errorf("Settings() = %+v", got)
	}
}
