package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Port != 8000 {
		t.Errorf("Port = %d, want 8000", cfg.Port)
	}
	if cfg.Host != "" {
		t.Errorf("Host = %q, want all interfaces", cfg.Host)
	}
	if cfg.MaxConns != 32 {
		t.Errorf("MaxConns = %d, want 32", cfg.MaxConns)
	}
	if cfg.ShutdownGrace != 2*time.Second {
		t.Errorf("ShutdownGrace = %s, want 2s", cfg.ShutdownGrace)
	}
	if got := cfg.Addr(); got != ":8000" {
		t.Errorf("Addr() = %q, want %q", got, ":8000")
	}
	if got := cfg.BrowseURL(); got != "http://localhost:8000" {
		t.Errorf("BrowseURL() = %q, want %q", got, "http://localhost:8000")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{
			name: "Valid",
			doc:  "port = 9000\nmax_conns = 4\nshutdown_grace = \"500ms\"\n",
		},
		{
			name:    "Port out of range",
			doc:     "port = 70000\nmax_conns = 4\n",
			wantErr: true,
		},
		{
			name:    "No connections allowed",
			doc:     "port = 9000\nmax_conns = 0\n",
			wantErr: true,
		},
		{
			name:    "Negative grace",
			doc:     "port = 9000\nmax_conns = 1\nshutdown_grace = \"-1s\"\n",
			wantErr: true,
		},
		{
			name:    "Malformed TOML",
			doc:     "port = = 1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.doc)
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHostAddr(t *testing.T) {
	cfg := Config{Port: 8000, Host: "127.0.0.1", MaxConns: 1}
	if got := cfg.Addr(); got != "127.0.0.1:8000" {
		t.Errorf("Addr() = %q, want %q", got, "127.0.0.1:8000")
	}
}

func TestResolveRoot(t *testing.T) {
	base, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	tmpDirs := []string{base}

	installDir := filepath.Join(base, "install")
	cacheDir := filepath.Join(base, "go-build123", "b001", "exe")
	lookalikeDir := filepath.Join(base, "go-builds", "bin")
	nestedDir := filepath.Join(base, "home", "go-build42", "bin")
	srcDir := filepath.Join(base, "src", "web")
	for _, d := range []string{installDir, cacheDir, lookalikeDir, nestedDir, srcDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for _, d := range []string{installDir, cacheDir, lookalikeDir, nestedDir} {
		if err := os.WriteFile(filepath.Join(d, "serve"), nil, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	srcFile := filepath.Join(srcDir, "server.go")

	tests := []struct {
		name   string
		exe    string
		source string
		want   string
	}{
		{
			name:   "Installed binary",
			exe:    filepath.Join(installDir, "serve"),
			source: srcFile,
			want:   installDir,
		},
		{
			name:   "go run falls back to source directory",
			exe:    filepath.Join(cacheDir, "serve"),
			source: srcFile,
			want:   srcDir,
		},
		{
			name: "go run without source keeps executable directory",
			exe:  filepath.Join(cacheDir, "serve"),
			want: cacheDir,
		},
		{
			name:   "Directory named like the build cache",
			exe:    filepath.Join(lookalikeDir, "serve"),
			source: srcFile,
			want:   lookalikeDir,
		},
		{
			name:   "go-build directory outside the temp directory",
			exe:    filepath.Join(nestedDir, "serve"),
			source: srcFile,
			want:   nestedDir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveRoot(tt.exe, tt.source, tmpDirs)
			if err != nil {
				t.Fatalf("resolveRoot() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveRoot() = %q, want %q", got, tt.want)
			}
			if !filepath.IsAbs(got) {
				t.Errorf("resolveRoot() = %q, want absolute path", got)
			}
		})
	}
}

func TestInBuildCache(t *testing.T) {
	tmp := filepath.Join(string(filepath.Separator)+"tmp", "x")

	tests := []struct {
		dir  string
		want bool
	}{
		{dir: filepath.Join(tmp, "go-build2718", "b001", "exe"), want: true},
		{dir: filepath.Join(tmp, "go-build2718"), want: true},
		{dir: filepath.Join(tmp, "go-builds", "bin"), want: false},
		{dir: filepath.Join(tmp, "go-build", "bin"), want: false},
		{dir: filepath.Join(tmp, "home", "go-build1", "bin"), want: false},
		{dir: filepath.Join(string(filepath.Separator)+"opt", "go-build1", "bin"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			if got := inBuildCache(tt.dir, []string{tmp}); got != tt.want {
				t.Errorf("inBuildCache(%q) = %v, want %v", tt.dir, got, tt.want)
			}
		})
	}
}

func TestResolveRootMissingSource(t *testing.T) {
	base, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cacheDir := filepath.Join(base, "go-build9", "exe")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		t.Fatal(err)
	}

	_, err = resolveRoot(filepath.Join(cacheDir, "serve"), filepath.Join(base, "gone", "server.go"), []string{base})
	if err == nil {
		t.Error("resolveRoot() should fail when the source directory does not exist")
	}
}
