package database

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRetryCount(t *testing.T) {
	cases := []struct {
		env  string
		want int
	}{
		{"", 5},
		{"7", 7},
		{"0", 1},
		{"-3", 1},
		{"abc", 1},
	}
	for _, c := range cases {
		t.Setenv("DB_CONNECT_RETRIES", c.env)
		if got := retryCount(); got != c.want {
			t.Errorf("DB_CONNECT_RETRIES=%q: got %d, want %d", c.env, got, c.want)
		}
	}
}

// self-signed test certificate, only parsed, never trusted for anything
const testCAPEM = `-----BEGIN CERTIFICATE-----
MIIBhTCCASugAwIBAgIQIRi6zePL6mKjOipn+dNuaTAKBggqhkjOPQQDAjASMRAw
DgYDVQQKEwdBY21lIENvMB4XDTE3MTAyMDE5NDMwNloXDTE4MTAyMDE5NDMwNlow
EjEQMA4GA1UEChMHQWNtZSBDbzBZMBMGByqGSM49AgEGCCqGSM49AwEHA0IABD0d
7VNhbWvZLWPuj/RtHFjvtJBEwOkhbN/BnnE8rnZR8+sbwnc/KhCk3FhnpHZnQz7B
5aETbbIgmuvewdjvSBSjYzBhMA4GA1UdDwEB/wQEAwICpDATBgNVHSUEDDAKBggr
BgEFBQcDATAPBgNVHRMBAf8EBTADAQH/MCkGA1UdEQQiMCCCDmxvY2FsaG9zdDo1
NDUzgg4xMjcuMC4wLjE6NTQ1MzAKBggqhkjOPQQDAgNIADBFAiEA2zpJEPQyz6/l
Wf86aX6PepsntZv2GYlA5UpabfT2EZICICpJ5h/iI+i341gBmLiAFQOyTDT+/wQc
6MF9+Yw1Yy0t
-----END CERTIFICATE-----`

func TestBuildCustomTLSConfigWithCA(t *testing.T) {
	caPath := filepath.Join(t.TempDir(), "ca.pem")
	if err := os.WriteFile(caPath, []byte(testCAPEM), 0o600); err != nil {
		t.Fatalf("write CA file: %v", err)
	}
	t.Setenv("DB_TLS_CA_PATH", caPath)
	t.Setenv("DB_TLS_CLIENT_CERT", "")
	t.Setenv("DB_TLS_CLIENT_KEY", "")

	cfg, err := buildCustomTLSConfig()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if cfg.RootCAs == nil {
		t.Fatal("expected RootCAs to be populated from the CA file")
	}
}

func TestBuildCustomTLSConfigMissingCAFile(t *testing.T) {
	t.Setenv("DB_TLS_CA_PATH", filepath.Join(t.TempDir(), "nope.pem"))
	if _, err := buildCustomTLSConfig(); err == nil {
		t.Fatal("missing CA file should fail")
	}
}

func TestBuildCustomTLSConfigGarbageCA(t *testing.T) {
	caPath := filepath.Join(t.TempDir(), "ca.pem")
	if err := os.WriteFile(caPath, []byte("not a certificate"), 0o600); err != nil {
		t.Fatalf("write CA file: %v", err)
	}
	t.Setenv("DB_TLS_CA_PATH", caPath)
	if _, err := buildCustomTLSConfig(); err == nil {
		t.Fatal("unparseable CA file should fail")
	}
}
