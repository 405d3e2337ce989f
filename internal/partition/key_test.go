package partition

import (
	"errors"
	"testing"
)

func TestFileListObjectKey(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"x_org1_logs_2023-10-01_13_abc", "file_list/org1/logs/2023-10-01/13/abc.zst"},
		{"0_default_metrics_2023-01-31_00_7a2b.json", "file_list/default/metrics/2023-01-31/00/7a2b.json.zst"},
		// Fields past the sixth do not contribute.
		{"x_org1_logs_2023-10-01_13_abc_extra_more", "file_list/org1/logs/2023-10-01/13/abc.zst"},
		// The first field is ignored entirely.
		{"9999_org1_logs_2023-10-01_13_abc", "file_list/org1/logs/2023-10-01/13/abc.zst"},
	}

	for _, tt := range tests {
		key, err := FileListObjectKey(tt.name)
		if err != nil {
			t.Errorf("FileListObjectKey(%q) failed: %v", tt.name, err)
			continue
		}
		if key != tt.expected {
			t.Errorf("FileListObjectKey(%q) = %q, want %q", tt.name, key, tt.expected)
		}
	}
}

func TestFileListObjectKeyDeterministic(t *testing.T) {
	name := "x_org1_logs_2023-10-01_13_abc"
	first, err := FileListObjectKey(name)
	if err != nil {
		t.Fatalf("FileListObjectKey failed: %v", err)
	}
	second, err := FileListObjectKey(name)
	if err != nil {
		t.Fatalf("FileListObjectKey failed on repeat: %v", err)
	}
	if first != second {
		t.Errorf("key derivation is not deterministic: %q != %q", first, second)
	}
}

func TestFileListObjectKeyMalformed(t *testing.T) {
	for _, name := range []string{
		"",
		"noseparators.json",
		"a_b",
		"a_b_c_d_e", // five fields, want six
	} {
		_, err := FileListObjectKey(name)
		if err == nil {
			t.Errorf("FileListObjectKey(%q) should fail", name)
			continue
		}
		if !errors.Is(err, ErrMalformedName) {
			t.Errorf("FileListObjectKey(%q) error = %v, want ErrMalformedName", name, err)
		}
	}
}

func TestKeyFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"org=o1_stream=logs_2022_10_12_13", "org=o1/stream=logs/"},
		// Dots inside key=value fields are flattened.
		{"kubernetes.host=node.a_2022", "kubernetes_host=node_a/"},
		// Field order is preserved.
		{"b=2_a=1", "b=2/a=1/"},
		// No key=value fields leaves only the trailing separator.
		{"0_default_logs_2023", "/"},
	}

	for _, tt := range tests {
		if got := KeyFromFilename(tt.name); got != tt.expected {
			t.Errorf("KeyFromFilename(%q) = %q, want %q", tt.name, got, tt.expected)
		}
	}
}
