// Package partition derives remote object keys from WAL artifact filenames.
package partition

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedName is returned when a file_list artifact name does not carry
// enough underscore-separated fields to derive an object key.
var ErrMalformedName = errors.New("malformed file_list name")

// FileListObjectKey derives the remote object key for a file_list artifact.
// Local names follow <seq>_<org>_<stream_type>_<date>_<hour>_<id>; the first
// field and any fields past the sixth do not contribute to the key.
//
//	x_org1_logs_2023-10-01_13_abc -> file_list/org1/logs/2023-10-01/13/abc.zst
func FileListObjectKey(name string) (string, error) {
	columns := strings.Split(name, "_")
	if len(columns) < 6 {
		return "", fmt.Errorf("%w: %q has %d fields, want at least 6", ErrMalformedName, name, len(columns))
	}
	return fmt.Sprintf("file_list/%s/%s/%s/%s/%s.zst",
		columns[1], columns[2], columns[3], columns[4], columns[5]), nil
}

// KeyFromFilename derives a generic partition key from an artifact filename.
// Only key=value fields contribute, in order; dots inside them are replaced
// with underscores so each value stays within one path segment. The key
// always ends with "/".
//
//	org=o1_stream=logs_2022_10_12_13 -> org=o1/stream=logs/
func KeyFromFilename(name string) string {
	var fields []string
	for _, field := range strings.Split(name, "_") {
		if strings.Contains(field, "=") {
			fields = append(fields, strings.ReplaceAll(field, ".", "_"))
		}
	}
	return strings.Join(fields, "/") + "/"
}
