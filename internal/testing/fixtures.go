package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// LoadTestdataFile loads a file from the testdata directory
func LoadTestdataFile(t *testing.T, relativePath string) []byte {
	t.Helper()

	content, err := os.ReadFile(GetTestdataPath(t, relativePath))
	if err != nil {
		t.Fatalf("Failed to load testdata file %s: %v", relativePath, err)
	}

	return content
}

// LoadTestdataString loads a file from testdata as a string
func LoadTestdataString(t *testing.T, relativePath string) string {
	t.Helper()
	return string(LoadTestdataFile(t, relativePath))
}

// GetTestdataPath returns the full path to a testdata file
func GetTestdataPath(t *testing.T, relativePath string) string {
	t.Helper()

	// Find project root by looking for go.mod
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	projectRoot := wd
	for {
		if _, statErr := os.Stat(filepath.Join(projectRoot, "go.mod")); statErr == nil {
			break
		}
		parent := filepath.Dir(projectRoot)
		if parent == projectRoot {
			t.Fatal("Could not find project root (go.mod)")
		}
		projectRoot = parent
	}

	return filepath.Join(projectRoot, "testdata", relativePath)
}
