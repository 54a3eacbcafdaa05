package preflight

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("Output directory", dir)
	if !result.Passed {
		t.Errorf("writable temp dir failed: %s", result.Detail)
	}

	result = CheckDirectoryAccess("Output directory", filepath.Join(dir, "missing"))
	if result.Passed {
		t.Error("missing directory passed")
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	result = CheckDirectoryAccess("Output directory", file)
	if result.Passed {
		t.Error("regular file passed as directory")
	}
}

func TestCheckDevice(t *testing.T) {
	if result := CheckDevice(""); result.Passed {
		t.Error("empty device passed")
	}
	if result := CheckDevice(filepath.Join(t.TempDir(), "sr0")); result.Passed {
		t.Error("missing device node passed")
	}
	// Any readable path satisfies the access check; a real device node is
	// not available under test.
	existing := filepath.Join(t.TempDir(), "sr0")
	if err := os.WriteFile(existing, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckDevice(existing); !result.Passed {
		t.Errorf("readable node failed: %s", result.Detail)
	}
}

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	if err := os.WriteFile(present, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	results := CheckBinaries([]Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary", Description: "needed"},
		{Name: "Unset", Command: "", Optional: true},
	})
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	if !results[0].Passed {
		t.Errorf("present binary failed: %s", results[0].Detail)
	}
	if results[1].Passed {
		t.Error("missing binary passed")
	}
	if results[2].Passed || !results[2].Optional {
		t.Errorf("unset command = %+v", results[2])
	}
}

func TestAllPassed(t *testing.T) {
	results := []Result{
		{Name: "a", Passed: true},
		{Name: "b", Passed: false, Optional: true},
	}
	if !AllPassed(results) {
		t.Error("optional failure must not block")
	}
	results = append(results, Result{Name: "c", Passed: false})
	if AllPassed(results) {
		t.Error("required failure must block")
	}
}
