package main

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestRunTokenizeStdinLikeReader(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/doc.json"
	if err := os.WriteFile(path, []byte(`{"a":[1,2,true]}`), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	var out bytes.Buffer
	// A tiny chunk size forces multiple Push calls through a single file,
	// the same chunking behaviour jtok_test.go's TestChunking checks
	// in-process.
	if err := runTokenize(&out, path, 3, true); err != nil {
		t.Fatalf("runTokenize: %v", err)
	}

	got := out.String()
	for _, want := range []string{"BeginObject", "BeginArray", "Integer \"1\"", "True", "EndArray", "EndObject"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q, got:\n%s", want, got)
		}
	}
}

func TestRunTokenizeRejectsNonPositiveChunkSize(t *testing.T) {
	var out bytes.Buffer
	if err := runTokenize(&out, "", 0, true); err == nil {
		t.Fatal("expected error for chunk-size 0")
	}
}
