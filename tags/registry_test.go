package tags

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMatch_KnownUIDs(t *testing.T) {
	reg := Default()

	for _, want := range DefaultRecords() {
		got, ok := reg.Match(want.UID)
		if !ok {
			t.Errorf("tag %d: uid %s not matched", want.ID, want.UID.Hex())
			continue
		}
		if got.ID != want.ID || got.Label != want.Label {
			t.Errorf("uid %s: got tag %d %q, want %d %q", want.UID.Hex(), got.ID, got.Label, want.ID, want.Label)
		}
	}
}

func TestMatch_UnknownUIDs(t *testing.T) {
	reg := Default()

	tests := []struct {
		name string
		uid  UID
	}{
		{"deadbeef", UID{0xde, 0xad, 0xbe, 0xef}},
		{"empty", UID{}},
		{"nil", nil},
		{"prefix of tag 1", UID{0x23, 0xa8, 0x18, 0xf7}},
		{"tag 1 plus a byte", UID{0x23, 0xa8, 0x18, 0xf7, 0x64, 0x00}},
		{"tag 3 last byte changed", UID{0x04, 0x79, 0x8a, 0xea, 0xd1, 0x64, 0x81}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec, ok := reg.Match(tt.uid); ok {
				t.Errorf("Match(%s) = tag %d, want no match", tt.uid, rec.ID)
			}
		})
	}
}

func TestMatch_ReturnsCopy(t *testing.T) {
	uid := UID{1, 2, 3, 4}
	reg, err := NewRegistry([]Record{{ID: 9, UID: uid, Label: "x"}})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	uid[0] = 0xff

	if _, ok := reg.Match(UID{1, 2, 3, 4}); !ok {
		t.Error("registry was changed through the caller's slice")
	}
}

func TestNewRegistry_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
	}{
		{"duplicate uid", []Record{
			{ID: 1, UID: UID{1, 2, 3, 4}},
			{ID: 2, UID: UID{1, 2, 3, 4}},
		}},
		{"duplicate id", []Record{
			{ID: 1, UID: UID{1, 2, 3, 4}},
			{ID: 1, UID: UID{1, 2, 3, 5}},
		}},
		{"empty uid", []Record{{ID: 1}}},
		{"tab in label", []Record{{ID: 1, UID: UID{1}, Label: "a\tb"}}},
		{"newline in label", []Record{{ID: 1, UID: UID{1}, Label: "a\nb"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRegistry(tt.records); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLookup(t *testing.T) {
	reg := Default()

	rec, ok := reg.Lookup(5)
	if !ok {
		t.Fatal("tag 5 not found")
	}
	if rec.Label != "It'sa me" {
		t.Errorf("Expected label %q, got %q", "It'sa me", rec.Label)
	}
	if _, ok := reg.Lookup(42); ok {
		t.Error("tag 42 should not exist")
	}
	if reg.Len() != 7 {
		t.Errorf("Expected 7 records, got %d", reg.Len())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.tsv")
	content := "# id\tuid\tlabel\n" +
		"1\t23 a8 18 f7 64\tBlue tag 1\n" +
		"\n" +
		"8\t0xde:0xad:0xbe:0xef\n" +
		"9\t04798aead16481\tSticker 9\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if reg.Len() != 3 {
		t.Fatalf("Expected 3 records, got %d", reg.Len())
	}

	rec, ok := reg.Match(UID{0xde, 0xad, 0xbe, 0xef})
	if !ok || rec.ID != 8 || rec.Label != "" {
		t.Errorf("Expected tag 8 without label, got %+v (found=%v)", rec, ok)
	}
	rec, ok = reg.Match(UID{0x04, 0x79, 0x8a, 0xea, 0xd1, 0x64, 0x81})
	if !ok || rec.Label != "Sticker 9" {
		t.Errorf("Expected Sticker 9, got %+v (found=%v)", rec, ok)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"no uid":        "1\n",
		"bad id":        "one\t01 02\n",
		"bad uid":       "1\tzz zz\n",
		"duplicate uid": "1\t01 02\n2\t0102\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".tsv")
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFile(path); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.tsv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteFile_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.tsv")
	if err := WriteFile(path, Default()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	reg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	for _, want := range DefaultRecords() {
		got, ok := reg.Lookup(want.ID)
		if !ok {
			t.Errorf("tag %d missing after reload", want.ID)
			continue
		}
		if got.UID.Hex() != want.UID.Hex() || got.Label != want.Label {
			t.Errorf("tag %d: got %s %q, want %s %q", want.ID, got.UID.Hex(), got.Label, want.UID.Hex(), want.Label)
		}
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}

func TestWriteFile_FailureRemovesTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tags.tsv")
	// A non-empty directory at path makes the rename fail.
	if err := os.MkdirAll(filepath.Join(path, "keep"), 0755); err != nil {
		t.Fatal(err)
	}

	if err := WriteFile(path, Default()); err == nil {
		t.Fatal("Expected rename error")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("Expected temp file removed, stat: %v", err)
	}
}
