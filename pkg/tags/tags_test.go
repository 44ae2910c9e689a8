package tags

import (
	"os"
	"testing"
	"time"
)

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func TestBuilderCollects(t *testing.T) {
	b := NewBuilder()
	b.OnDuration(90 * time.Second)
	b.OnTag(TypeTitle, "Sirens")
	b.OnTag(TypeArtist, "The Harbour Lights")
	b.OnPair("ENCODER", "reference libwavpack 5.1")

	tag := b.Commit()
	if !tag.HasDuration() || tag.Duration != 90*time.Second {
		t.Fatalf("duration = %v, want 90s", tag.Duration)
	}
	if len(tag.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(tag.Items))
	}
	if tag.Items[0].Type != TypeTitle || tag.Items[0].Value != "Sirens" {
		t.Errorf("first item = %+v", tag.Items[0])
	}
	if len(tag.Pairs) != 1 || tag.Pairs[0].Name != "ENCODER" {
		t.Errorf("pairs = %+v", tag.Pairs)
	}
}

func TestBuilderSkipsEmptyValues(t *testing.T) {
	b := NewBuilder()
	b.OnTag(TypeTitle, "")
	if tag := b.Commit(); len(tag.Items) != 0 {
		t.Errorf("empty value was collected: %+v", tag.Items)
	}
}

func TestBuilderResetsOnCommit(t *testing.T) {
	b := NewBuilder()
	b.OnDuration(time.Second)
	b.OnTag(TypeTitle, "x")
	b.Commit()

	tag := b.Commit()
	if tag.HasDuration() {
		t.Error("duration survived Commit")
	}
	if len(tag.Items) != 0 {
		t.Errorf("items survived Commit: %+v", tag.Items)
	}
}

func TestProbeFileMissing(t *testing.T) {
	if _, err := ProbeFile("testdata/no-such-file", NewBuilder()); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestProbeFileWithoutTags(t *testing.T) {
	// A file no tag format claims: the probe reports false, not an
	// error. It must be at least 128 bytes so the ID3v1 sniff can
	// seek to the trailer it will not find.
	path := t.TempDir() + "/plain.bin"
	if err := writeFile(path, make([]byte, 256)); err != nil {
		t.Fatal(err)
	}
	found, err := ProbeFile(path, NewBuilder())
	if err != nil {
		t.Fatalf("ProbeFile: %v", err)
	}
	if found {
		t.Error("probe claimed to find tags in zero bytes")
	}
}
