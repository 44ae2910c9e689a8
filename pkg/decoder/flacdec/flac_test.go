package flacdec

import (
	"bytes"
	"testing"
	"time"

	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"

	"github.com/aulos-player/aulos/pkg/decoder"
	"github.com/aulos-player/aulos/pkg/input"
	"github.com/aulos-player/aulos/pkg/pcm"
)

func TestPluginDescriptor(t *testing.T) {
	if Plugin.Name != "flac" {
		t.Fatalf("Name = %q, want flac", Plugin.Name)
	}
	if Plugin.StreamDecode == nil || Plugin.ScanFile == nil {
		t.Fatal("descriptor is missing an entry point")
	}
	if decoder.ForSuffix("flac") != Plugin {
		t.Fatal("registry does not resolve the flac suffix to this plugin")
	}
	if decoder.ForMIME("audio/flac") != Plugin {
		t.Fatal("registry does not resolve audio/flac to this plugin")
	}
}

func TestInterleave(t *testing.T) {
	f := &frame.Frame{
		Header: frame.Header{BlockSize: 3},
		Subframes: []*frame.Subframe{
			{Samples: []int32{1, 2, 3}},
			{Samples: []int32{10, 20, 30}},
		},
	}

	got, err := interleave(f, nil)
	if err != nil {
		t.Fatalf("interleave: %v", err)
	}

	want := []int32{1, 10, 2, 20, 3, 30}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestInterleaveReusesBuffer(t *testing.T) {
	f := &frame.Frame{
		Header:    frame.Header{BlockSize: 2},
		Subframes: []*frame.Subframe{{Samples: []int32{7, 8}}},
	}

	buf := make([]int32, 16)
	got, err := interleave(f, buf)
	if err != nil {
		t.Fatalf("interleave: %v", err)
	}
	if &got[0] != &buf[0] {
		t.Fatal("interleave reallocated a sufficient buffer")
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
}

func TestInterleaveShortSubframe(t *testing.T) {
	f := &frame.Frame{
		Header: frame.Header{BlockSize: 4},
		Subframes: []*frame.Subframe{
			{Samples: []int32{1, 2, 3, 4}},
			{Samples: []int32{1, 2}},
		},
	}

	if _, err := interleave(f, nil); err == nil {
		t.Fatal("short subframe not detected")
	}
}

func TestSampleFormats(t *testing.T) {
	cases := map[uint8]pcm.SampleFormat{
		8:  pcm.SampleFormatS8,
		16: pcm.SampleFormatS16,
		24: pcm.SampleFormatS24P32,
		32: pcm.SampleFormatS32,
		20: pcm.SampleFormatUndefined,
	}
	for bits, want := range cases {
		if got := flacSampleFormat(bits); got != want {
			t.Errorf("flacSampleFormat(%d) = %v, want %v", bits, got, want)
		}
	}
}

func TestStreamDuration(t *testing.T) {
	info := &meta.StreamInfo{SampleRate: 44100, NSamples: 441000}
	if d := streamDuration(info); d != 10*time.Second {
		t.Fatalf("duration = %v, want 10s", d)
	}

	// A zero sample count means the encoder did not state one.
	unstated := &meta.StreamInfo{SampleRate: 44100}
	if d := streamDuration(unstated); d >= 0 {
		t.Fatalf("duration = %v, want negative for unknown", d)
	}
}

func TestAverageKbps(t *testing.T) {
	src := input.NewMemory("x.flac", make([]byte, 125000)) // one megabit
	if got := averageKbps(src, time.Second); got != 1000 {
		t.Fatalf("kbps = %d, want 1000", got)
	}

	pipe := input.NewReader("pipe", bytes.NewReader(nil))
	if got := averageKbps(pipe, time.Second); got != 0 {
		t.Fatalf("kbps = %d for an unsized source, want 0", got)
	}
	if got := averageKbps(src, -1); got != 0 {
		t.Fatalf("kbps = %d for an unknown duration, want 0", got)
	}
}
