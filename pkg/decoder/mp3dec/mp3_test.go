package mp3dec

import (
	"testing"
	"time"

	"github.com/aulos-player/aulos/pkg/decoder"
)

func TestPCMDuration(t *testing.T) {
	// 441000 stereo frames at 44.1 kHz are ten seconds.
	if d := pcmDuration(441000*frameBytes, 44100); d != 10*time.Second {
		t.Fatalf("duration = %v, want 10s", d)
	}

	if d := pcmDuration(-1, 44100); d >= 0 {
		t.Fatalf("duration = %v for an unknown length, want negative", d)
	}
	if d := pcmDuration(1000, 0); d >= 0 {
		t.Fatalf("duration = %v for a zero rate, want negative", d)
	}
}

func TestPCMDurationSubSecond(t *testing.T) {
	// Half a second of frames must not round away.
	if d := pcmDuration(22050*frameBytes, 44100); d != 500*time.Millisecond {
		t.Fatalf("duration = %v, want 500ms", d)
	}
}

func TestPluginClaims(t *testing.T) {
	if Plugin.Name != "mp3" {
		t.Fatalf("Name = %q, want mp3", Plugin.Name)
	}
	if !Plugin.SupportsSuffix("mp3") || !Plugin.SupportsSuffix("MP3") {
		t.Fatal("mp3 suffix not claimed")
	}
	if !Plugin.SupportsMIME("audio/mpeg") {
		t.Fatal("audio/mpeg not claimed")
	}
	if Plugin.SupportsSuffix("wv") {
		t.Fatal("foreign suffix claimed")
	}
	if decoder.ForSuffix("mp3") != Plugin {
		t.Fatal("registry does not resolve the mp3 suffix to this plugin")
	}
}
