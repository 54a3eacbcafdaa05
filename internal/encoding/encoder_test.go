package encoding

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"platter/internal/services"
)

func TestCodecArgs(t *testing.T) {
	cases := []struct {
		format  Format
		quality Quality
		want    []string
	}{
		{FormatMP3, QualityLow, []string{"-codec:a", "libmp3lame", "-b:a", "128k"}},
		{FormatMP3, QualityMedium, []string{"-codec:a", "libmp3lame", "-b:a", "192k"}},
		{FormatMP3, QualityHigh, []string{"-codec:a", "libmp3lame", "-b:a", "320k"}},
		{FormatOGG, QualityMedium, []string{"-codec:a", "libvorbis", "-q:a", "5"}},
		{FormatOpus, QualityHigh, []string{"-codec:a", "libopus", "-b:a", "192k"}},
		{FormatFLAC, QualityLow, []string{"-codec:a", "flac", "-compression_level", "2"}},
		{FormatWAV, QualityHigh, nil},
	}
	for _, tc := range cases {
		got := codecArgs(tc.format, tc.quality)
		if strings.Join(got, " ") != strings.Join(tc.want, " ") {
			t.Errorf("codecArgs(%s, %s) = %v, want %v", tc.format, tc.quality, got, tc.want)
		}
	}
}

func TestWAVHeader(t *testing.T) {
	header := WAVHeader(1000)
	if len(header) != 44 {
		t.Fatalf("header length = %d, want 44", len(header))
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		t.Fatalf("bad magic: %q %q", header[0:4], header[8:12])
	}
	if got := binary.LittleEndian.Uint32(header[4:8]); got != 1000+36 {
		t.Errorf("riff size = %d, want %d", got, 1000+36)
	}
	if got := binary.LittleEndian.Uint16(header[22:24]); got != 2 {
		t.Errorf("channels = %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint32(header[24:28]); got != 44100 {
		t.Errorf("sample rate = %d, want 44100", got)
	}
	if got := binary.LittleEndian.Uint16(header[34:36]); got != 16 {
		t.Errorf("bits per sample = %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint32(header[40:44]); got != 1000 {
		t.Errorf("data size = %d, want 1000", got)
	}
}

func TestWriteWAV(t *testing.T) {
	pcm := bytes.Repeat([]byte{0x01, 0x02}, 1176)
	var out bytes.Buffer
	if err := WriteWAV(&out, bytes.NewReader(pcm), int64(len(pcm))); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}
	if out.Len() != 44+len(pcm) {
		t.Fatalf("output length = %d, want %d", out.Len(), 44+len(pcm))
	}
	if !bytes.Equal(out.Bytes()[44:], pcm) {
		t.Fatal("payload does not match source pcm")
	}
}

func TestWriteWAVShortSource(t *testing.T) {
	var out bytes.Buffer
	err := WriteWAV(&out, bytes.NewReader(make([]byte, 100)), 2352)
	if err == nil {
		t.Fatal("expected error for truncated pcm stream")
	}
}

func TestEncodeBuildsFFmpegCommand(t *testing.T) {
	var capturedArgs []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		capturedArgs = append([]string(nil), args...)
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "FFMPEG_HELPER_MODE=success")
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})

	enc := NewFFmpeg()
	tempDir := t.TempDir()
	req := Request{
		InputPath:  filepath.Join(tempDir, "01.wav"),
		OutputPath: filepath.Join(tempDir, "01.ogg"),
		Format:     FormatOGG,
		Quality:    QualityMedium,
		Tags:       TagSet{Title: "So Far Away", Artist: "Dire Straits", TrackNumber: 1, TrackTotal: 9},
	}
	if err := enc.Encode(context.Background(), req); err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	joined := strings.Join(capturedArgs, " ")
	for _, want := range []string{
		"-codec:a libvorbis",
		"-q:a 5",
		"-metadata title=So Far Away",
		"-metadata track=1/9",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %v", want, capturedArgs)
		}
	}
	if capturedArgs[len(capturedArgs)-1] != req.OutputPath {
		t.Errorf("output path must be the final argument, got %q", capturedArgs[len(capturedArgs)-1])
	}
}

func TestEncodeFailure(t *testing.T) {
	setHelperCommand(t, "failure")

	enc := NewFFmpeg()
	tempDir := t.TempDir()
	err := enc.Encode(context.Background(), Request{
		InputPath:  filepath.Join(tempDir, "01.wav"),
		OutputPath: filepath.Join(tempDir, "01.mp3"),
		Format:     FormatMP3,
		Quality:    QualityHigh,
	})
	if err == nil {
		t.Fatal("expected encode failure error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
}

func TestEncodeWAVCopiesWithoutFFmpeg(t *testing.T) {
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		t.Fatal("wav output must not invoke ffmpeg")
		return nil
	}
	t.Cleanup(func() {
		commandContext = original
	})

	tempDir := t.TempDir()
	input := filepath.Join(tempDir, "01.wav")
	output := filepath.Join(tempDir, "final.wav")
	payload := append(WAVHeader(4), 1, 2, 3, 4)
	if err := os.WriteFile(input, payload, 0o644); err != nil {
		t.Fatal(err)
	}

	enc := NewFFmpeg()
	if err := enc.Encode(context.Background(), Request{
		InputPath:  input,
		OutputPath: output,
		Format:     FormatWAV,
		Quality:    QualityHigh,
	}); err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	copied, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(copied, payload) {
		t.Fatal("copied wav differs from source")
	}
}

func TestLastLine(t *testing.T) {
	output := []byte("frame=  1\nsize=  2\n\nConversion failed!\n\n")
	if got := lastLine(output); got != "Conversion failed!" {
		t.Fatalf("lastLine = %q", got)
	}
	if got := lastLine(nil); got != "" {
		t.Fatalf("lastLine(nil) = %q", got)
	}
}

func setHelperCommand(t *testing.T, mode string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("FFMPEG_HELPER_MODE=%s", mode))
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("FFMPEG_HELPER_MODE") {
	case "success":
		os.Exit(0)
	case "failure":
		fmt.Fprintln(os.Stderr, "Conversion failed!")
		os.Exit(1)
	default:
		os.Exit(0)
	}
}
