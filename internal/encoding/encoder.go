package encoding

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"platter/internal/services"
)

var commandContext = exec.CommandContext

// Request describes one track conversion from extracted WAV to the final
// output file.
type Request struct {
	InputPath  string
	OutputPath string
	Format     Format
	Quality    Quality
	Tags       TagSet
}

// Encoder converts an extracted track into its output format.
type Encoder interface {
	Encode(ctx context.Context, req Request) error
}

// Option configures the ffmpeg encoder.
type Option func(*FFmpeg)

// WithBinary overrides the default ffmpeg binary name.
func WithBinary(binary string) Option {
	return func(f *FFmpeg) {
		if binary != "" {
			f.binary = binary
		}
	}
}

// FFmpeg shells out to ffmpeg for lossy and FLAC conversions. WAV output
// skips ffmpeg entirely because the extracted audio already is WAV.
type FFmpeg struct {
	binary string
}

// NewFFmpeg constructs an encoder using defaults.
func NewFFmpeg(opts ...Option) *FFmpeg {
	enc := &FFmpeg{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(enc)
	}
	return enc
}

// Encode converts req.InputPath into req.OutputPath. Vorbis and Opus tags
// are passed on the command line; MP3 and FLAC files are tagged afterwards
// by Tag, which talks to the container formats directly.
func (f *FFmpeg) Encode(ctx context.Context, req Request) error {
	if req.InputPath == "" {
		return errors.New("input path required")
	}
	if req.OutputPath == "" {
		return errors.New("output path required")
	}
	if req.Format == FormatWAV {
		return copyFile(req.InputPath, req.OutputPath)
	}

	args := []string{"-hide_banner", "-nostdin", "-y", "-i", req.InputPath}
	args = append(args, codecArgs(req.Format, req.Quality)...)
	if req.Format == FormatOGG || req.Format == FormatOpus {
		args = append(args, metadataArgs(req.Tags)...)
	}
	args = append(args, req.OutputPath)

	cmd := commandContext(ctx, f.binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		return services.Wrap(
			services.ErrExternalTool,
			"encoding",
			"ffmpeg encode",
			"ffmpeg failed; confirm the binary path in config and that the target codec is compiled in",
			fmt.Errorf("%w: %s", err, lastLine(output)),
		)
	}
	return nil
}

// metadataArgs renders the tag set as -metadata flags for formats tagged
// at encode time.
func metadataArgs(t TagSet) []string {
	var args []string
	add := func(key, value string) {
		if value != "" {
			args = append(args, "-metadata", key+"="+value)
		}
	}
	add("title", t.Title)
	add("artist", t.Artist)
	add("album", t.Album)
	add("album_artist", t.AlbumArtist)
	add("genre", t.Genre)
	add("composer", t.Composer)
	if t.Year > 0 {
		add("date", strconv.Itoa(t.Year))
	}
	if t.TrackNumber > 0 {
		track := strconv.Itoa(t.TrackNumber)
		if t.TrackTotal > 0 {
			track = fmt.Sprintf("%d/%d", t.TrackNumber, t.TrackTotal)
		}
		add("track", track)
	}
	return args
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy audio: %w", err)
	}
	return out.Close()
}

// lastLine extracts the final non-empty line of tool output, which is
// where ffmpeg reports its error.
func lastLine(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

var _ Encoder = (*FFmpeg)(nil)
