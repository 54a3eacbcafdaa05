package disc

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rabidaudio/audiocd"
)

// Reader is the drive capability the session depends on. Implementations
// own the device handle; Close releases it.
type Reader interface {
	// ReadTOC reads the table of contents. Fatal on failure.
	ReadTOC(ctx context.Context) (*TOC, error)
	// TrackAudio returns a reader over the raw CD-DA audio of one track
	// (44.1 kHz, 16-bit little-endian, stereo). Only one track reader may
	// be active at a time; the drive has a single read head.
	TrackAudio(ctx context.Context, desc TrackDescriptor) (io.ReadCloser, error)
	Close() error
}

// driveReader reads audio CDs through libcdio-paranoia.
type driveReader struct {
	device string

	mu     sync.Mutex
	cd     *audiocd.AudioCD
	inUse  bool
	closed bool
}

// NewReader returns a Reader for the optical drive at device.
func NewReader(device string) Reader {
	return &driveReader{device: device}
}

func (r *driveReader) open() (*audiocd.AudioCD, error) {
	if r.closed {
		return nil, fmt.Errorf("drive reader closed")
	}
	if r.cd != nil {
		return r.cd, nil
	}
	cd := &audiocd.AudioCD{Device: r.device}
	if err := cd.Open(); err != nil {
		return nil, NewError(NoDisc, fmt.Errorf("open %s: %w", r.device, err))
	}
	r.cd = cd
	return cd, nil
}

func (r *driveReader) ReadTOC(ctx context.Context) (*TOC, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cd, err := r.open()
	if err != nil {
		return nil, err
	}

	entries := cd.TOC()
	toc := &TOC{Tracks: make([]TrackDescriptor, 0, len(entries))}
	for _, entry := range entries {
		toc.Tracks = append(toc.Tracks, TrackDescriptor{
			Number:        int(entry.TrackNum),
			StartSector:   int(entry.StartSector),
			LengthSectors: int(entry.LengthSectors),
		})
	}
	if len(toc.Tracks) > 0 {
		last := toc.Tracks[len(toc.Tracks)-1]
		toc.LeadOutSector = last.StartSector + last.LengthSectors
	}
	if err := toc.Validate(); err != nil {
		return nil, NewError(UnreadableTOC, err)
	}
	return toc, nil
}

func (r *driveReader) TrackAudio(ctx context.Context, desc TrackDescriptor) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.inUse {
		return nil, fmt.Errorf("drive busy: a track reader is already active")
	}
	cd, err := r.open()
	if err != nil {
		return nil, err
	}
	if _, err := cd.SeekToSector(desc.StartSector); err != nil {
		return nil, NewError(IoError, fmt.Errorf("seek to sector %d: %w", desc.StartSector, err))
	}
	r.inUse = true
	limit := int64(desc.LengthSectors) * int64(audiocd.BytesPerSector)
	return &trackAudioReader{
		parent: r,
		inner:  io.LimitReader(cd, limit),
	}, nil
}

func (r *driveReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	if r.cd == nil {
		return nil
	}
	cd := r.cd
	r.cd = nil
	if err := cd.Close(); err != nil {
		return NewError(IoError, err)
	}
	return nil
}

type trackAudioReader struct {
	parent *driveReader
	inner  io.Reader
	done   bool
}

func (t *trackAudioReader) Read(p []byte) (int, error) {
	n, err := t.inner.Read(p)
	if err != nil && err != io.EOF {
		err = NewError(IoError, err)
	}
	return n, err
}

func (t *trackAudioReader) Close() error {
	if t.done {
		return nil
	}
	t.done = true
	t.parent.mu.Lock()
	t.parent.inUse = false
	t.parent.mu.Unlock()
	return nil
}
