package encoding

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/rabidaudio/audiocd"
)

// wavHeaderSize is the canonical RIFF header length for PCM audio.
const wavHeaderSize = 44

// WAVHeader builds the RIFF header for a CD audio PCM stream of the given
// payload size. The stream parameters are fixed by the CD audio format:
// 44100 Hz, two channels, sixteen bits per sample.
func WAVHeader(dataBytes uint32) []byte {
	b := make([]byte, wavHeaderSize)
	copy(b[0:4], "RIFF")
	binary.LittleEndian.PutUint32(b[4:8], dataBytes+wavHeaderSize-8)
	copy(b[8:12], "WAVE")
	copy(b[12:16], "fmt ")
	binary.LittleEndian.PutUint32(b[16:20], 16)
	binary.LittleEndian.PutUint16(b[20:22], 1)
	binary.LittleEndian.PutUint16(b[22:24], audiocd.Channels)
	binary.LittleEndian.PutUint32(b[24:28], audiocd.SampleRate)
	binary.LittleEndian.PutUint32(b[28:32], audiocd.SampleRate*audiocd.Channels*audiocd.BytesPerSample)
	binary.LittleEndian.PutUint16(b[32:34], audiocd.Channels*audiocd.BytesPerSample)
	binary.LittleEndian.PutUint16(b[34:36], audiocd.BitsPerSample)
	copy(b[36:40], "data")
	binary.LittleEndian.PutUint32(b[40:44], dataBytes)
	return b
}

// WriteWAV streams exactly dataBytes of raw PCM from pcm into w, header
// first. A short source is an error: a truncated track must not look like
// a successful extraction.
func WriteWAV(w io.Writer, pcm io.Reader, dataBytes int64) error {
	if dataBytes < 0 {
		return fmt.Errorf("negative payload size %d", dataBytes)
	}
	if _, err := w.Write(WAVHeader(uint32(dataBytes))); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}
	n, err := io.Copy(w, io.LimitReader(pcm, dataBytes))
	if err != nil {
		return fmt.Errorf("copy pcm: %w", err)
	}
	if n != dataBytes {
		return fmt.Errorf("short pcm stream: %d of %d bytes", n, dataBytes)
	}
	return nil
}
