package encoding

import "fmt"

// Format is the output container/codec written for every track of a job.
type Format string

const (
	FormatFLAC Format = "flac"
	FormatMP3  Format = "mp3"
	FormatOGG  Format = "ogg"
	FormatOpus Format = "opus"
	FormatWAV  Format = "wav"
)

// ParseFormat validates a config/CLI format string.
func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case FormatFLAC, FormatMP3, FormatOGG, FormatOpus, FormatWAV:
		return Format(value), nil
	default:
		return "", fmt.Errorf("unsupported format %q", value)
	}
}

// Extension returns the file extension for the format, dot included.
func (f Format) Extension() string {
	switch f {
	case FormatFLAC:
		return ".flac"
	case FormatMP3:
		return ".mp3"
	case FormatOGG:
		return ".ogg"
	case FormatOpus:
		return ".opus"
	case FormatWAV:
		return ".wav"
	default:
		return ""
	}
}

// Quality selects one of three fixed preset tiers. The tier-to-parameter
// mapping is global and chosen at startup; it is not tunable per format.
type Quality string

const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// ParseQuality validates a config/CLI quality string.
func ParseQuality(value string) (Quality, error) {
	switch Quality(value) {
	case QualityLow, QualityMedium, QualityHigh:
		return Quality(value), nil
	default:
		return "", fmt.Errorf("unsupported quality %q", value)
	}
}
