package encoding

// codecArgs maps a format and quality tier onto ffmpeg codec flags. WAV
// output needs no codec flags because the extracted audio is already PCM.
func codecArgs(format Format, quality Quality) []string {
	switch format {
	case FormatMP3:
		return []string{"-codec:a", "libmp3lame", "-b:a", pick(quality, "128k", "192k", "320k")}
	case FormatOGG:
		return []string{"-codec:a", "libvorbis", "-q:a", pick(quality, "2", "5", "8")}
	case FormatOpus:
		return []string{"-codec:a", "libopus", "-b:a", pick(quality, "64k", "128k", "192k")}
	case FormatFLAC:
		return []string{"-codec:a", "flac", "-compression_level", pick(quality, "2", "5", "8")}
	default:
		return nil
	}
}

func pick(quality Quality, low, medium, high string) string {
	switch quality {
	case QualityLow:
		return low
	case QualityHigh:
		return high
	default:
		return medium
	}
}
