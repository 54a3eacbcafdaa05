package encoding

import (
	"fmt"
	"strconv"

	"github.com/bogem/id3v2/v2"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"
)

// TagSet carries the metadata written into one encoded track.
type TagSet struct {
	Album       string
	AlbumArtist string
	Artist      string
	Title       string
	Composer    string
	Genre       string
	Year        int
	TrackNumber int
	TrackTotal  int
}

// Tag writes the set into an encoded file. Vorbis and Opus streams carry
// their tags from encode time and WAV has nowhere to put them, so only MP3
// and FLAC need this second pass.
func Tag(path string, format Format, tags TagSet) error {
	switch format {
	case FormatMP3:
		return tagMP3(path, tags)
	case FormatFLAC:
		return tagFLAC(path, tags)
	default:
		return nil
	}
}

func tagMP3(path string, t TagSet) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: false})
	if err != nil {
		return fmt.Errorf("open mp3: %w", err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetVersion(4)
	tag.SetTitle(t.Title)
	tag.SetArtist(t.Artist)
	tag.SetAlbum(t.Album)
	tag.SetGenre(t.Genre)
	if t.Year > 0 {
		tag.SetYear(strconv.Itoa(t.Year))
	}
	if t.AlbumArtist != "" {
		tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, t.AlbumArtist)
	}
	if t.Composer != "" {
		tag.AddTextFrame("TCOM", id3v2.EncodingUTF8, t.Composer)
	}
	if t.TrackNumber > 0 {
		track := strconv.Itoa(t.TrackNumber)
		if t.TrackTotal > 0 {
			track = fmt.Sprintf("%d/%d", t.TrackNumber, t.TrackTotal)
		}
		tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, track)
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save mp3 tags: %w", err)
	}
	return nil
}

func tagFLAC(path string, t TagSet) error {
	file, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse flac: %w", err)
	}

	blocks := make([]*flac.MetaDataBlock, 0, len(file.Meta))
	for _, block := range file.Meta {
		if block.Type != flac.VorbisComment && block.Type != flac.Padding {
			blocks = append(blocks, block)
		}
	}

	comment := flacvorbis.New()
	add := func(name, value string) {
		if value != "" {
			comment.Add(name, value)
		}
	}
	add("TITLE", t.Title)
	add("ARTIST", t.Artist)
	add("ALBUM", t.Album)
	add("ALBUMARTIST", t.AlbumArtist)
	add("COMPOSER", t.Composer)
	add("GENRE", t.Genre)
	if t.Year > 0 {
		add("DATE", strconv.Itoa(t.Year))
	}
	if t.TrackNumber > 0 {
		add("TRACKNUMBER", strconv.Itoa(t.TrackNumber))
	}
	if t.TrackTotal > 0 {
		add("TRACKTOTAL", strconv.Itoa(t.TrackTotal))
	}

	commentBlock := comment.Marshal()
	blocks = append(blocks, &commentBlock)
	padding := flac.MetaDataBlock{Type: flac.Padding, Data: make([]byte, 64)}
	blocks = append(blocks, &padding)
	file.Meta = blocks

	if err := file.Save(path); err != nil {
		return fmt.Errorf("save flac tags: %w", err)
	}
	return nil
}
