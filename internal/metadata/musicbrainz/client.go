package musicbrainz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"platter/internal/album"
	"platter/internal/disc"
	"platter/internal/disc/discid"
	"platter/internal/metadata"
	"platter/internal/services"
)

// release models the subset of the ws/2 release payload we read.
type release struct {
	Title        string         `json:"title"`
	Date         string         `json:"date"`
	ArtistCredit []artistCredit `json:"artist-credit"`
	Media        []medium       `json:"media"`
}

type artistCredit struct {
	Name string `json:"name"`
}

type medium struct {
	Discs  []mediumDisc `json:"discs"`
	Tracks []track      `json:"tracks"`
}

type mediumDisc struct {
	ID string `json:"id"`
}

type track struct {
	Position     int            `json:"position"`
	Title        string         `json:"title"`
	ArtistCredit []artistCredit `json:"artist-credit"`
	Recording    *recording     `json:"recording"`
}

type recording struct {
	Title string `json:"title"`
}

type discIDResponse struct {
	Releases []release `json:"releases"`
}

// Client queries the MusicBrainz ws/2 API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a MusicBrainz client. MusicBrainz requires a meaningful
// User-Agent; requests without one are throttled.
func New(baseURL, userAgent string, timeout time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("musicbrainz base url required")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  strings.TrimSpace(userAgent),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

var _ metadata.LookupSource = (*Client)(nil)

// Name identifies the source in logs.
func (c *Client) Name() string { return "musicbrainz" }

// Lookup fetches releases for the disc ID and maps the first one onto the
// TOC. A 404 from the service means the disc is unknown.
func (c *Client) Lookup(ctx context.Context, fp discid.Fingerprint, toc *disc.TOC) (*metadata.Candidate, error) {
	query := url.Values{}
	query.Set("fmt", "json")
	query.Set("inc", "recordings artist-credits")
	endpoint := fmt.Sprintf("%s/discid/%s?%s", c.baseURL, url.PathEscape(fp.MusicBrainz), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "musicbrainz", "build request", "", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "musicbrainz", "lookup", "service unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, services.Wrap(services.ErrNotFound, "musicbrainz", "lookup", "disc id unknown", nil)
	case resp.StatusCode != http.StatusOK:
		return nil, services.Wrap(services.ErrTransient, "musicbrainz", "lookup",
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var payload discIDResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, services.Wrap(services.ErrTransient, "musicbrainz", "decode response", "", err)
	}
	if len(payload.Releases) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "musicbrainz", "lookup", "no releases for disc id", nil)
	}

	// First release only: no disambiguation among matches.
	return mapRelease(payload.Releases[0], fp, toc)
}

func mapRelease(rel release, fp discid.Fingerprint, toc *disc.TOC) (*metadata.Candidate, error) {
	med, ok := pickMedium(rel.Media, fp.MusicBrainz, toc.TrackCount())
	if !ok {
		return nil, services.Wrap(services.ErrNotFound, "musicbrainz", "map release", "no medium matches the disc", nil)
	}

	candidate := &metadata.Candidate{
		Album:  rel.Title,
		Artist: creditName(rel.ArtistCredit),
		Year:   parseYear(rel.Date),
		Source: album.SourceMusicBrainz,
		Tracks: make([]metadata.CandidateTrack, toc.TrackCount()),
	}
	for _, tr := range med.Tracks {
		if tr.Position < 1 || tr.Position > len(candidate.Tracks) {
			continue
		}
		title := tr.Title
		if title == "" && tr.Recording != nil {
			title = tr.Recording.Title
		}
		candidate.Tracks[tr.Position-1] = metadata.CandidateTrack{
			Title:  title,
			Artist: creditName(tr.ArtistCredit),
		}
	}
	return candidate, nil
}

// pickMedium finds the medium for our physical disc inside a multi-disc
// release: prefer an explicit disc ID match, then a track count match,
// then give up.
func pickMedium(media []medium, mbID string, trackCount int) (medium, bool) {
	for _, m := range media {
		for _, d := range m.Discs {
			if d.ID == mbID {
				return m, true
			}
		}
	}
	for _, m := range media {
		if len(m.Tracks) == trackCount {
			return m, true
		}
	}
	return medium{}, false
}

func creditName(credits []artistCredit) string {
	if len(credits) == 0 {
		return ""
	}
	return credits[0].Name
}

func parseYear(date string) int {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
