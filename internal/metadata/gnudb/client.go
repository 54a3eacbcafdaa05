package gnudb

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
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
	"platter/internal/textutil"
)

// Client speaks the CDDB protocol against a gnudb cddb.cgi endpoint.
type Client struct {
	endpoint   string
	hello      string
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

// New creates a gnudb client. The hello string identifies the client to
// the server per CDDB convention: "user host app version". appName may be
// "name version", "name/version", or a bare name; it is normalized so the
// hello always carries exactly four tokens, which cddb.cgi servers require.
func New(endpoint, appName string, timeout time.Duration, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("gnudb endpoint required")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	client := &Client{
		endpoint:   endpoint,
		hello:      "anonymous localhost " + helloIdentity(appName),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// helloIdentity reduces an application identity to the "name version"
// pair the hello needs. Extra tokens are dropped; a missing version falls
// back to "0.1".
func helloIdentity(appName string) string {
	fields := strings.Fields(strings.ReplaceAll(appName, "/", " "))
	switch len(fields) {
	case 0:
		return "platter 0.1"
	case 1:
		return fields[0] + " 0.1"
	default:
		return fields[0] + " " + fields[1]
	}
}

var _ metadata.LookupSource = (*Client)(nil)

// Name identifies the source in logs.
func (c *Client) Name() string { return "gnudb" }

// Lookup runs the two-step CDDB exchange: query for matches, read the
// first one.
func (c *Client) Lookup(ctx context.Context, fp discid.Fingerprint, toc *disc.TOC) (*metadata.Candidate, error) {
	genre, id, err := c.query(ctx, fp, toc)
	if err != nil {
		return nil, err
	}
	return c.read(ctx, genre, id, toc)
}

// query issues "cddb query" and returns the genre and disc ID of the
// first match.
func (c *Client) query(ctx context.Context, fp discid.Fingerprint, toc *disc.TOC) (string, string, error) {
	parts := []string{"cddb", "query", fp.FreeDB, strconv.Itoa(toc.TrackCount())}
	for _, tr := range toc.Tracks {
		parts = append(parts, strconv.Itoa(tr.OffsetFrames()))
	}
	totalSeconds := toc.LeadOutFrames() / disc.SectorsPerSecond
	parts = append(parts, strconv.Itoa(totalSeconds))

	lines, err := c.command(ctx, strings.Join(parts, " "))
	if err != nil {
		return "", "", err
	}
	if len(lines) == 0 {
		return "", "", services.Wrap(services.ErrTransient, "gnudb", "query", "empty response", nil)
	}

	code, rest, _ := strings.Cut(lines[0], " ")
	switch code {
	case "200":
		// Exact match: "200 genre discid title".
		fields := strings.Fields(rest)
		if len(fields) < 2 {
			return "", "", services.Wrap(services.ErrTransient, "gnudb", "query", "malformed match line", nil)
		}
		return fields[0], fields[1], nil
	case "210", "211":
		// Multiple matches, one per following line; take the first.
		if len(lines) < 2 {
			return "", "", services.Wrap(services.ErrNotFound, "gnudb", "query", "match list empty", nil)
		}
		fields := strings.Fields(lines[1])
		if len(fields) < 2 {
			return "", "", services.Wrap(services.ErrTransient, "gnudb", "query", "malformed match line", nil)
		}
		return fields[0], fields[1], nil
	case "202":
		return "", "", services.Wrap(services.ErrNotFound, "gnudb", "query", "no match for disc id", nil)
	default:
		return "", "", services.Wrap(services.ErrTransient, "gnudb", "query",
			fmt.Sprintf("unexpected status %s", code), nil)
	}
}

// read issues "cddb read" and parses the database record.
func (c *Client) read(ctx context.Context, genre, id string, toc *disc.TOC) (*metadata.Candidate, error) {
	lines, err := c.command(ctx, fmt.Sprintf("cddb read %s %s", genre, id))
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 || !strings.HasPrefix(lines[0], "210") {
		return nil, services.Wrap(services.ErrNotFound, "gnudb", "read", "record unavailable", nil)
	}
	return parseRecord(lines[1:], genre, toc)
}

// command performs one CDDB-over-HTTP request and returns response lines
// up to the "." terminator.
func (c *Client) command(ctx context.Context, cmd string) ([]string, error) {
	query := url.Values{}
	query.Set("cmd", cmd)
	query.Set("hello", c.hello)
	query.Set("proto", "6")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "gnudb", "build request", "", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "gnudb", "request", "service unreachable", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, services.Wrap(services.ErrTransient, "gnudb", "request",
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var lines []string
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "." {
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, services.Wrap(services.ErrTransient, "gnudb", "read response", "", err)
	}
	return lines, nil
}

// parseRecord maps a CDDB database record onto the TOC. Track titles come
// from TTITLEn keys; the artist/title split follows the "Artist / Title"
// DTITLE convention.
func parseRecord(lines []string, genre string, toc *disc.TOC) (*metadata.Candidate, error) {
	candidate := &metadata.Candidate{
		Genre:  genre,
		Source: album.SourceGnudb,
		Tracks: make([]metadata.CandidateTrack, toc.TrackCount()),
	}

	var dtitle strings.Builder
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch {
		case key == "DTITLE":
			// DTITLE may continue across lines; fragments concatenate.
			dtitle.WriteString(value)
		case key == "DYEAR":
			if year, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
				candidate.Year = year
			}
		case key == "DGENRE":
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				candidate.Genre = trimmed
			}
		case strings.HasPrefix(key, "TTITLE"):
			index, err := strconv.Atoi(strings.TrimPrefix(key, "TTITLE"))
			if err != nil || index < 0 || index >= len(candidate.Tracks) {
				continue
			}
			candidate.Tracks[index].Title += value
		}
	}

	artist, title, ok := strings.Cut(dtitle.String(), " / ")
	if !ok {
		// Self-titled records collapse artist and title.
		artist = dtitle.String()
		title = artist
	}
	candidate.Artist = textutil.NormalizeShoutingCase(artist)
	candidate.Album = textutil.NormalizeShoutingCase(title)
	if candidate.Album == "" {
		return nil, services.Wrap(services.ErrTransient, "gnudb", "parse record", "record has no DTITLE", nil)
	}
	for i := range candidate.Tracks {
		candidate.Tracks[i].Title = textutil.NormalizeShoutingCase(candidate.Tracks[i].Title)
	}
	return candidate, nil
}
