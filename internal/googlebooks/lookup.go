package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Lookup searches for a single volume matching title, volume and author.
// It returns nil, nil when the service answers but has no usable match: a
// non-2xx status, an empty result list, or a first result without an ISBN.
// Transport and decoding failures are returned as errors.
func (c *Client) Lookup(ctx context.Context, title, volumeID, author string) (*Record, error) {
	query := c.buildQuery(title, volumeID, author)

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", "1")
	params.Set("printType", "books")

	endpoint := fmt.Sprintf("%s/volumes?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	c.logger.Debug("Searching Google Books", "query", query)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google books request for %q: %w", title, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Debug("Google Books returned non-success status", "status", resp.StatusCode, "query", query)
		return nil, nil
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding google books response for %q: %w", title, err)
	}

	if len(result.Items) == 0 {
		return nil, nil
	}

	return recordFromVolume(result.Items[0].VolumeInfo), nil
}

// buildQuery assembles the free-text search, e.g. "Naruto- band: 1 manga by Masashi Kishimoto".
func (c *Client) buildQuery(title, volumeID, author string) string {
	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("- band: ")
	sb.WriteString(volumeID)
	if c.domainHint != "" {
		sb.WriteString(" ")
		sb.WriteString(c.domainHint)
	}
	if author != "" {
		sb.WriteString(" by ")
		sb.WriteString(author)
	}
	return sb.String()
}

func recordFromVolume(info volumeInfo) *Record {
	isbn := selectISBN(info.IndustryIdentifiers)
	if isbn == "" {
		return nil
	}

	record := &Record{
		Authors:   strings.Join(info.Authors, ", "),
		Publisher: info.Publisher,
		ISBN:      isbn,
	}
	if info.ImageLinks != nil {
		record.CoverURL = info.ImageLinks.Thumbnail
	}
	return record
}

// selectISBN prefers ISBN_13 and falls back to ISBN_10.
func selectISBN(ids []industryIdentifier) string {
	for _, want := range []string{IdentifierISBN13, IdentifierISBN10} {
		for _, id := range ids {
			if id.Type == want && id.Identifier != "" {
				return id.Identifier
			}
		}
	}
	return ""
}
