package domain

import (
	"fmt"
	"html"
	"net/url"
	"time"
)

// VideoNotFoundLabel is shown when a previously chosen video cannot be resolved.
const VideoNotFoundLabel = "Vídeo não encontrado"

// VideoSummary is a single search hit.
type VideoSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// VideoSnippet is the remote projection of a video as returned by the
// platform, before any embed data is derived.
type VideoSnippet struct {
	ID           string
	Title        string
	Description  string
	PublishedAt  time.Time
	ThumbnailURL string
}

// VideoDetail is the cached, embeddable view of a video.
type VideoDetail struct {
	ID           string    `json:"video_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	PublishedAt  time.Time `json:"published_at"`
	ThumbnailURL string    `json:"thumbnail_url"`
	EmbedURL     string    `json:"embed_url"`
	EmbedHTML    string    `json:"embed_html"`
}

// NewVideoDetail derives embed data for snippet. appURL is the public base
// URL of this application and is passed to the player as its origin.
func NewVideoDetail(snippet VideoSnippet, appURL string) VideoDetail {
	embedURL := EmbedURL(snippet.ID, appURL)
	return VideoDetail{
		ID:           snippet.ID,
		Title:        snippet.Title,
		Description:  snippet.Description,
		PublishedAt:  snippet.PublishedAt,
		ThumbnailURL: snippet.ThumbnailURL,
		EmbedURL:     embedURL,
		EmbedHTML:    EmbedHTML(embedURL, snippet.Title),
	}
}

// EmbedURL returns the player URL for videoID.
func EmbedURL(videoID, appURL string) string {
	q := url.Values{}
	if appURL != "" {
		q.Set("origin", appURL)
	}
	q.Set("rel", "0")
	q.Set("modestbranding", "1")
	return "https://www.youtube.com/embed/" + url.PathEscape(videoID) + "?" + q.Encode()
}

// EmbedHTML returns an iframe snippet for embedURL; title is HTML-escaped.
func EmbedHTML(embedURL, title string) string {
	return fmt.Sprintf(
		`<iframe width="560" height="315" src="%s" title="%s" frameborder="0" `+
			`allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture" `+
			`allowfullscreen></iframe>`,
		html.EscapeString(embedURL), html.EscapeString(title))
}
