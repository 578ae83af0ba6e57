package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ytpicker/internal/core/domain"
)

// ErrVideoNotFound is returned by "youtube video" for unknown ids.
var ErrVideoNotFound = errors.New("video not found")

var (
	searchMax  int
	searchJSON bool
	videoLabel bool
	videoJSON  bool
)

var youtubeCmd = &cobra.Command{
	Use:   "youtube",
	Short: "Search the channel and inspect videos",
}

var youtubeSearchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search videos of the configured channel",
	Long: `Searches the configured channel for videos matching the term.
Results are printed in relevance order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runYouTubeSearch,
}

var youtubeVideoCmd = &cobra.Command{
	Use:   "video [id]",
	Short: "Show details and embed code of a video",
	Long: `Looks up a video by id. Lookups are cached permanently, including
unknown ids; use "ytpicker cache forget" to drop an entry.`,
	Args: cobra.ExactArgs(1),
	RunE: runYouTubeVideo,
}

var youtubeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the YouTube integration is ready",
	RunE:  runYouTubeStatus,
}

func init() {
	youtubeSearchCmd.Flags().IntVarP(&searchMax, "max", "n", domain.DefaultMaxResults, "maximum number of results")
	youtubeSearchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	youtubeVideoCmd.Flags().BoolVar(&videoLabel, "label", false, "print only the picker label")
	youtubeVideoCmd.Flags().BoolVar(&videoJSON, "json", false, "output details as JSON")

	youtubeCmd.AddCommand(youtubeSearchCmd)
	youtubeCmd.AddCommand(youtubeVideoCmd)
	youtubeCmd.AddCommand(youtubeStatusCmd)
	rootCmd.AddCommand(youtubeCmd)
}

func runYouTubeSearch(cmd *cobra.Command, args []string) error {
	s, err := loadServices(cmd)
	if err != nil {
		return err
	}

	term := strings.Join(args, " ")
	result := s.Videos.SearchVideos(cmd.Context(), term, searchMax)
	if result.Failed() {
		return fmt.Errorf("search failed: %s", result.Error)
	}

	if searchJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(result.Videos) == 0 {
		cmd.Println("No videos found.")
		return nil
	}
	for i, v := range result.Videos {
		cmd.Printf("[%d] %s (%s)\n", i+1, v.Title, v.ID)
	}
	return nil
}

func runYouTubeVideo(cmd *cobra.Command, args []string) error {
	s, err := loadServices(cmd)
	if err != nil {
		return err
	}
	id := strings.TrimSpace(args[0])

	if videoLabel {
		cmd.Println(s.Videos.GetVideoLabel(cmd.Context(), id))
		return nil
	}

	detail := s.Videos.GetVideoDetails(cmd.Context(), id)
	if detail == nil {
		return fmt.Errorf("%w: %s", ErrVideoNotFound, id)
	}

	if videoJSON {
		data, err := json.MarshalIndent(detail, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal video: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Title:      %s\n", detail.Title)
	cmd.Printf("ID:         %s\n", detail.ID)
	if !detail.PublishedAt.IsZero() {
		cmd.Printf("Published:  %s\n", detail.PublishedAt.Format("2006-01-02"))
	}
	if detail.ThumbnailURL != "" {
		cmd.Printf("Thumbnail:  %s\n", detail.ThumbnailURL)
	}
	cmd.Printf("Embed URL:  %s\n", detail.EmbedURL)
	cmd.Printf("Embed HTML: %s\n", detail.EmbedHTML)
	if detail.Description != "" {
		cmd.Println()
		cmd.Println(detail.Description)
	}
	return nil
}

func runYouTubeStatus(cmd *cobra.Command, _ []string) error {
	s, err := loadServices(cmd)
	if err != nil {
		return err
	}

	settings := s.Settings.YouTube()
	cmd.Printf("Channel:       %s\n", orUnset(settings.ChannelID))
	cmd.Printf("Client ID:     %s\n", orUnset(settings.ClientID))
	cmd.Printf("Redirect URI:  %s\n", orUnset(settings.RedirectURI))
	cmd.Printf("Refresh token: %s\n", maskSecret(settings.RefreshToken))

	if missing := settings.Missing(); len(missing) > 0 {
		cmd.Printf("Missing:       %s\n", strings.Join(missing, ", "))
	}

	if s.Videos.Ready() {
		cmd.Println("Status:        ready")
		return nil
	}
	cmd.Println("Status:        disabled")
	if reason := s.Videos.Reason(); reason != nil {
		cmd.Printf("Reason:        %v\n", reason)
	}
	return nil
}

func orUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

func maskSecret(secret string) string {
	switch {
	case secret == "":
		return "(not set)"
	case len(secret) <= 8:
		return "****"
	default:
		return secret[:4] + "..." + secret[len(secret)-4:]
	}
}
