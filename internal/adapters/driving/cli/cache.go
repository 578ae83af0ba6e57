package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ytpicker/internal/core/services"
)

var cacheClearAll bool

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached video lookups and tokens",
}

var cacheForgetCmd = &cobra.Command{
	Use:   "forget [videoId]",
	Short: "Drop the cached lookup of one video",
	Long: `Video lookups are cached permanently, including unknown ids. Forget
drops the entry so the next lookup asks YouTube again.`,
	Args: cobra.ExactArgs(1),
	RunE: runCacheForget,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached video lookup",
	Long: `Drops every cached video lookup. With --all the cached access token is
dropped too and will be refreshed on next use.`,
	Args: cobra.NoArgs,
	RunE: runCacheClear,
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete expired entries from the persistent cache",
	Args:  cobra.NoArgs,
	RunE:  runCachePrune,
}

func init() {
	cacheClearCmd.Flags().BoolVar(&cacheClearAll, "all", false, "also drop the cached access token")

	cacheCmd.AddCommand(cacheForgetCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cachePruneCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheForget(cmd *cobra.Command, args []string) error {
	s, err := loadServices(cmd)
	if err != nil {
		return err
	}

	id := strings.TrimSpace(args[0])
	if err := s.Cache.Forget(cmd.Context(), services.VideoCacheKey(id)); err != nil {
		return err
	}
	cmd.Printf("Forgot cached lookup of %s\n", id)
	return nil
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	s, err := loadServices(cmd)
	if err != nil {
		return err
	}

	prefix := services.VideoCachePrefix
	if cacheClearAll {
		prefix = ""
	}
	if err := s.Cache.Clear(cmd.Context(), prefix); err != nil {
		return err
	}

	if cacheClearAll {
		cmd.Println("Cache cleared.")
	} else {
		cmd.Println("Video lookups cleared.")
	}
	return nil
}

func runCachePrune(cmd *cobra.Command, _ []string) error {
	s, err := loadServices(cmd)
	if err != nil {
		return err
	}
	if s.Prune == nil {
		cmd.Println("Nothing to prune: the cache is not persistent.")
		return nil
	}

	n, err := s.Prune(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Printf("Pruned %d expired entries.\n", n)
	return nil
}
