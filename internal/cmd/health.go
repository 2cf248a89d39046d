package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/buildadvisor/pkg/healthcheck"
)

var healthURL string

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe a running serve or bot process (for Docker HEALTHCHECK)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		url := healthURL
		if url == "" {
			cfg, err := loadConfig("")
			if err != nil {
				return err
			}
			url = localURL(cfg.HealthAddr) + "/health"
		}
		return healthcheck.Probe(url)
	},
}

func init() {
	healthCmd.Flags().StringVar(&healthURL, "url", "", "URL to probe (default HEALTH_ADDR on localhost)")
	rootCmd.AddCommand(healthCmd)
}

// localURL turns a listen address such as ":8080" into a local URL.
func localURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
