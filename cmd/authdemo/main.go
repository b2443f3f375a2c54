package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	domain        string
	audience      string
	entityService string
	entityID      string
	create        bool
	addr          string
)

var rootCmd = &cobra.Command{
	Use:   "authdemo",
	Short: "Demo service gating REST endpoints behind Auth0-issued JWTs",
	Long: `authdemo exposes a small user service over REST with every route
gated by the Auth0 authentication strategy. It exists to exercise the
strategy, hooks and key cache against a real tenant.`,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&domain, "domain", "", "Auth0 tenant domain (required)")
	serveCmd.Flags().StringVar(&audience, "audience", "", "accepted token audience")
	serveCmd.Flags().StringVar(&entityService, "service", "users", "entity service name")
	serveCmd.Flags().StringVar(&entityID, "entity-id", "user_id", "entity field matched against the token subject")
	serveCmd.Flags().BoolVar(&create, "create", true, "create missing entities on first login")
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	_ = serveCmd.MarkFlagRequired("domain")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
