// cmd/console/root.go
package main

import (
	"os"
	"path/filepath"

	"shipment-tracking-api-server/internal/client"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	tokenPath string
)

var rootCmd = &cobra.Command{
	Use:   "console",
	Short: "Admin console for the shipment tracking server",
	Long: `Admin console for the shipment tracking server.

Admins create and update shipment records; customers look up shipment
status by tracking ID or phone number.`,
	SilenceUsage: true,
}

func init() {
	defaultTokenPath := ".shipment-console-token"
	if home, err := os.UserHomeDir(); err == nil {
		defaultTokenPath = filepath.Join(home, ".shipment-console-token")
	}

	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:3000", "base URL of the API server")
	rootCmd.PersistentFlags().StringVar(&tokenPath, "token-file", defaultTokenPath, "file holding the admin session token")
}

// apiClient tạo client với phiên lưu trong file, giữ đăng nhập giữa các
// lần chạy CLI.
func apiClient() *client.Client {
	return client.New(serverURL, client.NewFileTokenStore(tokenPath))
}
