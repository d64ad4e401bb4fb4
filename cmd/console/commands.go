// cmd/console/commands.go
package main

import (
	"fmt"
	"strings"
	"time"

	"shipment-tracking-api-server/internal/client"
	"shipment-tracking-api-server/internal/console"
	"shipment-tracking-api-server/internal/models"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(
		registerCmd(),
		loginCmd(),
		logoutCmd(),
		createCmd(),
		updateCmd(),
		trackCmd(),
		lookupCmd(),
		recentCmd(),
		watchCmd(),
		dashboardCmd(),
	)
}

func registerCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register the admin account (run once)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient().Register(cmd.Context(), email, password); err != nil {
				return err
			}
			fmt.Println("Admin registered successfully")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient().Login(cmd.Context(), email, password); err != nil {
				return err
			}
			fmt.Println("Login successful")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return apiClient().Logout()
		},
	}
}

func createCmd() *cobra.Command {
	var trackingID, name, phone, location, status, eta string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new shipment",
		RunE: func(cmd *cobra.Command, args []string) error {
			if trackingID == "" {
				// Gợi ý một mã vận đơn khi admin không tự đặt.
				trackingID = "TRK-" + strings.ToUpper(uuid.New().String()[:8])
			}
			input := client.CreateShipmentInput{
				TrackingID:      trackingID,
				CustomerName:    name,
				CustomerPhone:   phone,
				CurrentLocation: location,
				Status:          status,
			}
			if eta != "" {
				parsed, err := time.Parse(console.DateOnly, eta)
				if err != nil {
					return fmt.Errorf("invalid --eta %q, want YYYY-MM-DD", eta)
				}
				input.EstimatedDelivery = &parsed
			}

			resp, err := apiClient().CreateShipment(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Println(resp.Message)
			printShipment(resp.Shipment)
			return nil
		},
	}
	cmd.Flags().StringVar(&trackingID, "tracking", "", "tracking ID (generated when omitted)")
	cmd.Flags().StringVar(&name, "name", "", "customer name")
	cmd.Flags().StringVar(&phone, "phone", "", "customer phone")
	cmd.Flags().StringVar(&location, "location", "", "current location (default Warehouse)")
	cmd.Flags().StringVar(&status, "status", "", "initial status (default Pending)")
	cmd.Flags().StringVar(&eta, "eta", "", "estimated delivery, YYYY-MM-DD")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("phone")
	return cmd
}

func updateCmd() *cobra.Command {
	var name, phone, location, status, eta string
	cmd := &cobra.Command{
		Use:   "update <trackingId>",
		Short: "Apply a partial update to a shipment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := models.ShipmentPatch{}
			if cmd.Flags().Changed("name") {
				patch.CustomerName = &name
			}
			if cmd.Flags().Changed("phone") {
				patch.CustomerPhone = &phone
			}
			if cmd.Flags().Changed("location") {
				patch.CurrentLocation = &location
			}
			if cmd.Flags().Changed("status") {
				patch.Status = &status
			}
			if cmd.Flags().Changed("eta") {
				parsed, err := time.Parse(console.DateOnly, eta)
				if err != nil {
					return fmt.Errorf("invalid --eta %q, want YYYY-MM-DD", eta)
				}
				patch.EstimatedDelivery = &parsed
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to update, pass at least one field flag")
			}

			resp, err := apiClient().UpdateShipment(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Println(resp.Message)
			printShipment(resp.UpdatedShipment)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "customer name")
	cmd.Flags().StringVar(&phone, "phone", "", "customer phone")
	cmd.Flags().StringVar(&location, "location", "", "current location")
	cmd.Flags().StringVar(&status, "status", "", "status")
	cmd.Flags().StringVar(&eta, "eta", "", "estimated delivery, YYYY-MM-DD")
	return cmd
}

func trackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "track <tracking-id-or-phone>",
		Short: "Look up shipments by tracking ID or phone number",
		Long: `Look up shipments by tracking ID or phone number.

No mode toggle needed: an all-digit query of 6+ digits is treated as a
phone number, anything else as a tracking ID.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := console.ClassifyQuery(strings.Join(args, " "))
			if err != nil {
				return err
			}

			api := apiClient()
			switch query.Kind {
			case console.LookupPhone:
				resp, err := api.GetShipmentsByPhone(cmd.Context(), query.Value)
				if err != nil {
					return err
				}
				fmt.Printf("%d shipment(s) on this number\n", resp.Count)
				for _, s := range resp.Shipments {
					printShipment(s)
				}
			default:
				shipment, err := api.GetShipment(cmd.Context(), query.Value)
				if err != nil {
					return err
				}
				printShipment(shipment)
			}
			return nil
		},
	}
}

func lookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <trackingId> <phone>",
		Short: "Verified lookup requiring both tracking ID and phone to match",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			shipment, err := apiClient().LookupShipment(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			printPublicShipment(shipment)
			return nil
		},
	}
}

func recentCmd() *cobra.Command {
	var days, limit int
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List shipments created in the last N days",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := apiClient().RecentShipments(cmd.Context(), days, limit)
			if err != nil {
				return err
			}
			fmt.Printf("Recent shipments (last %d days, %d found)\n", resp.Days, resp.Count)
			for _, s := range resp.Shipments {
				fmt.Printf("  %-16s %-16s %-20s %s\n", s.TrackingID, s.Status, s.CurrentLocation, s.CreatedAt.Local().Format(time.DateTime))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 5, "window in days (max 30)")
	cmd.Flags().IntVar(&limit, "limit", 0, "max rows (max 1000)")
	return cmd
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream live shipment events from the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := apiClient().Watch(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println("Watching shipment events (Ctrl-C to stop)...")
			for event := range events {
				s := event.Shipment
				fmt.Printf("[%s] %s  status=%s  location=%s\n", event.Type, s.TrackingID, s.Status, s.CurrentLocation)
			}
			return nil
		},
	}
}

func printShipment(s models.Shipment) {
	fmt.Printf("  Tracking ID:      %s\n", s.TrackingID)
	fmt.Printf("  Status:           %s\n", s.Status)
	fmt.Printf("  Current Location: %s\n", s.CurrentLocation)
	fmt.Printf("  Recipient:        %s\n", s.CustomerName)
	fmt.Printf("  Phone:            %s\n", s.CustomerPhone)
	if s.EstimatedDelivery != nil {
		fmt.Printf("  Estimated:        %s\n", s.EstimatedDelivery.Local().Format(console.DateOnly))
	}
	fmt.Printf("  Created:          %s\n", s.CreatedAt.Local().Format(time.DateTime))
}

func printPublicShipment(s models.PublicShipment) {
	fmt.Printf("  Tracking ID:      %s\n", s.TrackingID)
	fmt.Printf("  Status:           %s\n", s.Status)
	fmt.Printf("  Current Location: %s\n", s.CurrentLocation)
	fmt.Printf("  Recipient:        %s\n", s.CustomerName)
	fmt.Printf("  Phone:            %s\n", s.CustomerPhone)
	if s.EstimatedDelivery != nil {
		fmt.Printf("  Estimated:        %s\n", s.EstimatedDelivery.Local().Format(console.DateOnly))
	}
}
