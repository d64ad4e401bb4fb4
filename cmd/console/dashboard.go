// cmd/console/dashboard.go
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"shipment-tracking-api-server/internal/console"
	"shipment-tracking-api-server/internal/models"

	"github.com/spf13/cobra"
)

// dashboardCmd là phiên bản dòng lệnh của admin dashboard: bảng recent
// shipments với cập nhật trạng thái/vị trí lạc quan và chế độ sửa dòng.
func dashboardCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive recent-shipments dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			dash := console.NewDashboard(apiClient())
			if err := dash.Refresh(cmd.Context(), days); err != nil {
				return err
			}

			fmt.Println("Commands: list | refresh [days] | status <row> <value> | loc <row> <value> |")
			fmt.Println("          edit <row> | set <field> <value> | save | cancel | quit")
			renderDashboard(dash)

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "quit" || line == "exit" {
					return nil
				}
				runDashboardCommand(cmd, dash, line)
				renderDashboard(dash)
			}
		},
	}
	cmd.Flags().IntVar(&days, "days", 5, "window in days")
	return cmd
}

func runDashboardCommand(cmd *cobra.Command, dash *console.Dashboard, line string) {
	fields := strings.Fields(line)
	ctx := cmd.Context()

	switch fields[0] {
	case "list":
		// render phía dưới là đủ
	case "refresh":
		days := dash.Days()
		if len(fields) > 1 {
			if n, err := strconv.Atoi(fields[1]); err == nil {
				days = n
			}
		}
		dash.Refresh(ctx, days)
	case "status":
		if len(fields) < 3 {
			fmt.Println("usage: status <row> <value>")
			return
		}
		rowID, ok := rowIDByIndex(dash, fields[1])
		if !ok {
			return
		}
		dash.ChangeStatus(ctx, rowID, strings.Join(fields[2:], " "))
	case "loc":
		if len(fields) < 3 {
			fmt.Println("usage: loc <row> <value>")
			return
		}
		rowID, ok := rowIDByIndex(dash, fields[1])
		if !ok {
			return
		}
		dash.SetLocationDraft(rowID, strings.Join(fields[2:], " "))
		dash.UpdateLocation(ctx, rowID)
	case "edit":
		if len(fields) < 2 {
			fmt.Println("usage: edit <row>")
			return
		}
		rowID, ok := rowIDByIndex(dash, fields[1])
		if !ok {
			return
		}
		dash.StartEdit(rowID)
	case "set":
		if len(fields) < 3 {
			fmt.Println("usage: set <location|status|eta> <value>")
			return
		}
		form := dash.EditForm()
		value := strings.Join(fields[2:], " ")
		switch fields[1] {
		case "location":
			form.CurrentLocation = value
		case "status":
			form.Status = value
		case "eta":
			form.EstimatedDelivery = value
		default:
			fmt.Println("unknown field:", fields[1])
			return
		}
		dash.SetEditForm(form)
	case "save":
		dash.SaveEdit(ctx)
	case "cancel":
		dash.CancelEdit()
	default:
		fmt.Println("unknown command:", fields[0])
	}
}

func rowIDByIndex(dash *console.Dashboard, arg string) (string, bool) {
	index, err := strconv.Atoi(arg)
	rows := dash.Rows()
	if err != nil || index < 1 || index > len(rows) {
		fmt.Println("row must be between 1 and", len(rows))
		return "", false
	}
	return rows[index-1].RowID(), true
}

func renderDashboard(dash *console.Dashboard) {
	msg, errMsg := dash.Messages()
	if msg != "" {
		fmt.Println("OK:", msg)
	}
	if errMsg != "" {
		fmt.Println("ERROR:", errMsg)
	}

	rows := dash.Rows()
	if len(rows) == 0 {
		fmt.Println("No shipments in this period")
		return
	}

	fmt.Printf("Recent shipments (last %d days)\n", dash.Days())
	for i, s := range rows {
		marker := " "
		if dash.EditingID() == s.RowID() {
			marker = "*"
		}
		eta := "-"
		if s.EstimatedDelivery != nil {
			eta = s.EstimatedDelivery.Local().Format(console.DateOnly)
		}
		fmt.Printf("%s%2d. %-16s %-16s %-20s %-12s %s\n",
			marker, i+1, s.TrackingID, s.Status, s.CurrentLocation, eta, s.CreatedAt.Local().Format(time.DateTime))
	}

	if editingID := dash.EditingID(); editingID != "" {
		form := dash.EditForm()
		fmt.Printf("Editing %s: location=%q status=%q eta=%q\n",
			form.TrackingID, form.CurrentLocation, form.Status, form.EstimatedDelivery)
		fmt.Println("Valid statuses:", strings.Join(models.StatusOptions, ", "))
	}
}
