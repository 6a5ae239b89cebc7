package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"gamepanel/internal/actions"
	"gamepanel/internal/gateway"
	"gamepanel/internal/interfaces"
	"gamepanel/internal/logger"
	"gamepanel/internal/session"
	syncer "gamepanel/internal/sync"

	"github.com/spf13/cobra"
)

// ServicesCommands creates the service management commands
func ServicesCommands(gw interfaces.ServiceGateway, cache interfaces.ServiceCache, reconciler *syncer.Reconciler, coordinator *actions.Coordinator, sessions session.Provider) []*cobra.Command {
	cmds := []*cobra.Command{}

	// gamepanel services list
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your services from the cached mirror",
		RunE: func(cmd *cobra.Command, args []string) error {
			refresh, _ := cmd.Flags().GetBool("refresh")
			return listServices(cmd.Context(), cache, reconciler, coordinator, sessions, refresh)
		},
	}
	listCmd.Flags().BoolP("refresh", "r", false, "Reconcile with the provider before listing")
	cmds = append(cmds, listCmd)

	// gamepanel services details <id>
	detailsCmd := &cobra.Command{
		Use:   "details <service-id>",
		Short: "Show the live detail view of a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return serviceDetails(cmd.Context(), gw, sessions, args[0])
		},
	}
	cmds = append(cmds, detailsCmd)

	// gamepanel services start|stop|restart <id>
	for _, action := range []actions.Action{actions.ActionStart, actions.ActionStop, actions.ActionRestart} {
		action := action
		cmds = append(cmds, &cobra.Command{
			Use:   fmt.Sprintf("%s <service-id>", action),
			Short: fmt.Sprintf("%s a service", titleAction(action)),
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return submitAction(cmd.Context(), coordinator, sessions, args[0], action, actions.Options{})
			},
		})
	}

	// gamepanel services reinstall <id>
	reinstallCmd := &cobra.Command{
		Use:   "reinstall <service-id>",
		Short: "Reinstall a service with a new image and root password",
		Long: `Reinstall wipes the service and installs the selected operating system
image. All data on the service is lost. The command refuses to run
without the --yes flag.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			osID, _ := cmd.Flags().GetString("os")
			password, _ := cmd.Flags().GetString("password")
			yes, _ := cmd.Flags().GetBool("yes")
			return submitAction(cmd.Context(), coordinator, sessions, args[0], actions.ActionReinstall, actions.Options{
				Confirmed: yes,
				OSID:      osID,
				Password:  password,
			})
		},
	}
	reinstallCmd.Flags().String("os", "", "Operating system image ID")
	reinstallCmd.Flags().String("password", "", "New root password (minimum 8 characters)")
	reinstallCmd.Flags().BoolP("yes", "y", false, "Confirm the destructive reinstall")
	cmds = append(cmds, reinstallCmd)

	// gamepanel services hide <id>
	hideCmd := &cobra.Command{
		Use:   "hide <service-id>",
		Short: "Hide a service from the provider's list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			return submitAction(cmd.Context(), coordinator, sessions, args[0], actions.ActionHide, actions.Options{
				Confirmed: yes,
			})
		},
	}
	hideCmd.Flags().BoolP("yes", "y", false, "Confirm hiding the service")
	cmds = append(cmds, hideCmd)

	return cmds
}

func titleAction(a actions.Action) string {
	switch a {
	case actions.ActionStart:
		return "Start"
	case actions.ActionStop:
		return "Stop"
	case actions.ActionRestart:
		return "Restart"
	}
	return string(a)
}

func listServices(ctx context.Context, cache interfaces.ServiceCache, reconciler *syncer.Reconciler, coordinator *actions.Coordinator, sessions session.Provider, refresh bool) error {
	sess, err := sessions.Current(ctx)
	if err != nil {
		return err
	}

	if refresh {
		if !sess.HasAPIKey() {
			logger.Warn("No API key configured, listing cached data only")
		} else {
			result, err := reconciler.SyncUser(ctx, sess)
			if err != nil {
				return fmt.Errorf("failed to refresh services: %w", err)
			}
			if len(result.Errors) > 0 {
				logger.WithFields(logger.Fields{"failures": len(result.Errors)}).Warn("Some services could not be refreshed")
			}
		}
	}

	rows, err := cache.ListByUser(ctx, sess.UserID)
	if err != nil {
		return fmt.Errorf("failed to list services: %w", err)
	}

	if len(rows) == 0 {
		if !sess.HasAPIKey() {
			fmt.Println("No cached services. Configure an API key with 'gamepanel config set-key' and run 'gamepanel sync'.")
		} else {
			fmt.Println("No services found. Run 'gamepanel sync' to refresh from the provider.")
		}
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSTATUS\tPENDING")
	for _, row := range rows {
		pending := "-"
		if a, ok := coordinator.Pending(row.ServiceID); ok {
			pending = string(a)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", row.ServiceID, row.ServiceName, row.ServiceType, row.Status, pending)
	}
	return w.Flush()
}

func serviceDetails(ctx context.Context, gw interfaces.ServiceGateway, sessions session.Provider, serviceID string) error {
	sess, err := sessions.Current(ctx)
	if err != nil {
		return err
	}
	if !sess.HasAPIKey() {
		return fmt.Errorf("no API key configured, run 'gamepanel config set-key' first")
	}

	detail, err := gw.GetServiceDetail(ctx, serviceID)
	if err != nil {
		return fmt.Errorf("failed to fetch service details: %w", err)
	}

	status := string(gateway.StatusUnknown)
	if live, err := gw.GetServiceStatus(ctx, serviceID); err == nil {
		status = string(live)
	}

	fmt.Printf("Service:   %s\n", detail.Service.ID)
	fmt.Printf("Product:   %s\n", detail.Service.ProductDisplay)
	fmt.Printf("Status:    %s\n", status)
	fmt.Printf("Hostname:  %s\n", detail.Product.Hostname)
	fmt.Printf("Location:  %s\n", detail.Product.Location)
	fmt.Printf("OS:        %s\n", detail.Product.OS)
	fmt.Printf("Cores:     %d (%s)\n", detail.Product.Cores, detail.Product.CPUType)
	fmt.Printf("Memory:    %d MB\n", detail.Product.MemoryMB)
	fmt.Printf("Disk:      %d MB\n", detail.Product.DiskMB)
	fmt.Printf("Uplink:    %d Mbit\n", detail.Product.UplinkMbit)
	if detail.Service.ExpireAt > 0 {
		expires := time.Unix(detail.Service.ExpireAt, 0).Format("2006-01-02")
		fmt.Printf("Expires:   %s (%d days left)\n", expires, detail.Service.DaysLeft)
	}
	return nil
}

func submitAction(ctx context.Context, coordinator *actions.Coordinator, sessions session.Provider, serviceID string, action actions.Action, opts actions.Options) error {
	sess, err := sessions.Current(ctx)
	if err != nil {
		return err
	}

	if err := coordinator.Submit(ctx, sess, serviceID, action, opts); err != nil {
		return err
	}

	logger.WithFields(logger.Fields{
		"service": serviceID,
		"action":  string(action),
	}).Info("✓ Action completed")
	return nil
}
