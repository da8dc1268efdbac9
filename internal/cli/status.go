package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/warden/internal/config"
	coreticket "github.com/example/warden/internal/core/ticket"
	"github.com/example/warden/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	var auditLimit int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show ticket counters, live tickets, and recent audit entries",
		Long: `Inspect the local state without connecting to Discord:
- Per-category ticket counters
- Live (open and closing) tickets
- Recent audit log entries`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			services, err := wire.NewReadonly(cfg)
			if err != nil {
				return err
			}
			defer services.Close()

			bold := color.New(color.Bold)

			bold.Println("Ticket Counters")
			counters, err := services.Store.Counters(context.Background())
			if err != nil {
				return fmt.Errorf("failed to read counters: %w", err)
			}
			for _, c := range coreticket.Categories() {
				fmt.Printf("  %-14s %s\n", c.Title(), coreticket.FormatNumber(counters[string(c)]))
			}
			fmt.Println()

			bold.Println("Live Tickets")
			tickets, err := services.Store.List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list tickets: %w", err)
			}
			if len(tickets) == 0 {
				fmt.Println("  (none)")
			} else {
				w := tabwriter.NewWriter(os.Stdout, 2, 2, 2, ' ', 0)
				fmt.Fprintln(w, "  CHANNEL\tCATEGORY\tNUMBER\tSTATUS\tOWNER\tPRIORITY")
				for _, t := range tickets {
					fmt.Fprintf(w, "  %s\t%s\t%d\t%s\t%s\t%s\n",
						t.ChannelID, t.Category, t.Number, t.Status, t.OwnerID, t.Priority)
				}
				w.Flush()
			}
			fmt.Println()

			bold.Println("Recent Audit Entries")
			entries, err := services.Audit.Recent(context.Background(), auditLimit)
			if err != nil {
				return fmt.Errorf("failed to read audit log: %w", err)
			}
			if len(entries) == 0 {
				fmt.Println("  (none)")
			}
			for _, e := range entries {
				fmt.Printf("  %s  %s/%s  %s by %s  %s\n",
					e.CreatedAt.Format("2006-01-02 15:04:05"),
					e.EntityType, e.EntityID, e.Action, e.ActorID, e.Detail)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&auditLimit, "audit", 10, "number of audit entries to show")

	return cmd
}
