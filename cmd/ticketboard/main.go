// Command ticketboard is the terminal client for the TicketBoard API.
// Run without arguments for usage; `ticketboard ui` opens the board.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ticketboard/internal/client"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ticketboard:", client.Message(err))
		os.Exit(1)
	}
}
