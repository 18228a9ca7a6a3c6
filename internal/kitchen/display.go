// Package kitchen renders the active-order board for the kitchen
// terminal. It is a read-only consumer of the lifecycle manager.
package kitchen

import (
	"fmt"
	"io"
	"time"

	"github.com/Mobile-Craft/order-manager/internal/orders"
)

// columns fixes the board layout; delivered orders never show here.
var columns = []orders.Status{
	orders.StatusPendiente,
	orders.StatusEnProceso,
	orders.StatusTerminada,
}

type Display struct {
	Out io.Writer
	Now func() time.Time
}

// Render prints one column per kitchen status, orders in arrival order
// with their age in minutes.
func (d *Display) Render(active []orders.Order) {
	now := time.Now()
	if d.Now != nil {
		now = d.Now()
	}

	byStatus := make(map[orders.Status][]orders.Order, len(columns))
	for _, o := range active {
		byStatus[o.Status] = append(byStatus[o.Status], o)
	}

	fmt.Fprintf(d.Out, "== Cocina %s ==\n", now.Format("15:04:05"))
	for _, st := range columns {
		fmt.Fprintf(d.Out, "[%s] (%d)\n", st, len(byStatus[st]))
		for _, o := range byStatus[st] {
			age := int(now.Sub(o.CreatedAt).Minutes())
			fmt.Fprintf(d.Out, "  %-8s %-20s %2d min", o.OrderCode, o.CustomerName, age)
			for _, it := range o.Items {
				fmt.Fprintf(d.Out, "  %dx %s", it.Quantity, it.Name)
			}
			fmt.Fprintln(d.Out)
		}
	}
}
