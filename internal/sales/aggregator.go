// Package sales derives reporting figures from the delivered-orders
// collection. Everything here is a pure function: same orders, same
// filter, same clock reading, same result. Nothing is cached.
package sales

import (
	"math"
	"strings"
	"time"

	"github.com/Mobile-Craft/order-manager/internal/orders"
)

type SalesData struct {
	TotalOrders   int `json:"totalOrders"`
	TotalRevenue  int `json:"totalRevenue"`
	CashTotal     int `json:"cashTotal"`
	TransferTotal int `json:"transferTotal"`
	OrdersToday   int `json:"ordersToday"`
	RevenueToday  int `json:"revenueToday"`
	// AverageDeliveryTime is the rounded mean fulfillment duration in
	// minutes over the filtered orders that have one recorded.
	AverageDeliveryTime int `json:"averageDeliveryTime"`
}

// CashShare is the cash fraction of revenue as a percentage; 0 when
// there is no revenue, never NaN.
func (d SalesData) CashShare() float64 { return share(d.CashTotal, d.TotalRevenue) }

// TransferShare is the transfer fraction of revenue as a percentage.
func (d SalesData) TransferShare() float64 { return share(d.TransferTotal, d.TotalRevenue) }

func share(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// Summarize computes the report for the delivered orders that fall
// inside the filter. An order counts under its delivery date, or its
// creation date if delivery was never recorded.
//
// OrdersToday and RevenueToday deliberately ignore the filter: the UI
// shows today's numbers next to whatever period is selected, so they
// are always computed against the full delivered set.
func Summarize(delivered []orders.Order, filter DateFilter, now time.Time) SalesData {
	var d SalesData

	var durSum, durCount int
	for _, o := range delivered {
		at := o.AttributionTime()

		if sameDay(at, now) {
			d.OrdersToday++
			d.RevenueToday += o.Total
		}

		if !filter.contains(at, now) {
			continue
		}
		d.TotalOrders++
		d.TotalRevenue += o.Total
		switch {
		case strings.EqualFold(string(o.PaymentMethod), string(orders.PaymentCash)):
			d.CashTotal += o.Total
		case strings.EqualFold(string(o.PaymentMethod), string(orders.PaymentTransfer)):
			d.TransferTotal += o.Total
		}
		if o.DurationMinutes > 0 {
			durSum += o.DurationMinutes
			durCount++
		}
	}

	if durCount > 0 {
		d.AverageDeliveryTime = int(math.Round(float64(durSum) / float64(durCount)))
	}
	return d
}
