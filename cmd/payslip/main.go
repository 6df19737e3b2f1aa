// cmd/payslip/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"gymdesk/internal/clients"
	"gymdesk/internal/config"
	"gymdesk/internal/payments"
)

// payslip prints the receipt for one of a member's payments, for reprinting
// from the front desk without the dashboard UI.
func main() {
	memberID := flag.String("member", "", "member ID")
	index := flag.Int("index", payments.LatestPayment, "payment index in the member's history (-1 for the latest)")
	format := flag.String("format", "markdown", "output format: markdown or html")
	flag.Parse()

	if *memberID == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *format != "markdown" && *format != "html" {
		log.Fatalf("Unknown format %q", *format)
	}

	cfg := config.Load()
	svc := payments.NewService(clients.NewDirectoryClient(cfg.Directory), cfg.Receipt)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Directory.Timeout)
	defer cancel()

	slip, err := svc.Payslip(ctx, *memberID, *index)
	if err != nil {
		log.Fatalf("Failed to build payslip: %v", err)
	}

	if *format == "html" {
		fmt.Print(slip.Receipt.HTML)
		return
	}
	fmt.Print(slip.Receipt.Markdown)
}
