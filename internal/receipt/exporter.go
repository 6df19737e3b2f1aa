// internal/receipt/exporter.go
package receipt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"gymdesk/internal/billing"
)

// Config carries the organization details printed on every receipt.
type Config struct {
	OrganizationName string
	Address          string
	Phone            string
	CurrencySymbol   string
}

// Input is one payment to be printed.
type Input struct {
	MemberName  string
	MemberPhone string
	Plan        string
	Payment     billing.PaymentEvent
	Summary     billing.PayslipSummary
}

// Receipt is a rendered payslip.
type Receipt struct {
	Number   string    `json:"number"`
	IssuedAt time.Time `json:"issued_at"`
	Markdown string    `json:"markdown"`
	HTML     string    `json:"html"`
}

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

var receiptTmpl = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"orDash": orDash,
}).Parse(`# {{ .Org.OrganizationName }}

{{ if .Org.Address }}{{ .Org.Address }}
{{ end }}{{ if .Org.Phone }}Phone: {{ .Org.Phone }}
{{ end }}
## Payment Receipt

Receipt No: **{{ .Number }}**
Date: {{ .Paid }}

| | |
|---|---|
| Member | {{ orDash .In.MemberName }} |
| Phone | {{ orDash .In.MemberPhone }} |
| Plan | {{ orDash .In.Plan }} |
| Period | {{ orDash .In.Summary.CyclePeriodLabel }} |
| Received by | {{ orDash .In.Payment.By.Name }} |
| Amount paid | {{ .AmountPaid }} |
| Previous due | {{ .CarryForward }} |
| Current cycle due | {{ .CurrentRemaining }} |
| Total outstanding | {{ .TotalOutstanding }} |
{{ if .In.Payment.Note }}
Note: {{ .In.Payment.Note }}
{{ end }}
Thank you for training with {{ .Org.OrganizationName }}.
`))

// Render prints a receipt for in using the organization details in cfg.
func Render(cfg Config, in Input) (*Receipt, error) {
	number := strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
	issued := time.Now().UTC()

	paid := in.Payment.At
	if paid.IsZero() {
		paid = issued
	}

	data := struct {
		Org              Config
		In               Input
		Number           string
		Paid             string
		AmountPaid       string
		CarryForward     string
		CurrentRemaining string
		TotalOutstanding string
	}{
		Org:              cfg,
		In:               in,
		Number:           number,
		Paid:             paid.Format("02 Jan 2006 15:04"),
		AmountPaid:       formatMoney(cfg.CurrencySymbol, in.Summary.AmountPaid),
		CarryForward:     formatMoney(cfg.CurrencySymbol, in.Summary.CarryForward),
		CurrentRemaining: formatMoney(cfg.CurrencySymbol, in.Summary.CurrentRemaining),
		TotalOutstanding: formatMoney(cfg.CurrencySymbol, in.Summary.TotalOutstanding),
	}

	var src bytes.Buffer
	if err := receiptTmpl.Execute(&src, data); err != nil {
		return nil, fmt.Errorf("failed to render receipt markdown: %w", err)
	}

	var html bytes.Buffer
	if err := md.Convert(src.Bytes(), &html); err != nil {
		return nil, fmt.Errorf("failed to convert receipt to html: %w", err)
	}

	return &Receipt{
		Number:   number,
		IssuedAt: issued,
		Markdown: src.String(),
		HTML:     html.String(),
	}, nil
}

func formatMoney(symbol string, amount decimal.Decimal) string {
	return symbol + amount.StringFixed(2)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
