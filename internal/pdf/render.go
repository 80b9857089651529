package pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/pkg/errors"
	"github.com/syndicma/syndic-api/internal/model"
)

// Renderer turns an invoice into document bytes.
type Renderer interface {
	Render(inv *model.Invoice) ([]byte, error)
}

// MarotoRenderer lays out the one-page French invoice document.
type MarotoRenderer struct {
	now func() time.Time
}

func NewRenderer() *MarotoRenderer {
	return &MarotoRenderer{now: time.Now}
}

func (r *MarotoRenderer) Render(inv *model.Invoice) ([]byte, error) {
	if inv.Client == nil {
		return nil, errors.New("invoice is missing its client")
	}

	residenceName := "N/A"
	if inv.Client.Residence != nil {
		residenceName = inv.Client.Residence.Name
	}
	period := fmt.Sprintf("%02d/%d", inv.Month, inv.Year)
	amount := formatAmount(inv.Amount)

	cfg := config.NewBuilder().Build()
	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(12, "Facture", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, "Mois: "+period, props.Text{
			Size:  10,
			Align: align.Left,
		}),
	)

	m.AddRow(18,
		col.New(12).Add(
			text.New("Client: "+inv.Client.Name, props.Text{Top: 2, Size: 10}),
			text.New("Résidence: "+residenceName, props.Text{Top: 8, Size: 10}),
		),
	)

	m.AddRow(10,
		text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(3, "Mois", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(3, "Montant", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		text.NewCol(6, "Charges de copropriété", props.Text{Size: 9}),
		text.NewCol(3, period, props.Text{Size: 9, Align: align.Right}),
		text.NewCol(3, amount, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(12,
		text.NewCol(9, "Total à payer", props.Text{Style: fontstyle.Bold, Size: 11}),
		text.NewCol(3, amount, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right}),
	)

	m.AddRow(16,
		text.NewCol(12,
			"Facture générée automatiquement le "+r.now().Format("02/01/2006")+". Merci de votre confiance.",
			props.Text{Size: 8, Align: align.Center, Top: 8},
		),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "generate invoice document")
	}
	return doc.GetBytes(), nil
}

// formatAmount renders a dirham amount the French way: space-separated
// thousands, comma decimals.
func formatAmount(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(s, ".", 2)

	intPart := parts[0]
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(intPart[i : i+3])
	}

	out := b.String() + "," + parts[1] + " DH"
	if neg {
		out = "-" + out
	}
	return out
}
