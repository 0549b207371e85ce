package receipts

import (
	"context"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	mconfig "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/hypermart/pos-backend/pkg/config"
	"github.com/hypermart/pos-backend/pkg/db/models"
	"github.com/hypermart/pos-backend/pkg/errors"
)

// Generator renders committed sales as printable PDF receipts headed
// with the store identity.
type Generator struct {
	store config.StoreConfig
}

func NewGenerator(store config.StoreConfig) *Generator {
	return &Generator{store: store}
}

// Render produces the PDF bytes for one sale. The sale must carry its
// lines; FindByInvoiceNumber preloads them.
func (g *Generator) Render(ctx context.Context, sale *models.Sale) ([]byte, error) {
	if sale == nil || len(sale.Items) == 0 {
		return nil, errors.New(errors.CodeValidation, "sale has no lines to print")
	}

	cfg := mconfig.NewBuilder().Build()
	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, g.store.Name, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	m.AddRow(6,
		text.NewCol(12, g.store.Address, props.Text{Size: 9, Align: align.Center}),
	)
	m.AddRow(6,
		text.NewCol(12, g.store.Phone, props.Text{Size: 9, Align: align.Center}),
	)
	m.AddRow(4, line.NewCol(12))

	meta := col.New(6).Add(
		text.New("Invoice: "+sale.InvoiceNumber, props.Text{Size: 10, Style: fontstyle.Bold}),
		text.New("Date: "+sale.Date.Format("2006-01-02 15:04"), props.Text{Size: 9, Top: 5}),
	)
	right := col.New(6)
	if sale.TableNumber != nil && *sale.TableNumber != "" {
		right = col.New(6).Add(
			text.New("Table: "+*sale.TableNumber, props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(14, meta, right)

	m.AddRow(8,
		text.NewCol(6, "Item", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range sale.Items {
		m.AddRow(7,
			text.NewCol(6, item.ItemName, props.Text{Size: 9}),
			text.NewCol(2, decimalInt(item.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.UnitPrice.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Subtotal.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(4, line.NewCol(12))
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(2, sale.Total.StringFixed(2), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)
	m.AddRow(10,
		text.NewCol(12, "Thank you for shopping with us!", props.Text{Size: 9, Align: align.Center, Top: 3}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "rendering receipt %s", sale.InvoiceNumber)
	}
	return doc.GetBytes(), nil
}

func decimalInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
