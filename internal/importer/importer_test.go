package importer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlowther/centsy/internal/importer"
	"github.com/mlowther/centsy/internal/ledger"
)

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"date,merchant,category,amount,type,payment_method",
		"2026-08-01,Corner Store,Food,4.50,spend,cash",
		"2026-08-02,Dining Hall,Food,12.25,spend,flex",
		"2026-08-15,Campus Job,Income,1250.00,earn,",
		"",
	}, "\n")

	got, err := importer.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.True(t, got[0].Date.Equal(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Corner Store", got[0].Merchant)
	assert.Equal(t, "Food", got[0].Category)
	assert.True(t, got[0].Amount.Equal(decimal.NewFromFloat(4.50)))
	assert.Equal(t, ledger.TypeSpend, got[0].Type)
	assert.Equal(t, ledger.PaymentCash, got[0].PaymentMethod)
	assert.True(t, got[0].NeedsReview)

	assert.Equal(t, ledger.PaymentFlex, got[1].PaymentMethod)

	assert.Equal(t, ledger.TypeEarn, got[2].Type)
	assert.Equal(t, ledger.PaymentNone, got[2].PaymentMethod)
	assert.True(t, got[2].NeedsReview, "imported rows land in the review queue")
}

func TestParse_HeaderVariants(t *testing.T) {
	t.Run("AnyColumnOrder", func(t *testing.T) {
		input := "amount,type,date,category,merchant\n9.99,spend,2026-08-01,Fun,Cinema\n"

		got, err := importer.New().Parse(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Cinema", got[0].Merchant)
		assert.True(t, got[0].Amount.Equal(decimal.NewFromFloat(9.99)))
	})

	t.Run("PaymentMethodColumnOptional", func(t *testing.T) {
		input := "date,merchant,category,amount,type\n2026-08-01,Cinema,Fun,9.99,spend\n"

		got, err := importer.New().Parse(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, ledger.PaymentNone, got[0].PaymentMethod)
	})

	t.Run("JunkRowsBeforeHeader", func(t *testing.T) {
		input := "My Export\n\ndate,merchant,category,amount,type\n2026-08-01,Cinema,Fun,9.99,spend\n"

		got, err := importer.New().Parse(strings.NewReader(input))
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("NoHeader", func(t *testing.T) {
		_, err := importer.New().Parse(strings.NewReader("2026-08-01,Cinema,Fun\n"))
		assert.ErrorContains(t, err, "no header row found")
	})
}

func TestParse_RowErrors(t *testing.T) {
	header := "date,merchant,category,amount,type,payment_method\n"

	tests := []struct {
		name    string
		row     string
		wantErr string
	}{
		{"BadDate", "01/08/2026,Cinema,Fun,9.99,spend,", "row 2: invalid date"},
		{"MissingMerchant", "2026-08-01,,Fun,9.99,spend,", "row 2: missing merchant"},
		{"MissingCategory", "2026-08-01,Cinema,,9.99,spend,", "row 2: missing category"},
		{"BadAmount", "2026-08-01,Cinema,Fun,nine,spend,", "row 2: invalid amount"},
		{"BadType", "2026-08-01,Cinema,Fun,9.99,transfer,", `row 2: invalid type "transfer"`},
		{"BadPaymentMethod", "2026-08-01,Cinema,Fun,9.99,spend,paypal", `row 2: invalid payment method "paypal"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importer.New().Parse(strings.NewReader(header + tt.row + "\n"))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestParse_Windows1252(t *testing.T) {
	// "Café" with é encoded as Windows-1252 0xE9.
	input := append([]byte("date,merchant,category,amount,type\n2026-08-01,Caf"), 0xE9)
	input = append(input, []byte(",Food,4.00,spend\n")...)

	got, err := importer.New().Parse(bytes.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Café", got[0].Merchant)
}

func TestParse_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("date,merchant,category,amount,type\n2026-08-01,Café,Food,4.00,spend\n")...)

	got, err := importer.New().Parse(bytes.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Café", got[0].Merchant)
}
