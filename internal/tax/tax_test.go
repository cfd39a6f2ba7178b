package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billdoc-dev/billdoc/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(qty, price string) model.LineItem {
	return model.LineItem{Description: "work", Quantity: dec(qty), Unit: "job", UnitPrice: dec(price)}
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s %v", want, got, msgAndArgs)
}

func TestSubtotal_ExactSum(t *testing.T) {
	items := []model.LineItem{item("1.5", "0.1"), item("3", "0.2"), item("0.333", "3")}
	assertDec(t, "1.749", Subtotal(items))
	assertDec(t, "0", Subtotal(nil))
}

func TestLegacy_Withholding(t *testing.T) {
	items := []model.LineItem{item("2", "1000"), item("3", "500")}
	got, err := Legacy(items, dec("0.03"), KindWithholding)
	require.NoError(t, err)
	assertDec(t, "3500", got.Subtotal)
	assertDec(t, "105", got.TaxAmount)
	assertDec(t, "3395", got.Total)
}

func TestLegacy_VAT(t *testing.T) {
	items := []model.LineItem{item("2", "1000"), item("3", "500")}
	got, err := Legacy(items, dec("0.07"), KindVAT)
	require.NoError(t, err)
	assertDec(t, "3500", got.Subtotal)
	assertDec(t, "245", got.TaxAmount)
	assertDec(t, "3745", got.Total)
}

func TestLegacy_NoRounding(t *testing.T) {
	items := []model.LineItem{item("1", "333.33")}
	got, err := Legacy(items, dec("0.03"), KindWithholding)
	require.NoError(t, err)
	assertDec(t, "9.9999", got.TaxAmount)
	assertDec(t, "323.3301", got.Total)
}

func TestLegacy_UnknownKind(t *testing.T) {
	_, err := Legacy([]model.LineItem{item("1", "1")}, dec("0.03"), Kind("sales"))
	var cfgErr ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "tax_type", cfgErr.Field)
}

func TestMulti_Normal(t *testing.T) {
	tests := []struct {
		name                      string
		cfg                       Config
		subtotal                  string
		wantVAT, wantWHT, wantTot string
	}{
		{
			name:     "no taxes",
			cfg:      Config{},
			subtotal: "1000",
			wantVAT:  "0", wantWHT: "0", wantTot: "1000",
		},
		{
			name:     "vat only",
			cfg:      Config{VAT: Rate{Enabled: true, Rate: dec("0.07")}},
			subtotal: "1000",
			wantVAT:  "70", wantWHT: "0", wantTot: "1070",
		},
		{
			name:     "withholding only",
			cfg:      Config{Withholding: Rate{Enabled: true, Rate: dec("0.03")}},
			subtotal: "3500",
			wantVAT:  "0", wantWHT: "105", wantTot: "3395",
		},
		{
			name: "both",
			cfg: Config{
				VAT:         Rate{Enabled: true, Rate: dec("0.07")},
				Withholding: Rate{Enabled: true, Rate: dec("0.03")},
			},
			subtotal: "1234.56",
			wantVAT:  "86.42", wantWHT: "37.04", wantTot: "1283.94",
		},
		{
			name:     "disabled rate is ignored",
			cfg:      Config{VAT: Rate{Enabled: false, Rate: dec("0.07")}},
			subtotal: "500",
			wantVAT:  "0", wantWHT: "0", wantTot: "500",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Multi(dec(tt.subtotal), tt.cfg)
			require.NoError(t, err)
			assertDec(t, tt.subtotal, got.Subtotal)
			assertDec(t, tt.wantVAT, got.VATAmount)
			assertDec(t, tt.wantWHT, got.WithholdingAmount)
			assertDec(t, tt.wantTot, got.Total)
			assert.False(t, got.GrossUp)
		})
	}
}

func TestMulti_TotalRoundedFromExactValues(t *testing.T) {
	// 0.005 VAT and 0.005 withholding each round up, but cancel exactly in the total.
	cfg := Config{
		VAT:         Rate{Enabled: true, Rate: dec("0.05")},
		Withholding: Rate{Enabled: true, Rate: dec("0.05")},
	}
	got, err := Multi(dec("0.1"), cfg)
	require.NoError(t, err)
	assertDec(t, "0.01", got.VATAmount)
	assertDec(t, "0.01", got.WithholdingAmount)
	assertDec(t, "0.1", got.Total)
}

func TestMulti_GrossUpWithholdingOnly(t *testing.T) {
	cfg := Config{Withholding: Rate{Enabled: true, Rate: dec("0.03")}, GrossUp: true}
	got, err := Multi(dec("899"), cfg)
	require.NoError(t, err)
	assertDec(t, "926.80", got.Subtotal)
	assertDec(t, "27.80", got.WithholdingAmount)
	assertDec(t, "0", got.VATAmount)
	assertDec(t, "899", got.Total)
	assertDec(t, "27.80", got.GrossUpAmount)
	assert.True(t, got.GrossUp)
}

func TestMulti_GrossUpBoth(t *testing.T) {
	cfg := Config{
		VAT:         Rate{Enabled: true, Rate: dec("0.07")},
		Withholding: Rate{Enabled: true, Rate: dec("0.03")},
		GrossUp:     true,
	}
	got, err := Multi(dec("10000"), cfg)
	require.NoError(t, err)
	assertDec(t, "9615.38", got.Subtotal)
	assertDec(t, "673.08", got.VATAmount)
	assertDec(t, "288.46", got.WithholdingAmount)
	assertDec(t, "10000", got.Total)
	// Gross base is below the net when VAT outweighs withholding.
	assertDec(t, "0", got.GrossUpAmount)
}

func TestMulti_GrossUpVATOnly(t *testing.T) {
	cfg := Config{VAT: Rate{Enabled: true, Rate: dec("0.07")}, GrossUp: true}
	got, err := Multi(dec("1070"), cfg)
	require.NoError(t, err)
	assertDec(t, "1000", got.Subtotal)
	assertDec(t, "70", got.VATAmount)
	assertDec(t, "1070", got.Total)
}

func TestMulti_GrossUpNoTaxes(t *testing.T) {
	got, err := Multi(dec("500.555"), Config{GrossUp: true})
	require.NoError(t, err)
	assertDec(t, "500.56", got.Subtotal)
	assertDec(t, "500.56", got.Total)
	assertDec(t, "0", got.GrossUpAmount)
}

func TestMulti_GrossUpRoundTrip(t *testing.T) {
	configs := []Config{
		{Withholding: Rate{Enabled: true, Rate: dec("0.03")}, GrossUp: true},
		{Withholding: Rate{Enabled: true, Rate: dec("0.05")}, GrossUp: true},
		{VAT: Rate{Enabled: true, Rate: dec("0.07")}, GrossUp: true},
		{
			VAT:         Rate{Enabled: true, Rate: dec("0.07")},
			Withholding: Rate{Enabled: true, Rate: dec("0.03")},
			GrossUp:     true,
		},
	}
	nets := []string{"899", "1", "12345.67", "50000", "0.99"}
	tolerance := dec("0.01")

	for _, cfg := range configs {
		for _, net := range nets {
			up, err := Multi(dec(net), cfg)
			require.NoError(t, err)

			normal := cfg
			normal.GrossUp = false
			down, err := Multi(up.Subtotal, normal)
			require.NoError(t, err)

			diff := down.Total.Sub(dec(net)).Abs()
			assert.True(t, diff.LessThanOrEqual(tolerance), "net %s cfg %+v: got total %s", net, cfg, down.Total)
		}
	}
}

func TestMulti_GrossUpInvalidFactor(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{
			name: "withholding 100%",
			cfg:  Config{Withholding: Rate{Enabled: true, Rate: dec("1")}, GrossUp: true},
		},
		{
			name: "withholding above 100%",
			cfg:  Config{Withholding: Rate{Enabled: true, Rate: dec("1.5")}, GrossUp: true},
		},
		{
			name: "vat minus withholding at -1",
			cfg: Config{
				VAT:         Rate{Enabled: true, Rate: dec("0")},
				Withholding: Rate{Enabled: true, Rate: dec("1")},
				GrossUp:     true,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Multi(dec("1000"), tt.cfg)
			var cfgErr ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Contains(t, err.Error(), "not positive")
		})
	}
}

func TestMulti_NormalModeIgnoresFactor(t *testing.T) {
	cfg := Config{Withholding: Rate{Enabled: true, Rate: dec("1")}}
	got, err := Multi(dec("100"), cfg)
	require.NoError(t, err)
	assertDec(t, "0", got.Total)
}
