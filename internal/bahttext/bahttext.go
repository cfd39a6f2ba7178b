// Package bahttext spells out monetary amounts in Thai, the way they are
// written in the "amount in words" line of a document.
package bahttext

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/billdoc-dev/billdoc/internal/money"
)

const (
	wordZero     = "ศูนย์"
	wordNegative = "ลบ"
	wordMillion  = "ล้าน"
	wordTen      = "สิบ"
	wordTwenty   = "ยี่สิบ"
	wordOneTail  = "เอ็ด"
	unitBaht     = "บาท"
	unitSatang   = "สตางค์"
	suffixEven   = "ถ้วน"
)

var digitWords = [10]string{"", "หนึ่ง", "สอง", "สาม", "สี่", "ห้า", "หก", "เจ็ด", "แปด", "เก้า"}

// positionWords is indexed by digit position counted from the right.
var positionWords = [6]string{"", "สิบ", "ร้อย", "พัน", "หมื่น", "แสน"}

const million = 1_000_000

var millionDec = decimal.NewFromInt(million)

// Zero is the text for an amount of zero.
const Zero = wordZero + unitBaht + suffixEven

// FromDecimal converts amount to Thai baht text, e.g. 1250.50 ->
// "หนึ่งพันสองร้อยห้าสิบบาทห้าสิบสตางค์". The amount is rounded to satang first.
func FromDecimal(amount decimal.Decimal) string {
	amount = money.Round2(amount)
	if amount.IsZero() {
		return Zero
	}
	if amount.IsNegative() {
		return wordNegative + FromDecimal(amount.Neg())
	}

	baht := amount.Truncate(0)
	satang := amount.Sub(baht).Mul(money.Hundred).Round(0).IntPart()

	var b strings.Builder
	if baht.IsPositive() {
		b.WriteString(bahtText(baht))
		b.WriteString(unitBaht)
	}
	if satang == 0 {
		b.WriteString(suffixEven)
	} else {
		b.WriteString(integerText(satang))
		b.WriteString(unitSatang)
	}
	return b.String()
}

// FromString parses s as a decimal and converts it.
func FromString(s string) (string, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "", err
	}
	return FromDecimal(d), nil
}

// bahtText spells out a non-negative whole amount of any size. Millions are
// split off as decimals so the int64 conversion only sees the last group.
func bahtText(n decimal.Decimal) string {
	if n.LessThan(millionDec) {
		return integerText(n.IntPart())
	}
	q, r := n.QuoRem(millionDec, 0)
	return bahtText(q) + wordMillion + integerText(r.IntPart())
}

// integerText spells out a non-negative integer without a unit. Amounts of a
// million or more recurse on the millions and the remainder separately.
func integerText(n int64) string {
	if n <= 0 {
		return ""
	}
	if n >= million {
		return integerText(n/million) + wordMillion + integerText(n%million)
	}

	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, ch := range digits {
		d := int(ch - '0')
		pos := len(digits) - 1 - i
		if d == 0 {
			continue
		}
		switch {
		case pos == 1 && d == 1:
			b.WriteString(wordTen)
		case pos == 1 && d == 2:
			b.WriteString(wordTwenty)
		case pos == 0 && d == 1 && len(digits) > 1:
			b.WriteString(wordOneTail)
		default:
			b.WriteString(digitWords[d])
			b.WriteString(positionWords[pos])
		}
	}
	return b.String()
}
