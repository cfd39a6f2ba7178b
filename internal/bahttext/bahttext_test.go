package bahttext

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDecimal(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "ศูนย์บาทถ้วน"},
		{"0.00", "ศูนย์บาทถ้วน"},
		{"1", "หนึ่งบาทถ้วน"},
		{"10", "สิบบาทถ้วน"},
		{"11", "สิบเอ็ดบาทถ้วน"},
		{"20", "ยี่สิบบาทถ้วน"},
		{"21", "ยี่สิบเอ็ดบาทถ้วน"},
		{"101", "หนึ่งร้อยเอ็ดบาทถ้วน"},
		{"111", "หนึ่งร้อยสิบเอ็ดบาทถ้วน"},
		{"899", "แปดร้อยเก้าสิบเก้าบาทถ้วน"},
		{"3395", "สามพันสามร้อยเก้าสิบห้าบาทถ้วน"},
		{"10000", "หนึ่งหมื่นบาทถ้วน"},
		{"250000", "สองแสนห้าหมื่นบาทถ้วน"},
		{"1000000", "หนึ่งล้านบาทถ้วน"},
		{"1000001", "หนึ่งล้านหนึ่งบาทถ้วน"},
		{"21000000", "ยี่สิบเอ็ดล้านบาทถ้วน"},
		{"123456789.99", "หนึ่งร้อยยี่สิบสามล้านสี่แสนห้าหมื่นหกพันเจ็ดร้อยแปดสิบเก้าบาทเก้าสิบเก้าสตางค์"},
		{"1000000000000", "หนึ่งล้านล้านบาทถ้วน"},
		{"926.80", "เก้าร้อยยี่สิบหกบาทแปดสิบสตางค์"},
		{"1250.50", "หนึ่งพันสองร้อยห้าสิบบาทห้าสิบสตางค์"},
		{"10.10", "สิบบาทสิบสตางค์"},
		{"0.01", "หนึ่งสตางค์"},
		{"0.11", "สิบเอ็ดสตางค์"},
		{"0.25", "ยี่สิบห้าสตางค์"},
		{"1.005", "หนึ่งบาทหนึ่งสตางค์"},
		{"0.999", "หนึ่งบาทถ้วน"},
		{"-100", "ลบหนึ่งร้อยบาทถ้วน"},
		{"-0.5", "ลบห้าสิบสตางค์"},
	}
	for _, tt := range tests {
		got := FromDecimal(decimal.RequireFromString(tt.amount))
		assert.Equal(t, tt.want, got, "amount %s", tt.amount)
	}
}

func TestFromDecimal_Zero(t *testing.T) {
	assert.Equal(t, Zero, FromDecimal(decimal.Zero))
	assert.Equal(t, Zero, FromDecimal(decimal.RequireFromString("-0.001")))
}

func TestFromDecimal_Negative(t *testing.T) {
	for _, s := range []string{"1", "21.21", "1000001", "3395.55"} {
		pos := decimal.RequireFromString(s)
		assert.Equal(t, "ลบ"+FromDecimal(pos), FromDecimal(pos.Neg()), "amount %s", s)
	}
}

func TestFromDecimal_EvenSuffix(t *testing.T) {
	for _, s := range []string{"1.00", "20.00", "101.00", "5000000.00"} {
		got := FromDecimal(decimal.RequireFromString(s))
		assert.True(t, strings.HasSuffix(got, "ถ้วน"), "%s -> %s", s, got)
	}
	for _, s := range []string{"1.01", "20.50", "101.99", "5000000.10", "0.02"} {
		got := FromDecimal(decimal.RequireFromString(s))
		assert.NotContains(t, got, "ถ้วน", "%s -> %s", s, got)
		assert.True(t, strings.HasSuffix(got, "สตางค์"), "%s -> %s", s, got)
	}
}

func TestFromString(t *testing.T) {
	got, err := FromString("3395")
	require.NoError(t, err)
	assert.Equal(t, "สามพันสามร้อยเก้าสิบห้าบาทถ้วน", got)

	_, err = FromString("abc")
	assert.Error(t, err)
}

func TestFromDecimal_BeyondInt64(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"1e20", "หนึ่งร้อยล้านล้านล้านบาทถ้วน"},
		{"9223372036854775808", "เก้าล้านสองแสนสองหมื่นสามพันสามร้อยเจ็ดสิบสองล้านสามหมื่นหกพันแปดร้อยห้าสิบสี่ล้านเจ็ดแสนเจ็ดหมื่นห้าพันแปดร้อยแปดบาทถ้วน"},
		{"1000000000000000000001.50", "หนึ่งพันล้านล้านล้านหนึ่งบาทห้าสิบสตางค์"},
	}
	for _, tt := range tests {
		got := FromDecimal(decimal.RequireFromString(tt.amount))
		assert.Equal(t, tt.want, got, "amount %s", tt.amount)
	}
}
