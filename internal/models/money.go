package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// 与 decimal(10,2) 列对应
const moneyScale = 2

var maxMoney = decimal.RequireFromString("99999999.99")

// Money 商品价格，固定 2 位小数
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal 从 decimal 创建金额，按 2 位小数四舍五入
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(moneyScale)}
}

// ParseMoney 解析字符串金额
func ParseMoney(raw string) (Money, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Money{}, errors.New("empty amount")
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return Money{}, err
	}
	return NewMoneyFromDecimal(d), nil
}

// Fits 非负且不超过 decimal(10,2) 的上限
func (m Money) Fits() bool {
	return !m.IsNegative() && m.LessThanOrEqual(maxMoney)
}

// String 返回 2 位小数格式
func (m Money) String() string {
	return m.Decimal.StringFixed(moneyScale)
}

// MarshalJSON 输出字符串，避免浮点精度问题
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON 同时接受 "12.50" 与 12.5
func (m *Money) UnmarshalJSON(b []byte) error {
	text := string(b)
	if text == "null" || text == "" {
		return nil
	}
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(b, &text); err != nil {
			return err
		}
	}
	parsed, err := ParseMoney(text)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value 写库统一为定点字符串，sqlite 与 postgres 行为一致
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan 读库
func (m *Money) Scan(value interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	*m = NewMoneyFromDecimal(d)
	return nil
}
