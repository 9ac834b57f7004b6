package ledger

import (
	"math/big"
	"strings"
)

// TxHash is an opaque reference to a confirmed ledger transaction, conventionally 0x-prefixed.
type TxHash string

// Decimals is the number of fractional digits in native ledger amounts.
const Decimals = 18

const balanceDisplayDigits = 6

var unit = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)

// FormatTxHashShort returns the first 6 characters after the 0x prefix.
func FormatTxHashShort(txHash string) string {
	if len(txHash) <= 2 {
		return ""
	}
	end := 8
	if len(txHash) < end {
		end = len(txHash)
	}
	return txHash[2:end]
}

// FormatBalance renders a base-unit amount as whole units fixed to 6 decimal places.
// A nil balance formats as zero.
func FormatBalance(balance *big.Int) string {
	if balance == nil {
		balance = new(big.Int)
	}
	r := new(big.Rat).SetFrac(balance, unit)
	return r.FloatString(balanceDisplayDigits)
}

// HasActiveSubscription reports whether id is present and strictly positive.
func HasActiveSubscription(id *big.Int) bool {
	return id != nil && id.Sign() > 0
}

// NeedsDeposit reports whether the user must deposit before chatting: either there
// is no active subscription, or the subscription has no positive balance.
func NeedsDeposit(id *big.Int, balance *big.Int) bool {
	if !HasActiveSubscription(id) {
		return true
	}
	return balance == nil || balance.Sign() <= 0
}

// CanWithdraw reports whether an active subscription holds a withdrawable balance.
func CanWithdraw(id *big.Int, balance *big.Int) bool {
	return HasActiveSubscription(id) && balance != nil && balance.Sign() > 0
}

// StatusLine is the header summary shown next to the wallet button.
func StatusLine(id *big.Int, balance *big.Int, symbol string) string {
	if !HasActiveSubscription(id) {
		return "No subscription"
	}
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		symbol = "ETH"
	}
	amount := "..."
	if balance != nil {
		amount = FormatBalance(balance)
	}
	return "Balance: " + amount + " " + symbol
}

// ParseAmount parses a decimal base-unit amount. Empty input yields nil (absent).
func ParseAmount(raw string) (*big.Int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, false
	}
	return v, true
}
