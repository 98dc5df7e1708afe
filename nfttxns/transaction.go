// Package nfttxns renders the NFT token transactions of an account
// as data table with offset pagination.
//
// The package decodes the backend responses, holds the view state
// of filters, order and page as Query and builds the table columns.
// Fetching the responses is left to the caller.
package nfttxns

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/domonda/go-datatable/format"
)

// Transaction is a row of the NFT transactions table.
type Transaction struct {
	TransactionHash   string    `json:"transaction_hash"`
	Cause             string    `json:"cause"`
	AffectedAccountID string    `json:"affected_account_id"`
	InvolvedAccountID string    `json:"involved_account_id"`
	DeltaAmount       Amount    `json:"delta_amount"`
	TokenID           string    `json:"token_id"`
	BlockTimestamp    Timestamp `json:"block_timestamp"`
	Outcomes          Outcomes  `json:"outcomes"`
	NFT               *NFT      `json:"nft,omitempty"`
}

// Outcomes of the transaction execution.
type Outcomes struct {
	// Status is nil while the transaction is pending.
	Status *bool `json:"status"`
}

// NFT is the metadata of the token contract.
type NFT struct {
	Contract string `json:"contract"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Icon     string `json:"icon"`
}

// Direction of a transaction from the perspective of the affected account.
type Direction string

const (
	DirectionSelf Direction = "SELF"
	DirectionOut  Direction = "OUT"
	DirectionIn   Direction = "IN"
)

// Direction returns DirectionSelf if the affected account
// is also the involved one, DirectionOut for negative
// delta amounts and DirectionIn otherwise.
func (t *Transaction) Direction() Direction {
	switch {
	case t.InvolvedAccountID == t.AffectedAccountID:
		return DirectionSelf
	case t.DeltaAmount.Sign() < 0:
		return DirectionOut
	}
	return DirectionIn
}

// StatusText returns "success", "failure" or "pending".
func (t *Transaction) StatusText() string {
	switch {
	case t.Outcomes.Status == nil:
		return "pending"
	case *t.Outcomes.Status:
		return "success"
	}
	return "failure"
}

// Amount is a decimal number of arbitrary size
// encoded as JSON string or number.
type Amount string

// Sign returns -1, 0 or +1 like big.Float.Sign.
// Invalid or empty amounts return 0.
func (a Amount) Sign() int {
	f, ok := new(big.Float).SetString(string(a))
	if !ok {
		return 0
	}
	return f.Sign()
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	str, err := unmarshalNumberString(data)
	if err != nil {
		return fmt.Errorf("can't unmarshal %s as Amount: %w", data, err)
	}
	*a = Amount(str)
	return nil
}

// Timestamp is a Unix timestamp in nanoseconds
// encoded as JSON string or number.
type Timestamp int64

// IsZero returns true if no timestamp was set.
func (ts Timestamp) IsZero() bool {
	return ts == 0
}

// Time returns the timestamp as UTC time.
func (ts Timestamp) Time() time.Time {
	return format.NanoToTime(int64(ts))
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	str, err := unmarshalNumberString(data)
	if err != nil {
		return fmt.Errorf("can't unmarshal %s as Timestamp: %w", data, err)
	}
	if str == "" {
		*ts = 0
		return nil
	}
	nanos, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return fmt.Errorf("can't unmarshal %s as Timestamp: %w", data, err)
	}
	*ts = Timestamp(nanos)
	return nil
}

// unmarshalNumberString returns the digits of a JSON number,
// the content of a JSON string or an empty string for null.
func unmarshalNumberString(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		err := json.Unmarshal(data, &str)
		return str, err
	}
	var num json.Number
	err := json.Unmarshal(data, &num)
	return num.String(), err
}
