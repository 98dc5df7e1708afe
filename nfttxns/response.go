package nfttxns

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

type txnsResponse struct {
	Txns []Transaction `json:"txns"`
}

// DecodeTxns decodes a transactions response of the form {"txns": [...]}.
//
// A missing or empty txns array returns nil,
// which is rendered as the "no transactions" error row.
func DecodeTxns(r io.Reader) ([]Transaction, error) {
	var resp txnsResponse
	err := json.NewDecoder(r).Decode(&resp)
	if err != nil {
		return nil, fmt.Errorf("can't decode NFT transactions: %w", err)
	}
	if len(resp.Txns) == 0 {
		return nil, nil
	}
	return resp.Txns, nil
}

type countResponse struct {
	Txns []struct {
		Count Amount `json:"count"`
	} `json:"txns"`
}

// DecodeCount decodes a count response of the form {"txns": [{"count": n}]}.
// A missing count returns zero.
func DecodeCount(r io.Reader) (int, error) {
	var resp countResponse
	err := json.NewDecoder(r).Decode(&resp)
	if err != nil {
		return 0, fmt.Errorf("can't decode NFT transactions count: %w", err)
	}
	if len(resp.Txns) == 0 || resp.Txns[0].Count == "" {
		return 0, nil
	}
	count, err := strconv.Atoi(string(resp.Txns[0].Count))
	if err != nil {
		return 0, fmt.Errorf("can't decode NFT transactions count %q: %w", resp.Txns[0].Count, err)
	}
	return count, nil
}
