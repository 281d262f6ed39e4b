package models

import "time"

const (
	TxCredit = "credit"
	TxDebit  = "debit"
)

type Transaction struct {
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Wallet struct {
	ID           string        `json:"_id"`
	UserID       string        `json:"userId"`
	Balance      float64       `json:"balance"`
	Transactions []Transaction `json:"transactions"`
}
