package amqp

import (
	"encoding/json"
	"time"
)

// LedgerChangedMessage tells the mirror worker that one record collection
// of a condominium changed. It carries no record data; the worker reloads
// the ledger from storage so it always pushes the current state.
type LedgerChangedMessage struct {
	Condo      string    `json:"condo"`
	Collection string    `json:"collection"`
	ChangedAt  time.Time `json:"changedAt"`
}

const (
	CollectionExpenses = "expenses"
	CollectionIncomes  = "incomes"
	CollectionAccounts = "bankAccounts"
)

func NewLedgerChangedMessage(condo, collection string) *LedgerChangedMessage {
	return &LedgerChangedMessage{
		Condo:      condo,
		Collection: collection,
		ChangedAt:  time.Now(),
	}
}

func (m *LedgerChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerChangedMessageFromJSON(data []byte) (*LedgerChangedMessage, error) {
	var msg LedgerChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
