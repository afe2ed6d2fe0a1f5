package account

// NewAccount represents the request body for opening an account.
type NewAccount struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
	Money  int64 `json:"money" validate:"gte=0"`
}

// AmountInput carries the amount of a deposit or a withdrawal, in whole
// currency units.
type AmountInput struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// MovementResponse is the ledger record together with the new balance.
type MovementResponse struct {
	ID        int64 `json:"id"`
	AccountID int64 `json:"account_id"`
	Amount    int64 `json:"amount"`
	Balance   int64 `json:"balance"`
}
