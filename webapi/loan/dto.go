package loan

import "time"

// NewLoanType represents the request body for creating a loan product.
type NewLoanType struct {
	Name     string `json:"name" validate:"required,max=100"`
	Interest int    `json:"interest" validate:"gte=0,lte=1000"`
	Days     int    `json:"days" validate:"gte=0,lte=36500"`
}

// NewLoan requests a loan of a given type. ExpiredAt overrides the type's
// term when set.
type NewLoan struct {
	LoanTypeID int64      `json:"loan_type_id" validate:"required,gt=0"`
	AmountOut  int64      `json:"amount_out" validate:"required,gt=0"`
	ExpiredAt  *time.Time `json:"expired_at"`
}

// CompensationInput carries a repayment amount.
type CompensationInput struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// CompensationResponse is the booked repayment with the loan's new state.
type CompensationResponse struct {
	ID             int64  `json:"id"`
	LoanID         int64  `json:"loan_id"`
	Amount         int64  `json:"amount"`
	AmountExpected int64  `json:"amount_expected"`
	AmountIn       int64  `json:"amount_in"`
	IsCovered      bool   `json:"is_covered"`
	State          string `json:"state"`
}

func (n NewLoan) expiry() time.Time {
	if n.ExpiredAt == nil {
		return time.Time{}
	}
	return *n.ExpiredAt
}
