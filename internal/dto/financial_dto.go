package dto

// WithdrawRequest asks the platform to pay out part of the caller's earnings
// balance.
type WithdrawRequest struct {
	Amount *uint64 `json:"amount" validate:"required"`
}

// WithdrawalResponse records the withdrawal intent handed to the host ledger.
type WithdrawalResponse struct {
	Account          string `json:"account"`
	Amount           uint64 `json:"amount"`
	RemainingBalance uint64 `json:"remaining_balance"`
	Sequence         uint64 `json:"sequence"`
}
