package model

// ErrorResponse is the body of every failed API call. Code is a stable
// machine-readable value such as "no_wallet" or "ledger_unavailable"; Error
// is for humans and may change.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
