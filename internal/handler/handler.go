// Package handler holds the HTTP handlers of the wallet API.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/AlexZinkM/xrpl-wallet/internal/common"
	"github.com/AlexZinkM/xrpl-wallet/internal/model"
)

const maxRequestBody = 64 << 10

// Error codes returned in model.ErrorResponse.Code
const (
	CodeNoWallet          = "no_wallet"
	CodeInvalidRequest    = "invalid_request"
	CodeInvalidCredential = "invalid_credential"
	CodeUnknownNetwork    = "unknown_network"
	CodeLedgerUnavailable = "ledger_unavailable"
	CodeLedgerError       = "ledger_error"
	CodeInternal          = "internal"
)

var validate = validator.New()

func init() {
	if err := validate.RegisterValidation("xrpaddress", isXRPAddress); err != nil {
		panic(err)
	}
}

// isXRPAddress checks a classic (r...) address including its checksum
func isXRPAddress(fl validator.FieldLevel) bool {
	return common.IsClassicAddress(fl.Field().String())
}

func validateRequest(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, fmt.Errorf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return errors.Join(errs...)
}

// decodeRequest decodes a JSON body into v and validates it.
func decodeRequest(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return validateRequest(v)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, model.ErrorResponse{Error: message, Code: code})
}

// writeInternal logs err and answers without exposing it.
func writeInternal(w http.ResponseWriter, logger *zap.Logger, msg string, err error) {
	logger.Error(msg, zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternal, "internal error")
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	http.Error(w, "Method not allowed. Should be "+allowed, http.StatusMethodNotAllowed)
}
