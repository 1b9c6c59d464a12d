// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validCurrencies contains ISO 4217 currency codes.
var validCurrencies = map[string]bool{
	"AED": true, "ARS": true, "AUD": true, "BDT": true, "BGN": true,
	"BHD": true, "BRL": true, "CAD": true, "CHF": true, "CLP": true,
	"CNY": true, "COP": true, "CZK": true, "DKK": true, "EGP": true,
	"EUR": true, "GBP": true, "HKD": true, "HUF": true, "IDR": true,
	"ILS": true, "INR": true, "ISK": true, "JPY": true, "KES": true,
	"KRW": true, "KWD": true, "LKR": true, "MAD": true, "MXN": true,
	"MYR": true, "NGN": true, "NOK": true, "NPR": true, "NZD": true,
	"OMR": true, "PEN": true, "PHP": true, "PKR": true, "PLN": true,
	"QAR": true, "RON": true, "RSD": true, "RUB": true, "SAR": true,
	"SEK": true, "SGD": true, "THB": true, "TRY": true, "TWD": true,
	"UAH": true, "USD": true, "UYU": true, "VND": true, "ZAR": true,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("iso4217", validateISO4217)
		_ = v.RegisterValidation("account_type", validateAccountType)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("transaction_status", validateTransactionStatus)
		_ = v.RegisterValidation("day_of_month", validateDayOfMonth)
	}
}

func validateISO4217(fl validator.FieldLevel) bool {
	return validCurrencies[fl.Field().String()]
}

func validateAccountType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "checking", "savings", "credit_card", "cash", "investment":
		return true
	}
	return false
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "deposit", "withdrawal", "transfer":
		return true
	}
	return false
}

func validateTransactionStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "completed", "cancelled":
		return true
	}
	return false
}

func validateDayOfMonth(fl validator.FieldLevel) bool {
	d := fl.Field().Int()
	return d >= 1 && d <= 31
}
