// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("split_type", validateSplitType)
	}
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "expense", "income", "settlement", "reimbursement":
		return true
	}
	return false
}

func validateSplitType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "splitEqually", "user1_only", "user2_only":
		return true
	}
	return false
}
