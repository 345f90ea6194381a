package forms

import (
	"net/url"
	"time"

	"github.com/kmalov/cashlogger/internal/models"
)

// SignupForm is the validated signup submission.
type SignupForm struct {
	Email    string
	Password string
	Name     string
}

var signupSchema = []Field{
	{Name: "email", Kind: Email, Required: true},
	{Name: "password", Kind: Password, Required: true},
	{Name: "name", Kind: Text, Required: true},
}

// ParseSignup validates a signup submission.
func ParseSignup(values url.Values) (SignupForm, Errors) {
	parsed, errs := validate(signupSchema, values.Get)
	if !errs.Valid() {
		return SignupForm{}, errs
	}
	return SignupForm{
		Email:    parsed["email"].Raw,
		Password: parsed["password"].Raw,
		Name:     parsed["name"].Raw,
	}, errs
}

// LoginForm is the validated login submission.
type LoginForm struct {
	Email    string
	Password string
}

var loginSchema = []Field{
	{Name: "email", Kind: Email, Required: true},
	{Name: "password", Kind: Password, Required: true},
}

// ParseLogin validates a login submission.
func ParseLogin(values url.Values) (LoginForm, Errors) {
	parsed, errs := validate(loginSchema, values.Get)
	if !errs.Valid() {
		return LoginForm{}, errs
	}
	return LoginForm{
		Email:    parsed["email"].Raw,
		Password: parsed["password"].Raw,
	}, errs
}

// TransactionForm is the validated add-transaction submission.
type TransactionForm struct {
	Name        string
	Magnitude   int64
	Type        models.EntryType
	Description string
	Date        time.Time
}

var transactionSchema = []Field{
	{Name: "name", Kind: Text, Required: true},
	{Name: "sum", Kind: Int, Required: true},
	{Name: "type", Kind: Choice, Required: true, Choices: []string{models.Income.FormValue(), models.Loss.FormValue()}},
	{Name: "description", Kind: Text},
	{Name: "date", Kind: Date, Required: true},
}

// ParseTransaction validates an add-transaction submission.
func ParseTransaction(values url.Values) (TransactionForm, Errors) {
	parsed, errs := validate(transactionSchema, values.Get)
	if !errs.Valid() {
		return TransactionForm{}, errs
	}

	entryType, err := models.ParseEntryType(parsed["type"].Choice)
	if err != nil {
		errs["type"] = "Not a valid choice."
		return TransactionForm{}, errs
	}

	return TransactionForm{
		Name:        parsed["name"].Raw,
		Magnitude:   parsed["sum"].Int,
		Type:        entryType,
		Description: parsed["description"].Raw,
		Date:        parsed["date"].Date,
	}, errs
}
