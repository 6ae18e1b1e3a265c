// Package validation checks login and registration input before anything
// is sent to the backend. Rules are declared as validator tags and failures
// are reported per field with user-facing (pt-BR) messages.
package validation

import (
	"errors"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/go-playground/validator/v10"
)

// Field keys used in FieldErrors.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldFullName        = "fullName"
	FieldConfirmPassword = "confirmPassword"
	FieldSalary          = "salary"
	FieldInitialBalance  = "initialBalance"
)

// ErrInvalid matches every *Error with errors.Is.
var ErrInvalid = errors.New("invalid input")

// FieldErrors maps a field key to its message. At most one message per field.
type FieldErrors map[string]string

// Error carries the failed fields.
type Error struct {
	Fields FieldErrors
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// RegisterInput is what the registration form collects.
type RegisterInput struct {
	FullName         string
	Email            string
	Password         string
	ConfirmPassword  string
	FinancialProfile models.FinancialProfile
	Salary           *float64
	InitialBalance   *float64
}

// DTO converts the input to the repository payload. The name and e-mail are
// trimmed and an unset profile becomes MODERADO.
func (in RegisterInput) DTO() models.RegisterDTO {
	fp := in.FinancialProfile
	if !fp.Valid() {
		fp = models.ProfileModerado
	}
	return models.RegisterDTO{
		FullName:         strings.TrimSpace(in.FullName),
		Email:            strings.TrimSpace(in.Email),
		Password:         in.Password,
		FinancialProfile: fp,
		Salary:           in.Salary,
		InitialBalance:   in.InitialBalance,
	}
}

type loginForm struct {
	Email    string `form:"email" validate:"required,loose_email"`
	Password string `form:"password" validate:"required,min=8"`
}

type registerForm struct {
	FullName        string   `form:"fullName" validate:"required,full_name"`
	Email           string   `form:"email" validate:"required,loose_email"`
	Password        string   `form:"password" validate:"required,min=8"`
	ConfirmPassword string   `form:"confirmPassword" validate:"required,eqfield=Password"`
	Salary          *float64 `form:"salary" validate:"omitempty,gte=0"`
	InitialBalance  *float64 `form:"initialBalance" validate:"omitempty,finite"`
}

var messages = map[string]map[string]string{
	FieldEmail: {
		"required":    "E-mail é obrigatório.",
		"loose_email": "E-mail inválido.",
	},
	FieldPassword: {
		"required": "Senha é obrigatória.",
		"min":      "Senha deve ter no mínimo 8 caracteres.",
	},
	FieldFullName: {
		"required":  "Nome completo é obrigatório.",
		"full_name": "Informe nome e sobrenome.",
	},
	FieldConfirmPassword: {
		"required": "Confirmação de senha é obrigatória.",
		"eqfield":  "As senhas não coincidem.",
	},
	FieldSalary: {
		"gte": "Salário não pode ser negativo.",
	},
	FieldInitialBalance: {
		"finite": "Saldo inicial inválido.",
	},
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(strings.ToLower(strings.TrimSpace(fl.Field().String())))
	})
	_ = v.RegisterValidation("full_name", func(fl validator.FieldLevel) bool {
		return len(strings.Fields(fl.Field().String())) >= 2
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return v
}

// ValidateLogin returns the failed fields, or nil when the input is valid.
func ValidateLogin(in models.LoginDTO) FieldErrors {
	return check(loginForm{
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
	})
}

// ValidateRegister returns the failed fields, or nil when the input is valid.
func ValidateRegister(in RegisterInput) FieldErrors {
	return check(registerForm{
		FullName:        strings.TrimSpace(in.FullName),
		Email:           strings.TrimSpace(in.Email),
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
		Salary:          in.Salary,
		InitialBalance:  in.InitialBalance,
	})
}

// AsError wraps non-empty field errors into an *Error.
func AsError(fe FieldErrors) error {
	if len(fe) == 0 {
		return nil
	}
	return &Error{Fields: fe}
}

func check(form any) FieldErrors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"": err.Error()}
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		msg, ok := messages[field][fe.Tag()]
		if !ok {
			msg = "Valor inválido."
		}
		out[field] = msg
	}
	return out
}
