package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Validation messages in the product locale, keyed by struct field.
var bookMessages = map[string]string{
	"Title":  "Título é obrigatório",
	"Author": "Autor é obrigatório",
}

var paymentMessages = map[string]string{
	"Name":        "Nome é obrigatório",
	"Amount":      "Valor deve ser positivo",
	"Document":    "CPF inválido",
	"Description": "Descrição é obrigatória",
	"Email":       "Email inválido",
	"Phone":       "Telefone inválido",
}

// firstViolation reports the message for the first violated field only,
// mirroring the one-error-at-a-time contract of the original forms.
func firstViolation(err error, messages map[string]string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := messages[verrs[0].Field()]; ok {
			return msg
		}
		return "Campo inválido: " + verrs[0].Field()
	}
	return "Dados inválidos"
}
