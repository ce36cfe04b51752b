package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind classifica o erro de negócio no eixo que importa para a borda HTTP.
type Kind int

const (
	KindInvalidInput Kind = iota
	KindNotFound
	KindConflict
	KindUnauthorized
	KindInternal
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrInvalidInput(code string) error {
	return BusinessError{Kind: KindInvalidInput, Code: code}
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func ErrConflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func ErrInternal(code string) error {
	return BusinessError{Kind: KindInternal, Code: code}
}

// WithMessage anexa um texto voltado ao usuário final, preservando o código.
func WithMessage(err error, msg string) error {
	var be BusinessError
	if errors.As(err, &be) {
		be.Message = msg
		return be
	}
	return err
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return KindInternal, false
}

// IsExclusionConflict detecta violação da constraint de exclusão de faixa
// no Postgres (SQLSTATE 23P01).
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}
