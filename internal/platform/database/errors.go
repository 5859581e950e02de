package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrorKind classifies a store failure.
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindConstraint
	KindNotNull
	KindDuplicate
	KindForeignKey
	KindConnection
)

func (k ErrorKind) String() string {
	switch k {
	case KindConstraint:
		return "constraint_violation"
	case KindNotNull:
		return "not_null_violation"
	case KindDuplicate:
		return "duplicate_key"
	case KindForeignKey:
		return "foreign_key_violation"
	case KindConnection:
		return "connection_failure"
	default:
		return "other"
	}
}

// Classify maps err onto an ErrorKind. Postgres SQLSTATE codes are used when
// available; message matching is kept here only for drivers without codes.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindOther
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifySQLState(pgErr.Code)
	}

	var acquireErr *AcquireError
	var netErr net.Error
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return KindDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return KindForeignKey
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return KindConstraint
	case errors.As(err, &acquireErr):
		return KindConnection
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, driver.ErrBadConn), errors.Is(err, sql.ErrConnDone):
		return KindConnection
	case errors.As(err, &netErr):
		return KindConnection
	}

	return classifyMessage(strings.ToLower(err.Error()))
}

func classifySQLState(code string) ErrorKind {
	switch code {
	case "23505":
		return KindDuplicate
	case "23503":
		return KindForeignKey
	case "23502":
		return KindNotNull
	case "23514", "22001", "22003":
		return KindConstraint
	case "53300", "57P01", "57P02", "57P03":
		return KindConnection
	}
	switch {
	case strings.HasPrefix(code, "08"):
		return KindConnection
	case strings.HasPrefix(code, "23"):
		return KindConstraint
	}
	return KindOther
}

func classifyMessage(msg string) ErrorKind {
	switch {
	case strings.Contains(msg, "unique constraint"), strings.Contains(msg, "duplicate key"):
		return KindDuplicate
	case strings.Contains(msg, "foreign key"):
		return KindForeignKey
	case strings.Contains(msg, "not null constraint"), strings.Contains(msg, "not-null constraint"):
		return KindNotNull
	case strings.Contains(msg, "check constraint"), strings.Contains(msg, "value too long"):
		return KindConstraint
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "timeout"):
		return KindConnection
	}
	return KindOther
}
