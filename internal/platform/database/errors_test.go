package database

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassify_SQLState(t *testing.T) {
	cases := map[string]ErrorKind{
		"23505": KindDuplicate,
		"23503": KindForeignKey,
		"23502": KindNotNull,
		"23514": KindConstraint,
		"22001": KindConstraint,
		"08006": KindConnection,
		"57P01": KindConnection,
		"42P01": KindOther,
	}
	for code, want := range cases {
		err := fmt.Errorf("failed to create property: %w", &pgconn.PgError{Code: code, Message: "x"})
		assert.Equal(t, want, Classify(err), code)
	}
}

func TestClassify_Sentinels(t *testing.T) {
	assert.Equal(t, KindDuplicate, Classify(gorm.ErrDuplicatedKey))
	assert.Equal(t, KindForeignKey, Classify(fmt.Errorf("wrap: %w", gorm.ErrForeignKeyViolated)))
	assert.Equal(t, KindConnection, Classify(&AcquireError{Attempts: 3, Err: context.DeadlineExceeded}))
	assert.Equal(t, KindConnection, Classify(context.DeadlineExceeded))
	assert.Equal(t, KindOther, Classify(errors.New("something odd")))
	assert.Equal(t, KindOther, Classify(nil))
}

func TestClassify_ConnectionFailures(t *testing.T) {
	dial := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	assert.Equal(t, KindConnection, Classify(fmt.Errorf("failed to connect: %w", dial)))
	assert.Equal(t, KindConnection, Classify(fmt.Errorf("list: %w", &AcquireError{Attempts: 2, Err: dial})))
}

func TestClassify_DriverMessages(t *testing.T) {
	assert.Equal(t, KindDuplicate, Classify(errors.New("UNIQUE constraint failed: users.email")))
	assert.Equal(t, KindForeignKey, Classify(errors.New("FOREIGN KEY constraint failed")))
	assert.Equal(t, KindNotNull, Classify(errors.New("NOT NULL constraint failed: properties.price")))
	assert.Equal(t, KindConstraint, Classify(errors.New("CHECK constraint failed: rating")))
	assert.Equal(t, KindConnection, Classify(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")))
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "duplicate_key", KindDuplicate.String())
	assert.Equal(t, "other", ErrorKind(99).String())
}
