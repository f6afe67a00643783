package types

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindForbidden, KindOf(E(KindForbidden, "access denied")))
	assert.Equal(t, KindInventory, KindOf(Ef(KindInventory, "requested %d", 5)))
	assert.Equal(t, KindNotFound, KindOf(gorm.ErrRecordNotFound))
	assert.Equal(t, KindTimeout, KindOf(context.DeadlineExceeded))
	assert.Equal(t, KindInternal, KindOf(errors.New("disk on fire")))

	wrapped := fmt.Errorf("tx failed: %w", E(KindValidation, "bad date"))
	assert.Equal(t, KindValidation, KindOf(wrapped))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, 401, HTTPStatus(E(KindUnauthenticated, "no token")))
	assert.Equal(t, 403, HTTPStatus(E(KindForbidden, "nope")))
	assert.Equal(t, 400, HTTPStatus(E(KindValidation, "bad input")))
	assert.Equal(t, 404, HTTPStatus(E(KindNotFound, "gone")))
	assert.Equal(t, 409, HTTPStatus(E(KindInventory, "sold out")))
	assert.Equal(t, 504, HTTPStatus(context.DeadlineExceeded))
	assert.Equal(t, 500, HTTPStatus(errors.New("boom")))
}

func TestMessageHidesInternalDetail(t *testing.T) {
	assert.Equal(t, "internal server error", Message(errors.New("password for db is hunter2")))
	assert.Equal(t, "internal server error", Message(Wrap(KindInternal, "store failure", errors.New("dsn leak"))))
	assert.Equal(t, "sold out", Message(E(KindInventory, "sold out")))
	assert.Equal(t, "store operation timed out", Message(context.DeadlineExceeded))
}
