package presstran_test

import (
	"errors"
	"testing"

	"github.com/flyingtimes/presstran"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := presstran.Errorf(presstran.ENOTFOUND, "article %q not found", "test")

	assert.Equal(t, presstran.ENOTFOUND, presstran.ErrorCode(err))
	assert.Equal(t, "article \"test\" not found", presstran.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, presstran.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, presstran.EINTERNAL, presstran.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, presstran.ErrorMessage(nil))
}
