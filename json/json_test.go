package json_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alecthomas/parsec"
	"github.com/alecthomas/parsec/json"
)

func asRecoveredError(t *testing.T, err error) *parsec.RecoveredError {
	t.Helper()
	var recErr *parsec.RecoveredError
	require.True(t, errors.As(err, &recErr), "expected a *parsec.RecoveredError, got %T", err)
	return recErr
}

func TestParseCleanObject(t *testing.T) {
	v, err := json.Parse(`{"k":1}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]json.Value{"k": 1}, v)
}

func TestParseCleanList(t *testing.T) {
	v, err := json.Parse(`[1, 2, 3]`)
	require.NoError(t, err)
	assert.Equal(t, []json.Value{1, 2, 3}, v)
}

func TestParseUnrecoveredErrorReportsPosition(t *testing.T) {
	_, err := json.Parse(`{`)
	require.Error(t, err)
	assert.Equal(t, "at 1: expected string or '}'", err.Error())
}

func TestParseRecoveringSkipsUnexpectedInput(t *testing.T) {
	v, err := json.ParseRecovering(`[1 2]`)
	require.Error(t, err)
	assert.Equal(t, []json.Value{1}, v)

	recErr := asRecoveredError(t, err)
	assert.Equal(t, "at 2: unexpected input", recErr.Error())
	require.Len(t, recErr.Ops, 1)
	assert.Equal(t, parsec.RepairSkip, recErr.Ops[0].Op.Kind)
}

func TestParseRecoveringInsertsMissingValue(t *testing.T) {
	v, err := json.ParseRecovering(`{"k": }`)
	require.Error(t, err)
	assert.Equal(t, map[string]json.Value{"k": 1}, v)

	recErr := asRecoveredError(t, err)
	require.Len(t, recErr.Ops, 1)
	op := recErr.Ops[0]
	assert.Equal(t, parsec.RepairInsert, op.Op.Kind)
	assert.Equal(t, "1", op.Op.TokenRepr)
	assert.Equal(t, "at 3: expected value", recErr.Error())
}

func TestParseRecoveringAppliesMultipleRepairs(t *testing.T) {
	v, err := json.ParseRecovering(`{"k": 0,`)
	require.Error(t, err)
	assert.Equal(t, map[string]json.Value{"k": 0, "a": 1}, v)

	recErr := asRecoveredError(t, err)
	require.Len(t, recErr.Ops, 4, "expected the string/:/integer/} repair chain that completes the trailing pair")
	for _, op := range recErr.Ops {
		assert.Equal(t, parsec.RepairInsert, op.Op.Kind)
	}
}
