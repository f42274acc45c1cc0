package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunScriptSatisfiableEquation(t *testing.T) {
	src := `
decl-var x
decl-var y
assert (eq (concat "a" x) (concat x "a"))
check
`
	result, vars, h, err := runScript(src)
	require.NoError(t, err)
	assert.Equal(t, "sat", result)
	require.Contains(t, vars, "x")
	require.NotNil(t, h)
}

func TestRunScriptUnsatisfiableEquation(t *testing.T) {
	src := `
decl-var x
decl-var y
assert (eq (concat "ab" x) (concat "ac" y))
check
`
	result, _, _, err := runScript(src)
	require.NoError(t, err)
	assert.Equal(t, "unsat", result)
}

func TestRunScriptPushPopRestoresSatisfiability(t *testing.T) {
	src := `
decl-var x
push
assert (eq x "a")
assert (eq x "b")
pop 1
check
`
	result, _, _, err := runScript(src)
	require.NoError(t, err)
	assert.Equal(t, "sat", result)
}

func TestRunScriptAssertNotDiseq(t *testing.T) {
	src := `
decl-var x
decl-var y
assert-not (eq x y)
check
`
	result, _, _, err := runScript(src)
	require.NoError(t, err)
	assert.Equal(t, "sat", result)
}

func TestRunScriptUnknownCommandErrors(t *testing.T) {
	_, _, _, err := runScript("frobnicate\n")
	assert.Error(t, err)
}

func TestRunScriptIgnoresBlankLinesAndComments(t *testing.T) {
	src := `
# a comment
decl-var x

check
`
	result, _, _, err := runScript(src)
	require.NoError(t, err)
	assert.Equal(t, "sat", result)
}
