package advisor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsxbet/abap-reviewer/pkg/types"
)

func TestRegisterAndCheck(t *testing.T) {
	advType := Type("test.register-and-check")
	want := []*types.Finding{{Message: "found"}}
	Register(advType, AdvisorFunc(func(_ context.Context, checkCtx Context) ([]*types.Finding, error) {
		assert.Equal(t, "ZPROG", checkCtx.Unit.ProgramName)
		return want, nil
	}))

	got, err := Check(context.Background(), advType, Context{Unit: &types.SourceUnit{ProgramName: "ZPROG"}})
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Contains(t, Registered(), advType)
}

func TestRegister_Duplicate(t *testing.T) {
	advType := Type("test.duplicate")
	noop := AdvisorFunc(func(context.Context, Context) ([]*types.Finding, error) { return nil, nil })
	Register(advType, noop)

	assert.Panics(t, func() { Register(advType, noop) })
}

func TestRegister_Nil(t *testing.T) {
	assert.Panics(t, func() { Register(Type("test.nil"), nil) })
}

func TestCheck_UnknownAdvisor(t *testing.T) {
	_, err := Check(context.Background(), Type("test.unknown"), Context{Unit: &types.SourceUnit{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown advisor")
}

func TestCheck_NilUnit(t *testing.T) {
	_, err := Check(context.Background(), Type("test.unknown"), Context{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without a source unit")
}

func TestCheck_RecoversPanic(t *testing.T) {
	advType := Type("test.panics")
	Register(advType, AdvisorFunc(func(context.Context, Context) ([]*types.Finding, error) {
		panic("boom")
	}))

	findings, err := Check(context.Background(), advType, Context{Unit: &types.SourceUnit{}})
	require.Error(t, err)
	assert.Nil(t, findings)
	assert.Contains(t, err.Error(), "boom")
}

func TestRegistered_Sorted(t *testing.T) {
	list := Registered()
	for i := 1; i < len(list); i++ {
		assert.Less(t, string(list[i-1]), string(list[i]))
	}
}

func TestNormalizeStatement(t *testing.T) {
	assert.Equal(t,
		"SELECT * FROM vbrk INTO TABLE @lt WHERE a~draft = space",
		NormalizeStatement("  SELECT *\r\n   FROM vbrk\n\tINTO TABLE @lt\n   WHERE a~draft  =  space  "),
	)

	long := strings.Repeat("x", maxStatementLogLength+10)
	got := NormalizeStatement(long)
	assert.Len(t, got, maxStatementLogLength+3)
	assert.True(t, strings.HasSuffix(got, "..."))
}
