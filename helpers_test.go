package docskema_test

import (
	"testing"

	"github.com/reoring/docskema"
	"github.com/stretchr/testify/require"
)

var (
	str  = docskema.Prim(docskema.TypeString)
	num  = docskema.Prim(docskema.TypeInt)
	flt  = docskema.Prim(docskema.TypeFloat)
	bln  = docskema.Prim(docskema.TypeBool)
	f    = docskema.F
	obj  = docskema.Struct
	list = docskema.ListOf
)

func declare(t *testing.T, d docskema.Declaration, parent ...*docskema.Schema) *docskema.Schema {
	t.Helper()
	var p *docskema.Schema
	if len(parent) > 0 {
		p = parent[0]
	}
	s, err := docskema.Declare(d, p)
	require.NoError(t, err)
	return s
}

func issues(t *testing.T, err error) docskema.Issues {
	t.Helper()
	require.Error(t, err)
	iss, ok := docskema.AsIssues(err)
	require.True(t, ok, "expected Issues, got %T: %v", err, err)
	return iss
}

func accumulate() docskema.ValidateOpt {
	return docskema.ValidateOpt{Mode: docskema.ModeAccumulate}
}
