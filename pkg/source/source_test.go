package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RawSource(t *testing.T) {
	units, err := Parse("zsd_billing.abap", []byte("SELECT * FROM vbrk INTO TABLE @lt.\n"))
	require.NoError(t, err)
	require.Len(t, units, 1)

	u := units[0]
	assert.Equal(t, "ZSD_BILLING", u.ProgramName)
	assert.Equal(t, "ZSD_BILLING", u.IncludeName)
	assert.Equal(t, "PROG", u.Kind)
	assert.Equal(t, 0, u.StartLine)
	assert.Equal(t, "SELECT * FROM vbrk INTO TABLE @lt.\n", u.Code)
}

func TestParse_SingleJSON(t *testing.T) {
	units, err := Parse("unit.json", []byte(`{"pgm_name":"ZA","inc_name":"ZA_F01","type":"PROG","start_line":10,"code":"WRITE 1."}`))
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "ZA_F01", units[0].IncludeName)
	assert.Equal(t, 10, units[0].StartLine)
}

func TestParse_JSONArrayDetectedByContent(t *testing.T) {
	units, err := Parse("units.txt", []byte(`
	[
		{"pgm_name":"ZA","inc_name":"ZA","type":"PROG","code":"","findings":[{"message":"old"}]},
		{"pgm_name":"ZB","inc_name":"ZB","type":"PROG","code":""}
	]`))
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Nil(t, units[0].Findings)
	assert.Equal(t, "ZB", units[1].ProgramName)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("bad.json", []byte(`{"pgm_name":`))
	assert.Error(t, err)

	_, err = Parse("bad.json", []byte(`[{"pgm_name":`))
	assert.Error(t, err)

	_, err = Parse("nulls.json", []byte(`[null]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unit #0 is null")
}

func TestLoader_LoadFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "zreport.abap")
	require.NoError(t, os.WriteFile(file, []byte("WRITE 'x'."), 0o600))

	units, err := NewLoader().Load(context.Background(), file)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "ZREPORT", units[0].ProgramName)
}

func TestLoader_LoadDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.abap"), []byte("WRITE 'a'."), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# ignored"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.json"),
		[]byte(`[{"pgm_name":"ZB","inc_name":"ZB","type":"PROG","code":""},{"pgm_name":"ZC","inc_name":"ZC","type":"PROG","code":""}]`), 0o600))

	units, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, units, 3)
	assert.Equal(t, "A", units[0].ProgramName)
	assert.Equal(t, "ZB", units[1].ProgramName)
	assert.Equal(t, "ZC", units[2].ProgramName)
}

func TestLoader_WithExtensions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.abap"), []byte("WRITE 'a'."), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("WRITE 'b'."), 0o600))

	units, err := NewLoader().WithExtensions(".txt").Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "B", units[0].ProgramName)
}

func TestLoader_Missing(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing.abap"))
	assert.Error(t, err)
}
