package abapparser

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsxbet/abap-reviewer/pkg/types"
)

func TestSelects(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		from      string
		target    string
		intoTable bool
		tables    []types.TableRef
	}{
		{
			name:      "into table with alias",
			src:       "SELECT a~vbeln FROM vbrk AS a INTO TABLE @lt_result.",
			from:      "vbrk AS a",
			target:    "@lt_result",
			intoTable: true,
			tables:    []types.TableRef{{Table: "VBRK", Alias: "A"}},
		},
		{
			name:   "single into work area",
			src:    "select single * from vbrk into @ls_vbrk where vbeln = @lv_vbeln.",
			from:   "vbrk",
			target: "@ls_vbrk",
			tables: []types.TableRef{{Table: "VBRK", Alias: "VBRK"}},
		},
		{
			name:      "where before into",
			src:       "SELECT vbeln FROM vbrp WHERE posnr = '000010' INTO TABLE @DATA(lt_items).",
			from:      "vbrp",
			target:    "@DATA(lt_items)",
			intoTable: true,
			tables:    []types.TableRef{{Table: "VBRP", Alias: "VBRP"}},
		},
		{
			name:      "join across lines",
			src:       "SELECT a~vbeln, b~posnr\n  FROM vbrk AS a\n  JOIN vbrp AS b ON a~vbeln = b~vbeln\n  INTO TABLE @lt_items.",
			from:      "vbrk AS a\n  JOIN vbrp AS b ON a~vbeln = b~vbeln",
			target:    "@lt_items",
			intoTable: true,
			tables:    []types.TableRef{{Table: "VBRK", Alias: "A"}, {Table: "VBRP", Alias: "B"}},
		},
		{
			name:      "for all entries",
			src:       "SELECT vbeln FROM vbrk FOR ALL ENTRIES IN @lt_keys WHERE vbeln = @lt_keys-vbeln INTO TABLE @lt_vbrk.",
			from:      "vbrk",
			target:    "@lt_vbrk",
			intoTable: true,
			tables:    []types.TableRef{{Table: "VBRK", Alias: "VBRK"}},
		},
		{
			name:      "order by before into",
			src:       "SELECT vbeln FROM vbrk ORDER BY vbeln INTO TABLE @lt_vbrk.",
			from:      "vbrk",
			target:    "@lt_vbrk",
			intoTable: true,
			tables:    []types.TableRef{{Table: "VBRK", Alias: "VBRK"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stmts := slices.Collect(Selects(tc.src))
			require.Len(t, stmts, 1)

			s := stmts[0]
			assert.Equal(t, tc.from, s.FromClause)
			assert.Equal(t, tc.target, s.Target)
			assert.Equal(t, tc.intoTable, s.IntoTable)
			assert.Equal(t, tc.tables, s.Tables)
			assert.Equal(t, 0, s.Start)
			assert.Equal(t, len(tc.src), s.End)
			assert.Equal(t, tc.src[:len(tc.src)-1], s.Text)
		})
	}
}

func TestSelects_NoMatch(t *testing.T) {
	for _, src := range []string{
		"",
		"WRITE 'hello'.",
		"SELECT * FROM vbrk WHERE vbeln = @lv.",
		"SELECT * FROM vbrk INTO TABLE @lt",
		"DELETE FROM vbrk WHERE vbeln = @lv.",
	} {
		assert.Emptyf(t, slices.Collect(Selects(src)), "source: %q", src)
	}
}

func TestSelects_MultipleInOrder(t *testing.T) {
	src := "SELECT * FROM vbrk INTO TABLE @a.\nWRITE 'x'.\nSELECT * FROM mara INTO TABLE @b.\nSELECT * FROM vbrp INTO TABLE @c."

	var targets []string
	var prevEnd int
	for s := range Selects(src) {
		assert.GreaterOrEqual(t, s.Start, prevEnd)
		prevEnd = s.End
		targets = append(targets, s.Target)
	}
	assert.Equal(t, []string{"@a", "@b", "@c"}, targets)
}

func TestSelects_StopsEarly(t *testing.T) {
	src := "SELECT * FROM vbrk INTO TABLE @a. SELECT * FROM vbrp INTO TABLE @b."

	count := 0
	for range Selects(src) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestFindSelectsOn(t *testing.T) {
	src := "SELECT * FROM vbrk INTO TABLE @a.\nSELECT * FROM mara INTO TABLE @b.\nSELECT * FROM vbrp INTO TABLE @c."

	stmts := FindSelectsOn(src, "vbrk", "VBRP")
	require.Len(t, stmts, 2)
	assert.Equal(t, "@a", stmts[0].Target)
	assert.Equal(t, "@c", stmts[1].Target)

	assert.Empty(t, FindSelectsOn(src, "KNA1"))
}

func TestTablesNamed(t *testing.T) {
	s := &SelectStatement{Tables: []types.TableRef{
		{Table: "VBRK", Alias: "A"},
		{Table: "KNA1", Alias: "C"},
		{Table: "VBRP", Alias: "B"},
	}}

	assert.Equal(t, []types.TableRef{{Table: "VBRK", Alias: "A"}, {Table: "VBRP", Alias: "B"}}, s.TablesNamed("VBRK", "VBRP"))
	assert.Nil(t, s.TablesNamed("MARA"))
}
