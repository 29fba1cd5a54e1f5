package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestMergeStyleIsPure(t *testing.T) {
	existing := &excelize.Style{
		Font:      &excelize.Font{Size: 10, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "left"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFFF00"}},
	}

	merged := MergeStyle(existing, Style{Bold: true, Horizontal: "center", Border: "thin"})

	// input untouched
	assert.False(t, existing.Font.Bold)
	assert.Equal(t, "left", existing.Alignment.Horizontal)
	assert.Empty(t, existing.Border)

	require.NotNil(t, merged.Font)
	assert.True(t, merged.Font.Bold)
	assert.Equal(t, 10.0, merged.Font.Size)
	assert.Equal(t, "Arial", merged.Font.Family)
	assert.Equal(t, "center", merged.Alignment.Horizontal)
	assert.Equal(t, existing.Fill, merged.Fill)
	assert.Len(t, merged.Border, 4)
}

func TestMergeStyleBorderOnlyKeepsAlignment(t *testing.T) {
	existing := &excelize.Style{Alignment: &excelize.Alignment{Horizontal: "center", WrapText: true}}

	merged := MergeStyle(existing, Style{Border: "medium"})

	assert.Equal(t, existing.Alignment, merged.Alignment)
	for _, b := range merged.Border {
		assert.Equal(t, 2, b.Style)
		assert.Equal(t, "000000", b.Color)
	}
}

func TestMergeStyleNilExisting(t *testing.T) {
	merged := MergeStyle(nil, Style{FontSize: 12, WrapText: true})
	require.NotNil(t, merged)
	assert.Equal(t, 12.0, merged.Font.Size)
	assert.True(t, merged.Alignment.WrapText)
	assert.Nil(t, merged.Border)
}

func TestBorderIndex(t *testing.T) {
	assert.Equal(t, 1, BorderIndex("thin"))
	assert.Equal(t, 0, BorderIndex(""))
	assert.Equal(t, 0, BorderIndex("wavy"))
}

func TestParseRegion(t *testing.T) {
	r, err := ParseRegion("A12:AC19")
	require.NoError(t, err)
	assert.Equal(t, Region{FirstCol: 1, FirstRow: 12, LastCol: 29, LastRow: 19}, r)
	assert.Equal(t, 8, r.Rows())
	assert.Equal(t, 29, r.Cols())
	assert.Equal(t, "A12:AC19", r.String())

	single, err := ParseRegion("K5")
	require.NoError(t, err)
	assert.Equal(t, 1, single.Rows())
	assert.Equal(t, 1, single.Cols())

	swapped, err := ParseRegion("C3:A1")
	require.NoError(t, err)
	assert.Equal(t, "A1:C3", swapped.String())

	_, err = ParseRegion("12A")
	assert.Error(t, err)
}

func TestRegionEachOrder(t *testing.T) {
	r, err := ParseRegion("A1:B2")
	require.NoError(t, err)

	var got []string
	require.NoError(t, r.Each(func(addr string) error {
		got = append(got, addr)
		return nil
	}))
	assert.Equal(t, []string{"A1", "B1", "A2", "B2"}, got)
}
