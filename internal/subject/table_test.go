package subject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tkbvnedu/internal/model"
)

func TestMerge_DeduplicatesByNormalizedKey(t *testing.T) {
	t.Parallel()

	current := []model.MappingEntry{{Raw: "Toán", Canonical: "TOÁN"}}
	saved := []model.MappingEntry{
		{Raw: "TOÁN", Canonical: "TOÁN HỌC"},
		{Raw: "Lý", Canonical: "VẬT LÍ"},
	}
	extracted := []model.MappingEntry{
		{Raw: "toan", Canonical: ""},
		{Raw: "Hóa", Canonical: "HÓA HỌC"},
		{Raw: "  ", Canonical: "x"},
	}

	got := Merge(current, saved, extracted)
	require.Len(t, got, 3)
	assert.Equal(t, model.MappingEntry{Raw: "Toán", Canonical: "TOÁN"}, got[0])
	assert.Equal(t, "Lý", got[1].Raw)
	assert.Equal(t, "Hóa", got[2].Raw)
}

func TestApply_OverridesAndMarksUserDefined(t *testing.T) {
	t.Parallel()

	table := []model.MappingEntry{
		{Raw: "Toán", Canonical: ""},
		{Raw: "Lý", Canonical: "VẬT LÍ"},
	}
	got := Apply(table, []model.MappingEntry{
		{Raw: "TOÁN", Canonical: " TOÁN "},
		{Raw: "Chào cờ", Canonical: "HĐ TẬP THỂ"},
	})

	require.Len(t, got, 3)
	assert.Equal(t, model.MappingEntry{Raw: "Toán", Canonical: "TOÁN", UserDefined: true}, got[0])
	assert.False(t, got[1].UserDefined)
	assert.Equal(t, model.MappingEntry{Raw: "Chào cờ", Canonical: "HĐ TẬP THỂ", UserDefined: true}, got[2])
	assert.Equal(t, "", table[0].Canonical, "input table must not be mutated")
}

func TestPersistableAndUnmapped(t *testing.T) {
	t.Parallel()

	table := []model.MappingEntry{
		{Raw: " Toán ", Canonical: "TOÁN"},
		{Raw: "SHL", Canonical: ""},
		{Raw: "", Canonical: "TIN HỌC"},
	}
	assert.Equal(t, []model.MappingEntry{{Raw: "Toán", Canonical: "TOÁN"}}, Persistable(table))
	assert.Equal(t, []string{"SHL"}, Unmapped(table))
}

func TestExtract_GridLayout(t *testing.T) {
	t.Parallel()

	g := model.GridFromValues([][]any{
		{"Thứ", "Tiết", "10A1", "10A2"},
		{"", "", "S", "S"},
		{"Thứ 2", 1, "Văn", "Toán"},
		{"", 2, "Toán", "Chào cờ"},
		{"", "", "ghi chú", ""},
	})

	got := Extract(g, Vocabulary())
	raws := make([]string, 0, len(got))
	for _, e := range got {
		raws = append(raws, e.Raw)
	}
	assert.Equal(t, []string{"Chào cờ", "Toán", "Văn"}, raws)
	assert.Equal(t, "", got[0].Canonical)
	assert.Equal(t, "TOÁN", got[1].Canonical)
	assert.Equal(t, "NGỮ VĂN", got[2].Canonical)
}

func TestExtract_RowWiseLayout(t *testing.T) {
	t.Parallel()

	g := model.GridFromValues([][]any{
		{"Lớp", "Buổi", "Tiết", "T2", "T3", "T4", "T5", "T6", "T7", "CN", "Ghi chú"},
		{"10A1", "S", 1, "Toán", "Lý", "", "", "", "", "", "bỏ qua"},
		{"10A2", "S", 1, "Lý", "", "", "", "", "", "Anh", ""},
	})

	got := Extract(g, Vocabulary())
	raws := make([]string, 0, len(got))
	for _, e := range got {
		raws = append(raws, e.Raw)
	}
	assert.Equal(t, []string{"Anh", "Lý", "Toán"}, raws)
}

func TestExtract_ClassHeaderLayout(t *testing.T) {
	t.Parallel()

	g := model.GridFromValues([][]any{
		{"", "Tiết", "10A1", "10A2", "10A3"},
		{"Thứ 2", "", "Toán", "", ""},
		{"", 1, "Toán", "Văn", "Anh"},
	})

	got := Extract(g, Vocabulary())
	raws := make([]string, 0, len(got))
	for _, e := range got {
		raws = append(raws, e.Raw)
	}
	assert.Equal(t, []string{"Anh", "Toán", "Văn"}, raws)
}

func TestAnnotate_PrefersSavedCanonical(t *testing.T) {
	t.Parallel()

	extracted := []model.MappingEntry{
		{Raw: "Toán", Canonical: "TOÁN"},
		{Raw: "Tin", Canonical: ""},
		{Raw: "Văn", Canonical: "NGỮ VĂN"},
	}
	saved := []model.MappingEntry{
		{Raw: "TOAN", Canonical: "TOÁN HỌC", UserDefined: true},
		{Raw: "Văn", Canonical: ""},
	}

	got := Annotate(extracted, saved)
	assert.Equal(t, []model.MappingEntry{
		{Raw: "Toán", Canonical: "TOÁN HỌC", UserDefined: true},
		{Raw: "Tin", Canonical: ""},
		{Raw: "Văn", Canonical: "NGỮ VĂN"},
	}, got)
	assert.Equal(t, "TOÁN", extracted[0].Canonical)
}
