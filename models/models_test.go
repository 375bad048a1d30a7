package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategoryGroup(t *testing.T) {
	cases := map[string]CategoryGroup{
		"upper_wear":  UpperWear,
		"Bottom Wear": BottomWear,
		"outer-wear":  OuterWear,
		" FOOTWEAR ":  Footwear,
		"accessories": Accessories,
	}
	for in, want := range cases {
		got, err := ParseCategoryGroup(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseCategoryGroup("swimwear")
	assert.Error(t, err)
}

func TestCategoryGroupLabel(t *testing.T) {
	assert.Equal(t, "Outer Wear", OuterWear.Label())
	assert.Len(t, AllCategoryGroups(), 5)
}

func TestValidateDate(t *testing.T) {
	assert.NoError(t, ValidateDate("2026-02-28"))
	assert.Error(t, ValidateDate("2026-02-30"))
	assert.Error(t, ValidateDate("2026-2-3"))
	assert.Error(t, ValidateDate(""))
}
