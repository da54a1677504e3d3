package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_categoryCond(t *testing.T) {
	tests := []struct {
		name     string
		category string
		wantCond string
		wantArg  any
	}{
		{name: "空串不筛选", category: "", wantCond: "", wantArg: nil},
		{name: "ALL 不筛选", category: "ALL", wantCond: "", wantArg: nil},
		{name: "具体分类精确匹配", category: "Camera", wantCond: "category = ?", wantArg: "Camera"},
		{name: "Others 取清单之外", category: CategoryOthers, wantCond: "category NOT IN ?", wantArg: knownCategories},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, arg := categoryCond("category", tt.category)
			assert.Equal(t, tt.wantCond, cond)
			assert.Equal(t, tt.wantArg, arg)
		})
	}
}

func Test_categoryCond_OthersExcludesEveryKnownCategory(t *testing.T) {
	_, arg := categoryCond("u.category", CategoryOthers)
	excluded, ok := arg.([]string)
	assert.True(t, ok)
	// 清单里的分类一个都不能漏，漏了就会被错算进 Others
	for _, c := range []string{"Camera", "Lights", "Lens", "Tripod"} {
		assert.Contains(t, excluded, c)
	}
}

func Test_dedupSorted(t *testing.T) {
	got := dedupSorted([]string{" U2", "U1", "U2", "", "  ", "U1 "})
	assert.Equal(t, []string{"U1", "U2"}, got)

	assert.Empty(t, dedupSorted(nil))
	assert.Empty(t, dedupSorted([]string{"", "   "}))
}
