package ingredient

import (
	"sort"
	"strings"
	"unicode/utf8"

	"recipe-finder/internal/pkg/common"
)

// minSharedRunes 自動發現分組時共同片段的最小長度
const minSharedRunes = 2

// Group 畫面上顯示的一組食材
// IsGroup 為 false 表示未分組的單一食材
type Group struct {
	Name     string                    `json:"name"`
	Icon     string                    `json:"icon"`
	Variants []common.IngredientRecord `json:"variants"`
	IsGroup  bool                      `json:"isGroup"`
}

// Grouper 將扁平的食材目錄分成數個可瀏覽的分組
type Grouper struct {
	staticIndex map[string]string
	rules       []KeywordRule
}

// NewGrouper 創建食材分組器
func NewGrouper(h *Heuristics) *Grouper {
	if h == nil {
		h = &Heuristics{}
	}
	index := make(map[string]string)
	for _, g := range h.StaticGroups {
		for _, variant := range g.Variants {
			// 同名成員以先宣告的分組為準
			if _, exists := index[variant]; !exists {
				index[variant] = g.Name
			}
		}
	}
	rules := make([]KeywordRule, len(h.KeywordRules))
	copy(rules, h.KeywordRules)
	return &Grouper{staticIndex: index, rules: rules}
}

// Group 依序執行固定分組、關鍵字規則、包含關係聚類與共同片段聚類，
// 剩下的食材各自成為單一分組。每筆食材恰好出現在一個分組中。
func (g *Grouper) Group(catalog []common.IngredientRecord) []Group {
	items := uniqueRecords(catalog)
	claimed := make([]bool, len(items))

	groups := g.assignByTables(items, claimed)
	groups = append(groups, clusterByContainment(items, claimed)...)
	groups = append(groups, clusterBySharedFragment(items, claimed)...)

	for i, item := range items {
		if claimed[i] {
			continue
		}
		claimed[i] = true
		groups = append(groups, &Group{
			Name:     item.Name,
			Icon:     item.Icon,
			Variants: []common.IngredientRecord{item},
			IsGroup:  false,
		})
	}

	result := make([]Group, 0, len(groups))
	for _, grp := range groups {
		sortVariants(grp)
		result = append(result, *grp)
	}
	return result
}

// assignByTables 第一階段：固定分組優先，其次依序比對關鍵字規則
func (g *Grouper) assignByTables(items []common.IngredientRecord, claimed []bool) []*Group {
	var groups []*Group
	byName := make(map[string]*Group)

	for i, item := range items {
		name := g.tableGroupFor(item.Name)
		if name == "" {
			continue
		}
		grp, ok := byName[name]
		if !ok {
			grp = &Group{Name: name, Icon: item.Icon, IsGroup: true}
			byName[name] = grp
			groups = append(groups, grp)
		}
		grp.Variants = append(grp.Variants, item)
		claimed[i] = true
	}
	return groups
}

func (g *Grouper) tableGroupFor(name string) string {
	if groupName, ok := g.staticIndex[name]; ok {
		return groupName
	}
	for _, rule := range g.rules {
		if rule.Matches(name) {
			return rule.Name
		}
	}
	return ""
}

// clusterByContainment 第二階段：由短到長，以較短名稱為根收納包含它的較長名稱
func clusterByContainment(items []common.IngredientRecord, claimed []bool) []*Group {
	order := make([]int, 0, len(items))
	for i := range items {
		if !claimed[i] {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return runeLen(items[order[a]].Name) < runeLen(items[order[b]].Name)
	})

	var groups []*Group
	for pos, root := range order {
		if claimed[root] || items[root].Name == "" {
			continue
		}
		rootName := items[root].Name

		var children []int
		for _, j := range order[pos+1:] {
			if !claimed[j] && strings.Contains(items[j].Name, rootName) {
				children = append(children, j)
			}
		}
		if len(children) == 0 {
			continue
		}

		grp := &Group{
			Name:     rootName,
			Icon:     items[root].Icon,
			Variants: []common.IngredientRecord{items[root]},
			IsGroup:  true,
		}
		claimed[root] = true
		for _, j := range children {
			grp.Variants = append(grp.Variants, items[j])
			claimed[j] = true
		}
		groups = append(groups, grp)
	}
	return groups
}

type fragment struct {
	text    string
	length  int
	members []int
}

// clusterBySharedFragment 第三階段：找出至少兩項食材共有的片段，
// 由長到短貪婪分配，已被較長片段收走的食材不再重新分配
func clusterBySharedFragment(items []common.IngredientRecord, claimed []bool) []*Group {
	index := make(map[string]int)
	var fragments []*fragment

	for i, item := range items {
		if claimed[i] {
			continue
		}
		runes := []rune(item.Name)
		seen := make(map[string]bool)
		for start := 0; start < len(runes); start++ {
			for end := start + minSharedRunes; end <= len(runes); end++ {
				text := string(runes[start:end])
				if seen[text] {
					continue
				}
				seen[text] = true

				k, ok := index[text]
				if !ok {
					k = len(fragments)
					index[text] = k
					fragments = append(fragments, &fragment{text: text, length: end - start})
				}
				fragments[k].members = append(fragments[k].members, i)
			}
		}
	}

	shared := fragments[:0]
	for _, f := range fragments {
		if len(f.members) >= 2 {
			shared = append(shared, f)
		}
	}
	// 同長度時維持首次出現的順序
	sort.SliceStable(shared, func(a, b int) bool {
		return shared[a].length > shared[b].length
	})

	var groups []*Group
	for _, f := range shared {
		free := make([]int, 0, len(f.members))
		for _, i := range f.members {
			if !claimed[i] {
				free = append(free, i)
			}
		}
		if len(free) < 2 {
			continue
		}

		grp := &Group{Name: f.text, Icon: items[free[0]].Icon, IsGroup: true}
		for _, i := range free {
			grp.Variants = append(grp.Variants, items[i])
			claimed[i] = true
		}
		groups = append(groups, grp)
	}
	return groups
}

// sortVariants 與分組同名者排第一，其餘依名稱長度遞增，長度相同保持原順序
func sortVariants(grp *Group) {
	sort.SliceStable(grp.Variants, func(a, b int) bool {
		va, vb := grp.Variants[a], grp.Variants[b]
		aExact, bExact := va.Name == grp.Name, vb.Name == grp.Name
		if aExact != bExact {
			return aExact
		}
		return runeLen(va.Name) < runeLen(vb.Name)
	})
}

// uniqueRecords 依 ID 去除重複，保留第一筆；沒有 ID 的資料各自保留
func uniqueRecords(catalog []common.IngredientRecord) []common.IngredientRecord {
	seen := make(map[common.ID]bool, len(catalog))
	items := make([]common.IngredientRecord, 0, len(catalog))
	for _, rec := range catalog {
		if rec.ID != "" {
			if seen[rec.ID] {
				continue
			}
			seen[rec.ID] = true
		}
		items = append(items, rec)
	}
	return items
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
