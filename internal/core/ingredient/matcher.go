package ingredient

import (
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

// minSubsequenceRunes 子序列比對時較短字串的最小長度，避免單字（如「肉」）匹配所有食材
const minSubsequenceRunes = 2

// Matcher 判斷使用者庫存是否滿足食譜所需的食材
type Matcher struct {
	synonyms SynonymTable
}

// Availability 單項食材的判斷結果
type Availability struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// NewMatcher 創建食材比對器
func NewMatcher(synonyms SynonymTable) *Matcher {
	if synonyms == nil {
		synonyms = SynonymTable{}
	}
	return &Matcher{synonyms: synonyms}
}

// IsAvailable 依序以四種方式判斷庫存是否有所需食材，任一成立即返回 true：
//  1. 忽略大小寫的完全相同
//  2. 同義詞相同
//  3. 任一方向的子字串包含
//  4. 任一方向的字元子序列（較短者至少兩個字）
func (m *Matcher) IsAvailable(pantry []string, requirement string) bool {
	req := strings.TrimSpace(requirement)
	if req == "" {
		return false
	}
	lowerReq := strings.ToLower(req)

	items := make([]string, 0, len(pantry))
	for _, item := range pantry {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return false
	}

	for _, item := range items {
		if strings.ToLower(item) == lowerReq {
			return true
		}
	}

	normReq := m.synonyms.Normalize(req)
	for _, item := range items {
		normItem := m.synonyms.Normalize(item)
		if normItem == normReq || normItem == req || item == normReq {
			return true
		}
	}

	for _, item := range items {
		lowerItem := strings.ToLower(item)
		if strings.Contains(lowerItem, lowerReq) || strings.Contains(lowerReq, lowerItem) {
			return true
		}
	}

	for _, item := range items {
		if subsequenceMatch(strings.ToLower(item), lowerReq) {
			return true
		}
	}

	return false
}

// Check 逐項判斷所需食材，結果順序與輸入相同
func (m *Matcher) Check(pantry []string, requirements []string) []Availability {
	results := make([]Availability, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, Availability{
			Name:      req,
			Available: m.IsAvailable(pantry, req),
		})
	}
	return results
}

// subsequenceMatch 較短字串的字元是否依序出現在較長字串中
func subsequenceMatch(a, b string) bool {
	short, long := a, b
	if utf8.RuneCountInString(short) > utf8.RuneCountInString(long) {
		short, long = long, short
	}
	if utf8.RuneCountInString(short) < minSubsequenceRunes {
		return false
	}
	return len(fuzzy.Find(short, []string{long})) > 0
}
