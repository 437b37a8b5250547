package ingredient

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// StaticGroup 明確列出成員名稱的固定分組
type StaticGroup struct {
	Name     string   `yaml:"name"`
	Variants []string `yaml:"variants"`
}

// KeywordRule 關鍵字分組規則
// 名稱包含任一 Keywords 且不包含任何 Excludes 時命中
type KeywordRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Excludes []string `yaml:"excludes"`
}

// Matches 判斷名稱是否命中此規則
func (r KeywordRule) Matches(name string) bool {
	hit := false
	for _, kw := range r.Keywords {
		if kw != "" && strings.Contains(name, kw) {
			hit = true
			break
		}
	}
	if !hit {
		return false
	}
	for _, ex := range r.Excludes {
		if ex != "" && strings.Contains(name, ex) {
			return false
		}
	}
	return true
}

// Heuristics 比對與分組用的啟發式資料表
// KeywordRules 的順序即優先順序，較具體的規則必須排在較籠統的規則之前
type Heuristics struct {
	Synonyms     SynonymTable
	StaticGroups []StaticGroup
	KeywordRules []KeywordRule
}

// heuristicsFile YAML 檔案格式
type heuristicsFile struct {
	Synonyms     [][]string    `yaml:"synonyms"`
	StaticGroups []StaticGroup `yaml:"static_groups"`
	KeywordRules []KeywordRule `yaml:"keyword_rules"`
}

// LoadHeuristics 從 YAML 檔案載入啟發式資料表
// path 為空時返回內建預設值
func LoadHeuristics(path string) (*Heuristics, error) {
	if path == "" {
		return DefaultHeuristics(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read heuristics file: %w", err)
	}
	return ParseHeuristics(data)
}

// ParseHeuristics 解析 YAML 格式的啟發式資料表
func ParseHeuristics(data []byte) (*Heuristics, error) {
	var file heuristicsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse heuristics file: %w", err)
	}

	pairs := make([][2]string, 0, len(file.Synonyms))
	for i, pair := range file.Synonyms {
		if len(pair) != 2 {
			return nil, fmt.Errorf("synonym entry %d must have exactly 2 names, got %d", i, len(pair))
		}
		pairs = append(pairs, [2]string{pair[0], pair[1]})
	}

	synonyms := NewSynonymTable(pairs)
	// 同一名稱出現在多組配對時，後面的配對會覆蓋前面的
	if !synonyms.Symmetric() {
		return nil, fmt.Errorf("synonym pairs conflict: each name may appear in only one pair")
	}

	h := &Heuristics{
		Synonyms:     synonyms,
		StaticGroups: file.StaticGroups,
		KeywordRules: file.KeywordRules,
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// Validate 檢查資料表內容
func (h *Heuristics) Validate() error {
	for from, to := range h.Synonyms {
		if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
			return fmt.Errorf("synonym names must not be empty")
		}
	}

	seen := make(map[string]bool, len(h.StaticGroups))
	for i, g := range h.StaticGroups {
		if g.Name == "" {
			return fmt.Errorf("static group %d has no name", i)
		}
		if seen[g.Name] {
			return fmt.Errorf("duplicate static group %q", g.Name)
		}
		seen[g.Name] = true
		if len(g.Variants) == 0 {
			return fmt.Errorf("static group %q has no variants", g.Name)
		}
	}

	for i, r := range h.KeywordRules {
		if r.Name == "" {
			return fmt.Errorf("keyword rule %d has no name", i)
		}
		if len(r.Keywords) == 0 {
			return fmt.Errorf("keyword rule %q has no keywords", r.Name)
		}
	}
	return nil
}

// DefaultHeuristics 內建的同義詞、固定分組與關鍵字規則
func DefaultHeuristics() *Heuristics {
	return &Heuristics{
		Synonyms: NewSynonymTable([][2]string{
			{"番茄", "西红柿"},
			{"土豆", "马铃薯"},
			{"香菜", "芫荽"},
			{"包菜", "卷心菜"},
			{"红薯", "地瓜"},
			{"玉米", "苞米"},
			{"青椒", "菜椒"},
			{"鸡精", "味精"},
		}),
		StaticGroups: []StaticGroup{
			{Name: "葱", Variants: []string{"葱", "大葱", "小葱", "香葱", "葱花", "葱段"}},
			{Name: "蒜", Variants: []string{"蒜", "大蒜", "蒜头", "大蒜子", "蒜瓣", "蒜末", "蒜蓉"}},
			{Name: "姜", Variants: []string{"姜", "生姜", "老姜", "嫩姜", "姜片", "姜丝", "姜末"}},
			{Name: "番茄", Variants: []string{"番茄", "西红柿", "小番茄", "圣女果"}},
			{Name: "土豆", Variants: []string{"土豆", "马铃薯", "洋芋"}},
			{Name: "辣椒", Variants: []string{"辣椒", "小米辣", "尖椒", "二荆条", "干辣椒", "朝天椒"}},
		},
		KeywordRules: []KeywordRule{
			{Name: "鸭鹅", Keywords: []string{"鸭", "鹅"}, Excludes: []string{"鸭梨"}},
			{Name: "牛肉", Keywords: []string{"牛肉", "牛腩", "牛排", "肥牛", "牛腱"}, Excludes: []string{"牛油果", "牛奶", "牛肉酱"}},
			{Name: "羊肉", Keywords: []string{"羊肉", "羊排", "羊腿", "肥羊"}},
			{Name: "猪肉", Keywords: []string{"猪", "五花肉", "排骨", "里脊", "肉末", "肉馅"}, Excludes: []string{"猪油"}},
			{Name: "鸡肉", Keywords: []string{"鸡胸", "鸡腿", "鸡翅", "鸡肉", "鸡爪", "鸡块"}, Excludes: []string{"鸡蛋", "鸡精"}},
			{Name: "虾蟹", Keywords: []string{"虾", "蟹"}, Excludes: []string{"虾皮", "虾酱", "蟹味菇"}},
			{Name: "鱼", Keywords: []string{"鱼"}, Excludes: []string{"鱼露", "鱼香", "鱿鱼", "墨鱼"}},
			{Name: "肉类", Keywords: []string{"肉"}, Excludes: []string{"牛油果", "肉桂", "肉豆蔻", "肉松"}},
			{Name: "酱油", Keywords: []string{"酱油", "生抽", "老抽"}},
			{Name: "醋", Keywords: []string{"醋"}},
			{Name: "面条", Keywords: []string{"面条", "挂面", "拉面", "乌冬"}},
			{Name: "豆腐", Keywords: []string{"豆腐"}, Excludes: []string{"豆腐乳"}},
		},
	}
}
