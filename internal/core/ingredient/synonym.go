package ingredient

// SynonymTable 可互換的食材名稱對照表，例如「番茄」↔「西红柿」
// 良好的對照表應為雙向（a→b 與 b→a 同時存在），但資料結構本身不強制
type SynonymTable map[string]string

// NewSynonymTable 由名稱配對建立雙向對照表
func NewSynonymTable(pairs [][2]string) SynonymTable {
	table := make(SynonymTable, len(pairs)*2)
	for _, pair := range pairs {
		table[pair[0]] = pair[1]
		table[pair[1]] = pair[0]
	}
	return table
}

// Normalize 返回對照表中的別名，不存在時原樣返回
// 不做大小寫轉換，也不去除空白
func (t SynonymTable) Normalize(name string) string {
	if alias, ok := t[name]; ok {
		return alias
	}
	return name
}

// Symmetric 檢查每一筆對照是否都有反向對照
func (t SynonymTable) Symmetric() bool {
	for from, to := range t {
		if back, ok := t[to]; !ok || back != from {
			return false
		}
	}
	return true
}
