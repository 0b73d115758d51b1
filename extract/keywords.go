package extract

// DefaultKeywords returns the built-in keyword table for introductory
// programming concepts, with Japanese and English trigger phrases.
func DefaultKeywords() *Keywords {
	return NewKeywords().
		Add("programming", "プログラミング", "プログラム", "コーディング", "coding").
		Add("variables", "変数", "variable", "var", "let", "const").
		Add("functions", "関数", "function", "メソッド", "method").
		Add("loops", "ループ", "for", "while", "繰り返し", "iteration").
		Add("conditionals", "条件分岐", "if", "else", "条件", "conditional").
		Add("data-structures", "データ構造", "data structure", "配列", "array").
		Add("algorithms", "アルゴリズム", "algorithm", "計算手法").
		Add("recursion", "再帰", "recursion", "再帰的").
		Add("object-oriented", "オブジェクト指向", "OOP", "クラス", "インスタンス").
		Add("inheritance", "継承", "inheritance", "親クラス", "子クラス")
}
