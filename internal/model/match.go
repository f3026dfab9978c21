package model

// Mode は検索モードを表します。
type Mode string

const (
	// ModeBasic は行マッチに所属関数名を付与するモードです。
	ModeBasic Mode = "basic"
	// ModeGrep は関数境界を見ない素の行検索モードです。
	ModeGrep Mode = "grep"
	// ModeMethod は関数・メソッド名に対して検索するモードです。
	ModeMethod Mode = "method"
)

// Span は 1 件の検出範囲を行・桁・バイトオフセットで表します。
type Span struct {
	StartLine int `json:"start_line"`
	StartCol  int `json:"start_col"`
	EndLine   int `json:"end_line"`
	EndCol    int `json:"end_col"`
	ByteStart int `json:"byte_start"`
	ByteEnd   int `json:"byte_end"`
}

// Match は 1 件の検索ヒットを表します。
// Function は basic モードでのみ設定され、トップレベルコードへの
// ヒットでは空文字列になります。Body は method モード、または
// basic モードの本体出力オプションが有効な場合のみ設定されます。
type Match struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	Text      string `json:"text"`
	Mode      Mode   `json:"mode"`
	Function  string `json:"function,omitempty"`
	Signature string `json:"signature,omitempty"`
	Body      string `json:"body,omitempty"`
	NoBody    bool   `json:"no_body,omitempty"`
	Span      Span   `json:"span"`
}
