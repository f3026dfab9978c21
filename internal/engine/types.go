package engine

import (
	"github.com/phyten/phrep/internal/model"
)

// Options は実行オプション
type Options struct {
	Query          string
	Mode           string // basic|grep|method
	Dir            string
	FilePattern    string // ファイル名の部分一致フィルタ
	Includes       []string
	Excludes       []string
	ExcludeTypical bool
	PrintBody      bool
	Jobs           int
	MaxFileBytes   int
	Progress       bool
}

// ItemError は 1 ファイルの処理に失敗した際の情報を表す
type ItemError struct {
	File    string `json:"file"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Result は出力
type Result struct {
	Items        []model.Match `json:"items"`
	Mode         model.Mode    `json:"mode"`
	HasBody      bool          `json:"has_body"`
	Total        int           `json:"total"`
	FilesScanned int           `json:"files_scanned"`
	Unterminated int           `json:"unterminated"`
	ElapsedMS    int64         `json:"elapsed_ms"`
	Errors       []ItemError   `json:"errors,omitempty"`
	ErrorCount   int           `json:"error_count"`
}
