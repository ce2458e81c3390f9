// Package pagination はオフセット方式のページング計算を提供します。
// ページ番号とページサイズからスキップ件数・総ページ数・続きの有無を決定的に計算します。
package pagination

import (
	"errors"
	"strconv"
)

const (
	// DefaultPage はpageパラメータ未指定時のページ番号です。
	DefaultPage = 1
	// DefaultLimit はlimitパラメータ未指定時のページサイズです。
	DefaultLimit = 10
	// MaxLimit はページサイズの上限です。これを超える指定は黙ってこの値に丸められます。
	MaxLimit = 100
)

// ErrInvalidLimit はlimitに0以下の値が明示的に指定された場合に返されます。
var ErrInvalidLimit = errors.New("limit must be a positive integer")

// Params は正規化済みのページングパラメータです。
type Params struct {
	Page  int
	Limit int
}

// Parse はクエリ文字列のpage/limitを正規化します。
//   - page: 未指定・非数値は1。1未満は1に切り上げ。
//   - limit: 未指定・非数値は10。0以下の明示指定はErrInvalidLimit。
//     MaxLimit超はMaxLimitへ丸める（リソース枯渇防止。拒否ではなくクランプを採用）。
func Parse(pageStr, limitStr string) (Params, error) {
	page := DefaultPage
	if p, err := strconv.Atoi(pageStr); err == nil {
		page = p
	}
	if page < 1 {
		page = 1
	}

	limit := DefaultLimit
	if limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err == nil {
			if l <= 0 {
				return Params{}, ErrInvalidLimit
			}
			limit = l
		}
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}, nil
}

// Offset はこのページの先頭までにスキップする件数を返します。
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Result は1ページ分の結果に付与するページング情報です。
type Result struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int64
	HasMore     bool
}

// NewResult はページングメタ情報を計算します。
// HasMoreは要求したlimitではなく実際に返った件数から計算するため、
// 最終ページが短い場合でも正しくfalseになります。
// 最終ページを超えたページの要求は空の結果とHasMore=falseになり、エラーにはなりません。
func NewResult(p Params, itemCount int, total int64) Result {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Result{
		CurrentPage: p.Page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasMore:     int64(p.Offset()+itemCount) < total,
	}
}
