package utils

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"maintenance-system/pkg/types"
)

const (
	DefaultLimit = 100
	MaxLimit     = 500

	// MaxPage гарантирует, что (page-1)*limit не переполнит int.
	MaxPage = math.MaxInt / MaxLimit
)

// ParsePaginationParams читает page/limit; skip поддерживается для старых клиентов.
func ParsePaginationParams(values url.Values) types.Page {
	p := types.Page{Page: 1, Limit: DefaultLimit}

	// Парсим limit
	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > MaxLimit {
				p.Limit = MaxLimit
			} else {
				p.Limit = l
			}
		}
	}

	// Парсим page или skip
	if pageStr := values.Get("page"); pageStr != "" {
		if n, err := strconv.Atoi(pageStr); err == nil && n > 0 {
			p.Page = min(n, MaxPage)
		} else if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(pageStr, "-") {
			p.Page = MaxPage
		}
	}
	p.Offset = (p.Page - 1) * p.Limit

	if skipStr := values.Get("skip"); skipStr != "" && values.Get("page") == "" {
		if s, err := strconv.Atoi(skipStr); err == nil && s >= 0 && s/p.Limit < MaxPage {
			p.Offset = s
			p.Page = s/p.Limit + 1
		}
	}

	return p
}

// Paginate возвращает срез текущей страницы; выход за границы даёт пустой срез.
func Paginate[T any](items []T, p types.Page) []T {
	if p.Limit <= 0 {
		return items
	}
	if p.Offset < 0 || p.Offset >= len(items) {
		return []T{}
	}
	end := p.Offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}
