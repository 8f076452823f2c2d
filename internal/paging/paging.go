// Package paging carries zero-based page requests and page results between
// the HTTP layer, the domain services and the repositories.
package paging

import (
	"fmt"
	"strings"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type Order struct {
	Property  string
	Direction Direction
}

type Request struct {
	Page int
	Size int
	Sort []Order
}

func (r Request) Offset() int {
	return r.Page * r.Size
}

// ParseOrder parses "property" or "property,asc|desc".
func ParseOrder(value string) (Order, error) {
	parts := strings.Split(value, ",")
	property := strings.TrimSpace(parts[0])
	if property == "" {
		return Order{}, fmt.Errorf("empty sort property")
	}
	order := Order{Property: property, Direction: Asc}
	switch len(parts) {
	case 1:
	case 2:
		switch Direction(strings.ToLower(strings.TrimSpace(parts[1]))) {
		case Asc:
		case Desc:
			order.Direction = Desc
		default:
			return Order{}, fmt.Errorf("invalid sort direction %q", parts[1])
		}
	default:
		return Order{}, fmt.Errorf("invalid sort %q", value)
	}
	return order, nil
}

type Page[T any] struct {
	Content       []T
	Number        int
	Size          int
	TotalElements int64
}

func NewPage[T any](content []T, req Request, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{Content: content, Number: req.Page, Size: req.Size, TotalElements: total}
}

func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 1
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

func (p Page[T]) First() bool {
	return p.Number == 0
}

func (p Page[T]) Last() bool {
	return p.Number+1 >= p.TotalPages()
}

// Map converts page content while keeping the paging metadata.
func Map[T, R any](p Page[T], fn func(T) R) Page[R] {
	content := make([]R, 0, len(p.Content))
	for _, item := range p.Content {
		content = append(content, fn(item))
	}
	return Page[R]{Content: content, Number: p.Number, Size: p.Size, TotalElements: p.TotalElements}
}
