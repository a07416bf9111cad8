package jsonlike

import (
	"strings"

	"github.com/iancoleman/strcase"
	jsoniter "github.com/json-iterator/go"
)

// A NamingStrategy renames struct fields that have no explicit name in
// their json tag. Explicit names always win:
//
//	type Goods struct {
//		GoodsName string                   // renamed by the strategy
//		Price     int    `json:"price"`    // stays "price"
//		Desc      string `json:",omitempty"` // renamed by the strategy
//	}
type NamingStrategy interface {
	// Used as the cache key of derived mappers, must be unique per behaviour.
	Name() string
	Translate(goName string) string
}

type namingFunc struct {
	name string
	fn   func(string) string
}

func (n namingFunc) Name() string { return n.name }

func (n namingFunc) Translate(goName string) string { return n.fn(goName) }

// NewNamingStrategy creates a NamingStrategy from a function.
func NewNamingStrategy(name string, fn func(goName string) string) NamingStrategy {
	return namingFunc{name: name, fn: fn}
}

var (
	// GoodsName -> goodsName
	LowerCamelCase NamingStrategy = namingFunc{"lower-camel-case", strcase.ToLowerCamel}
	// goodsName -> GoodsName
	UpperCamelCase NamingStrategy = namingFunc{"upper-camel-case", strcase.ToCamel}
	// GoodsName -> goods_name
	SnakeCase NamingStrategy = namingFunc{"snake-case", strcase.ToSnake}
	// GoodsName -> GOODS_NAME
	UpperSnakeCase NamingStrategy = namingFunc{"upper-snake-case", strcase.ToScreamingSnake}
	// GoodsName -> goodsname
	LowerCase NamingStrategy = namingFunc{"lower-case", strings.ToLower}
	// GoodsName -> goods-name
	KebabCase NamingStrategy = namingFunc{"kebab-case", strcase.ToKebab}
	// GoodsName -> goods.name
	LowerDotCase NamingStrategy = namingFunc{"lower-dot-case", func(s string) string { return strcase.ToDelimited(s, '.') }}
)

// NamingStrategyByName looks up one of the predefined strategies.
func NamingStrategyByName(name string) (NamingStrategy, bool) {
	for _, s := range []NamingStrategy{LowerCamelCase, UpperCamelCase, SnakeCase, UpperSnakeCase, LowerCase, KebabCase, LowerDotCase} {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

type namingExtension struct {
	jsoniter.DummyExtension
	strategy NamingStrategy
}

func (e *namingExtension) UpdateStructDescriptor(desc *jsoniter.StructDescriptor) {
	for _, binding := range desc.Fields {
		// Unexported and `json:"-"` fields have no names, leave them alone.
		if len(binding.ToNames) == 0 && len(binding.FromNames) == 0 {
			continue
		}

		tag, hasTag := binding.Field.Tag().Lookup("json")
		if hasTag {
			name := tag
			if i := strings.IndexByte(tag, ','); i >= 0 {
				name = tag[:i]
			}
			if name != "" {
				continue
			}
		}

		name := e.strategy.Translate(binding.Field.Name())
		binding.ToNames = []string{name}
		binding.FromNames = []string{name}
	}
}
