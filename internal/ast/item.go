package ast

import (
	"strings"

	"availc/internal/source"
)

type ItemKind uint8

const (
	ItemFn ItemKind = iota
	ItemStruct
	ItemTypeAlias
	ItemLet
	ItemExtension
)

func (k ItemKind) String() string {
	switch k {
	case ItemFn:
		return "func"
	case ItemStruct:
		return "struct"
	case ItemTypeAlias:
		return "typealias"
	case ItemLet:
		return "let"
	case ItemExtension:
		return "extension"
	}
	return "item"
}

// Item is a declaration. Name is empty for `let _` and extensions.
type Item struct {
	Kind     ItemKind
	Span     source.Span
	Name     string
	NameSpan source.Span
	Attrs    []AttrID
	Payload  PayloadID
}

// FnItem: func name<...>(params) -> Result { body }
type FnItem struct {
	IsOperator bool
	Params     []ParamID
	Result     TypeID
	Body       []StmtID
	HasBody    bool
}

// Param: `label name: Type`, `_ name: Type` or `name: inout Type`.
// Label is empty when the name doubles as the label.
type Param struct {
	Label     string
	LabelSpan source.Span
	Name      string
	NameSpan  source.Span
	Inout     bool
	Type      TypeID
	Span      source.Span
}

// ArgLabel is the label callers write: explicit label, "_" or the name itself.
func (p *Param) ArgLabel() string {
	if p.Label != "" {
		return p.Label
	}
	return p.Name
}

// GenericParam is `<@attr T>`.
type GenericParam struct {
	Name     string
	NameSpan source.Span
	Attrs    []AttrID
}

type StructItem struct {
	Generics []GenericParam
	Members  []ItemID
}

type TypeAliasItem struct {
	Generics []GenericParam
	Target   TypeID
}

// LetItem covers let and var, global or local.
type LetItem struct {
	Mutable bool
	Type    TypeID
	Value   ExprID
}

type ExtensionItem struct {
	Target  TypeID
	Members []ItemID
}

type Items struct {
	Arena      *Arena[Item]
	Fns        *Arena[FnItem]
	Params     *Arena[Param]
	Attrs      *Arena[Attr]
	Structs    *Arena[StructItem]
	Aliases    *Arena[TypeAliasItem]
	Lets       *Arena[LetItem]
	Extensions *Arena[ExtensionItem]
}

// NewItems creates per-kind arenas; capHint 0 means 1<<8.
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Items{
		Arena:      NewArena[Item](capHint),
		Fns:        NewArena[FnItem](capHint),
		Params:     NewArena[Param](capHint),
		Attrs:      NewArena[Attr](capHint),
		Structs:    NewArena[StructItem](capHint),
		Aliases:    NewArena[TypeAliasItem](capHint),
		Lets:       NewArena[LetItem](capHint),
		Extensions: NewArena[ExtensionItem](capHint),
	}
}

func (i *Items) new(kind ItemKind, span source.Span, name string, nameSpan source.Span, attrs []AttrID, payload PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:     kind,
		Span:     span,
		Name:     name,
		NameSpan: nameSpan,
		Attrs:    attrs,
		Payload:  payload,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) NewAttr(a Attr) AttrID {
	return AttrID(i.Attrs.Allocate(a))
}

func (i *Items) Attr(id AttrID) *Attr {
	return i.Attrs.Get(uint32(id))
}

func (i *Items) NewParam(p Param) ParamID {
	return ParamID(i.Params.Allocate(p))
}

func (i *Items) Param(id ParamID) *Param {
	return i.Params.Get(uint32(id))
}

func (i *Items) NewFn(span source.Span, name string, nameSpan source.Span, attrs []AttrID, fn FnItem) ItemID {
	payload := i.Fns.Allocate(fn)
	return i.new(ItemFn, span, name, nameSpan, attrs, PayloadID(payload))
}

func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemFn {
		return nil, false
	}
	return i.Fns.Get(uint32(item.Payload)), true
}

func (i *Items) NewStruct(span source.Span, name string, nameSpan source.Span, attrs []AttrID, st StructItem) ItemID {
	payload := i.Structs.Allocate(st)
	return i.new(ItemStruct, span, name, nameSpan, attrs, PayloadID(payload))
}

func (i *Items) Struct(id ItemID) (*StructItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemStruct {
		return nil, false
	}
	return i.Structs.Get(uint32(item.Payload)), true
}

func (i *Items) NewTypeAlias(span source.Span, name string, nameSpan source.Span, attrs []AttrID, ta TypeAliasItem) ItemID {
	payload := i.Aliases.Allocate(ta)
	return i.new(ItemTypeAlias, span, name, nameSpan, attrs, PayloadID(payload))
}

func (i *Items) TypeAlias(id ItemID) (*TypeAliasItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemTypeAlias {
		return nil, false
	}
	return i.Aliases.Get(uint32(item.Payload)), true
}

func (i *Items) NewLet(span source.Span, name string, nameSpan source.Span, attrs []AttrID, let LetItem) ItemID {
	payload := i.Lets.Allocate(let)
	return i.new(ItemLet, span, name, nameSpan, attrs, PayloadID(payload))
}

func (i *Items) Let(id ItemID) (*LetItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemLet {
		return nil, false
	}
	return i.Lets.Get(uint32(item.Payload)), true
}

func (i *Items) NewExtension(span source.Span, attrs []AttrID, ext ExtensionItem) ItemID {
	payload := i.Extensions.Allocate(ext)
	return i.new(ItemExtension, span, "", source.Span{}, attrs, PayloadID(payload))
}

func (i *Items) Extension(id ItemID) (*ExtensionItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemExtension {
		return nil, false
	}
	return i.Extensions.Get(uint32(item.Payload)), true
}

// FullName is how diagnostics refer to a declaration: functions print
// their argument labels ("f(a:_:)"), operators print "+(_:_:)".
func (i *Items) FullName(id ItemID) string {
	item := i.Get(id)
	if item == nil {
		return ""
	}
	fn, ok := i.Fn(id)
	if !ok {
		return item.Name
	}
	var sb strings.Builder
	sb.WriteString(item.Name)
	sb.WriteByte('(')
	for _, pid := range fn.Params {
		if fn.IsOperator {
			sb.WriteString("_")
		} else {
			sb.WriteString(i.Param(pid).ArgLabel())
		}
		sb.WriteByte(':')
	}
	sb.WriteByte(')')
	return sb.String()
}

// ArgLabels returns the label each parameter expects at call sites.
func (i *Items) ArgLabels(id ItemID) []string {
	fn, ok := i.Fn(id)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(fn.Params))
	for _, pid := range fn.Params {
		if fn.IsOperator {
			out = append(out, "_")
			continue
		}
		out = append(out, i.Param(pid).ArgLabel())
	}
	return out
}
