package ast

import "availc/internal/source"

type StmtKind uint8

const (
	StmtDecl    StmtKind = iota // local let/var/func
	StmtExpr                    // expression statement
	StmtAssign                  // target = value, `_ = value`
	StmtReturn
)

type Stmt struct {
	Kind StmtKind
	Span source.Span
	Item ItemID // StmtDecl
	// Target is NoExprID for `_ = value`.
	Target ExprID
	Value  ExprID
}

type Stmts struct {
	Arena *Arena[Stmt]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{Arena: NewArena[Stmt](capHint)}
}

func (s *Stmts) New(st Stmt) StmtID {
	return StmtID(s.Arena.Allocate(st))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}
