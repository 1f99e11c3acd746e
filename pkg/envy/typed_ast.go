package envy

// TypedProgram is the output of the TypeChecker: the same shape as Program,
// but every expression node now carries a resolved Type.
type TypedProgram struct {
	Functions []TypedFunction
}

// TypedFunction mirrors Function with a TypedPrototype and a type-annotated
// body.
type TypedFunction struct {
	Prototype TypedPrototype
	Body      TypedExpression
}

// TypedPrototype mirrors Prototype; ReturnType here is always concrete (the
// declared return type, never inferred — the language requires it).
type TypedPrototype struct {
	Span       Span
	Name       Symbol
	Parameters []Parameter
	ReturnType Type
}

// TypedExpression is Expression plus the Type the checker resolved for it.
type TypedExpression struct {
	Span Span
	Type Type
	Kind TypedExpressionKind
}

// TypedExpressionKind mirrors ExpressionKind, substituting TypedExpression
// for Expression in every recursive position and resolving Identifier to its
// looked-up Type alongside its Symbol.
type TypedExpressionKind struct {
	Tag ExpressionTag

	IntValue    int64
	FloatValue  float64
	BoolValue   bool
	CharValue   byte
	Identifier  TypedIdentifier
	Unary       *TypedUnaryExpr
	Binary      *TypedBinaryExpr
	If          *TypedIfExpr
	Let         *TypedLetExpr
	Block       []TypedExpression
	Application *TypedApplicationExpr
	While       *TypedWhileExpr
}

// TypedIdentifier is an identifier reference resolved to both its Symbol and
// the Type looked up for it in the Environment.
type TypedIdentifier struct {
	Symbol Symbol
	Type   Type
}

// TypedUnaryExpr mirrors UnaryExpr over TypedExpression.
type TypedUnaryExpr struct {
	Op      UnaryOp
	Operand TypedExpression
}

// TypedBinaryExpr mirrors BinaryExpr over TypedExpression.
type TypedBinaryExpr struct {
	Op    BinaryOp
	Left  TypedExpression
	Right TypedExpression
}

// TypedIfExpr mirrors IfExpr over TypedExpression.
type TypedIfExpr struct {
	Condition TypedExpression
	Then      TypedExpression
	Else      *TypedExpression
}

// TypedLetExpr mirrors LetExpr over TypedExpression.
type TypedLetExpr struct {
	NameSpan Span
	Name     Symbol
	Value    TypedExpression
}

// TypedApplicationExpr mirrors ApplicationExpr over TypedExpression.
type TypedApplicationExpr struct {
	FunctionSpan Span
	FunctionName Symbol
	Arguments    []TypedExpression
}

// TypedWhileExpr mirrors WhileExpr over TypedExpression.
type TypedWhileExpr struct {
	Condition TypedExpression
	Body      TypedExpression
}
