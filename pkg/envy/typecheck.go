package envy

// TypeChecker runs the two-pass analysis spec section 4.8 describes: pass
// one registers every function's signature into the FunctionTable (and its
// return type into the outer Environment frame, so a function name resolves
// like any other binding when it appears as a call target); pass two checks
// each body against those signatures, pushing and popping scopes as it
// descends into blocks, function bodies, and while-loop bodies.
type TypeChecker struct {
	env   *Environment[Type]
	table *FunctionTable
}

// NewTypeChecker creates a TypeChecker with a fresh Environment and
// FunctionTable.
func NewTypeChecker() *TypeChecker {
	return &TypeChecker{env: NewEnvironment[Type](), table: NewFunctionTable()}
}

// Check type-checks an entire Program, returning the TypedProgram plus every
// Error encountered. Checking continues past a function that fails so one
// bad definition doesn't hide diagnostics in the rest of the file — matching
// the Parser's partial-failure posture.
func (c *TypeChecker) Check(prog Program) (TypedProgram, []Error) {
	var errs []Error

	for _, fn := range prog.Functions {
		paramTypes := make([]Type, len(fn.Prototype.Parameters))
		for i, p := range fn.Prototype.Parameters {
			paramTypes[i] = p.Type
		}

		if ok := c.table.Define(fn.Prototype.Name, paramTypes); !ok {
			errs = append(errs, Error{Kind: ErrDuplicateFunction, Span: fn.Prototype.Span})
			continue
		}

		c.env.Define(fn.Prototype.Name, fn.Prototype.ReturnType)
	}

	var typed []TypedFunction
	for _, fn := range prog.Functions {
		tf, fnErrs := c.checkFunction(fn)
		errs = append(errs, fnErrs...)
		if len(fnErrs) == 0 {
			typed = append(typed, tf)
		}
	}

	return TypedProgram{Functions: typed}, errs
}

func (c *TypeChecker) checkFunction(fn Function) (TypedFunction, []Error) {
	c.env.PushScope()
	defer c.env.PopScope()

	var errs []Error
	typedParams := make([]Parameter, 0, len(fn.Prototype.Parameters))

	for _, p := range fn.Prototype.Parameters {
		if p.Type == Void {
			errs = append(errs, Error{Kind: ErrIllegalType, Span: p.Span})
			continue
		}

		c.env.Define(p.Name, p.Type)
		typedParams = append(typedParams, p)
	}

	if len(errs) > 0 {
		return TypedFunction{}, errs
	}

	body, err := c.checkExpression(fn.Body)
	if err != nil {
		return TypedFunction{}, []Error{*err}
	}

	if body.Type != fn.Prototype.ReturnType {
		return TypedFunction{}, []Error{{
			Kind:       ErrTypeMismatch,
			Span:       body.Span,
			ExpectedTy: fn.Prototype.ReturnType,
			ActualTy:   body.Type,
		}}
	}

	return TypedFunction{
		Prototype: TypedPrototype{
			Span:       fn.Prototype.Span,
			Name:       fn.Prototype.Name,
			Parameters: typedParams,
			ReturnType: fn.Prototype.ReturnType,
		},
		Body: body,
	}, nil
}

func (c *TypeChecker) checkExpression(e Expression) (TypedExpression, *Error) {
	switch e.Kind.Tag {
	case ExprInt:
		return TypedExpression{Span: e.Span, Type: Int, Kind: TypedExpressionKind{Tag: ExprInt, IntValue: e.Kind.IntValue}}, nil

	case ExprFloat:
		return TypedExpression{Span: e.Span, Type: Float, Kind: TypedExpressionKind{Tag: ExprFloat, FloatValue: e.Kind.FloatValue}}, nil

	case ExprBoolean:
		return TypedExpression{Span: e.Span, Type: Boolean, Kind: TypedExpressionKind{Tag: ExprBoolean, BoolValue: e.Kind.BoolValue}}, nil

	case ExprChar:
		return TypedExpression{Span: e.Span, Type: Char, Kind: TypedExpressionKind{Tag: ExprChar, CharValue: e.Kind.CharValue}}, nil

	case ExprIdentifier:
		return c.checkIdentifier(e)

	case ExprUnary:
		return c.checkUnary(e)

	case ExprBinary:
		return c.checkBinary(e)

	case ExprIf:
		return c.checkIf(e)

	case ExprLet:
		return c.checkLet(e)

	case ExprBlock:
		return c.checkBlock(e)

	case ExprApplication:
		return c.checkApplication(e)

	case ExprWhile:
		return c.checkWhile(e)

	default:
		return TypedExpression{}, &Error{Kind: ErrIllegalType, Span: e.Span}
	}
}

func (c *TypeChecker) checkIdentifier(e Expression) (TypedExpression, *Error) {
	ty, ok := c.env.Lookup(e.Kind.Identifier)
	if !ok {
		return TypedExpression{}, &Error{Kind: ErrUndefinedVariable, Span: e.Span}
	}

	return TypedExpression{
		Span: e.Span,
		Type: ty,
		Kind: TypedExpressionKind{Tag: ExprIdentifier, Identifier: TypedIdentifier{Symbol: e.Kind.Identifier, Type: ty}},
	}, nil
}

func (c *TypeChecker) checkUnary(e Expression) (TypedExpression, *Error) {
	u := e.Kind.Unary

	operand, err := c.checkExpression(u.Operand)
	if err != nil {
		return TypedExpression{}, err
	}

	var resultTy Type
	switch {
	case u.Op == UnaryPlus && operand.Type == Int:
		resultTy = Int
	case u.Op == UnaryPlus && operand.Type == Float:
		resultTy = Float
	case u.Op == UnaryMinus && operand.Type == Int:
		resultTy = Int
	case u.Op == UnaryMinus && operand.Type == Float:
		resultTy = Float
	case u.Op == UnaryNot && operand.Type == Boolean:
		resultTy = Boolean
	default:
		return TypedExpression{}, &Error{
			Kind: ErrUnsupportedOperation,
			Span: e.Span,
			Annotations: []Annotation{
				{Span: operand.Span, Message: operand.Type.String()},
			},
		}
	}

	return TypedExpression{
		Span: e.Span,
		Type: resultTy,
		Kind: TypedExpressionKind{Tag: ExprUnary, Unary: &TypedUnaryExpr{Op: u.Op, Operand: operand}},
	}, nil
}

func (c *TypeChecker) checkBinary(e Expression) (TypedExpression, *Error) {
	b := e.Kind.Binary

	left, err := c.checkExpression(b.Left)
	if err != nil {
		return TypedExpression{}, err
	}

	right, err := c.checkExpression(b.Right)
	if err != nil {
		return TypedExpression{}, err
	}

	resultTy, ok := binaryResultType(b.Op, left.Type, right.Type)
	if !ok {
		return TypedExpression{}, &Error{
			Kind: ErrUnsupportedOperation,
			Span: e.Span,
			Annotations: []Annotation{
				{Span: left.Span, Message: left.Type.String()},
				{Span: right.Span, Message: right.Type.String()},
			},
		}
	}

	return TypedExpression{
		Span: e.Span,
		Type: resultTy,
		Kind: TypedExpressionKind{Tag: ExprBinary, Binary: &TypedBinaryExpr{Op: b.Op, Left: left, Right: right}},
	}, nil
}

// binaryResultType implements spec section 4.8's arithmetic/comparison/logic
// rules: arithmetic requires identical Int or identical Float operands (Plus
// additionally accepts Char+Char, yielding Char); comparisons require
// identical operand types and always yield Boolean; or/and require Boolean
// on both sides.
func binaryResultType(op BinaryOp, left, right Type) (Type, bool) {
	switch op {
	case BinaryAdd:
		if left == Char && right == Char {
			return Char, true
		}
		return arithmeticResultType(left, right)
	case BinarySub, BinaryMul, BinaryDiv, BinaryMod:
		return arithmeticResultType(left, right)
	case BinaryEqual, BinaryNotEqual, BinaryLess, BinaryGreater, BinaryLessEqual, BinaryGreaterEqual:
		if left == right {
			return Boolean, true
		}
		return Void, false
	case BinaryOr, BinaryAnd:
		if left == Boolean && right == Boolean {
			return Boolean, true
		}
		return Void, false
	default:
		return Void, false
	}
}

func arithmeticResultType(left, right Type) (Type, bool) {
	if left == Int && right == Int {
		return Int, true
	}

	if left == Float && right == Float {
		return Float, true
	}

	return Void, false
}

func (c *TypeChecker) checkIf(e Expression) (TypedExpression, *Error) {
	ifExpr := e.Kind.If

	cond, err := c.checkExpression(ifExpr.Condition)
	if err != nil {
		return TypedExpression{}, err
	}

	if cond.Type != Boolean {
		return TypedExpression{}, &Error{Kind: ErrTypeMismatch, Span: cond.Span, ExpectedTy: Boolean, ActualTy: cond.Type}
	}

	thenExpr, err := c.checkExpression(ifExpr.Then)
	if err != nil {
		return TypedExpression{}, err
	}

	if ifExpr.Else == nil {
		return TypedExpression{
			Span: e.Span,
			Type: Void,
			Kind: TypedExpressionKind{Tag: ExprIf, If: &TypedIfExpr{Condition: cond, Then: thenExpr}},
		}, nil
	}

	elseExpr, err := c.checkExpression(*ifExpr.Else)
	if err != nil {
		return TypedExpression{}, err
	}

	if thenExpr.Type != elseExpr.Type {
		return TypedExpression{}, &Error{
			Kind:     ErrConflictingType,
			Span:     e.Span,
			FirstTy:  thenExpr.Type,
			SecondTy: elseExpr.Type,
			Annotations: []Annotation{
				{Span: thenExpr.Span, Message: thenExpr.Type.String()},
				{Span: elseExpr.Span, Message: elseExpr.Type.String()},
			},
		}
	}

	return TypedExpression{
		Span: e.Span,
		Type: thenExpr.Type,
		Kind: TypedExpressionKind{Tag: ExprIf, If: &TypedIfExpr{Condition: cond, Then: thenExpr, Else: &elseExpr}},
	}, nil
}

func (c *TypeChecker) checkLet(e Expression) (TypedExpression, *Error) {
	let := e.Kind.Let

	value, err := c.checkExpression(let.Value)
	if err != nil {
		return TypedExpression{}, err
	}

	if let.DeclaredType != nil && *let.DeclaredType != value.Type {
		return TypedExpression{}, &Error{
			Kind:     ErrConflictingType,
			Span:     e.Span,
			FirstTy:  *let.DeclaredType,
			SecondTy: value.Type,
		}
	}

	c.env.Define(let.Name, value.Type)

	return TypedExpression{
		Span: e.Span,
		Type: value.Type,
		Kind: TypedExpressionKind{Tag: ExprLet, Let: &TypedLetExpr{NameSpan: let.NameSpan, Name: let.Name, Value: value}},
	}, nil
}

func (c *TypeChecker) checkBlock(e Expression) (TypedExpression, *Error) {
	c.env.PushScope()
	defer c.env.PopScope()

	typed := make([]TypedExpression, 0, len(e.Kind.Block))
	resultTy := Void

	for _, child := range e.Kind.Block {
		t, err := c.checkExpression(child)
		if err != nil {
			return TypedExpression{}, err
		}

		typed = append(typed, t)
		resultTy = t.Type
	}

	return TypedExpression{Span: e.Span, Type: resultTy, Kind: TypedExpressionKind{Tag: ExprBlock, Block: typed}}, nil
}

func (c *TypeChecker) checkApplication(e Expression) (TypedExpression, *Error) {
	app := e.Kind.Application

	paramTypes, ok := c.table.Lookup(app.FunctionName)
	if !ok {
		return TypedExpression{}, &Error{Kind: ErrUnknownFunction, Span: app.FunctionSpan}
	}

	if len(paramTypes) != len(app.Arguments) {
		return TypedExpression{}, &Error{
			Kind:      ErrParameterMismatch,
			Span:      e.Span,
			ExpectedN: len(paramTypes),
			ActualN:   len(app.Arguments),
		}
	}

	typedArgs := make([]TypedExpression, len(app.Arguments))
	for i, arg := range app.Arguments {
		t, err := c.checkExpression(arg)
		if err != nil {
			return TypedExpression{}, err
		}

		if t.Type != paramTypes[i] {
			return TypedExpression{}, &Error{Kind: ErrTypeMismatch, Span: t.Span, ExpectedTy: paramTypes[i], ActualTy: t.Type}
		}

		typedArgs[i] = t
	}

	returnTy, ok := c.env.Lookup(app.FunctionName)
	if !ok {
		return TypedExpression{}, &Error{Kind: ErrUnknownFunction, Span: app.FunctionSpan}
	}

	return TypedExpression{
		Span: e.Span,
		Type: returnTy,
		Kind: TypedExpressionKind{
			Tag: ExprApplication,
			Application: &TypedApplicationExpr{
				FunctionSpan: app.FunctionSpan,
				FunctionName: app.FunctionName,
				Arguments:    typedArgs,
			},
		},
	}, nil
}

func (c *TypeChecker) checkWhile(e Expression) (TypedExpression, *Error) {
	w := e.Kind.While

	cond, err := c.checkExpression(w.Condition)
	if err != nil {
		return TypedExpression{}, err
	}

	if cond.Type != Boolean {
		return TypedExpression{}, &Error{Kind: ErrTypeMismatch, Span: cond.Span, ExpectedTy: Boolean, ActualTy: cond.Type}
	}

	c.env.PushScope()
	body, err := c.checkExpression(w.Body)
	c.env.PopScope()
	if err != nil {
		return TypedExpression{}, err
	}

	return TypedExpression{
		Span: e.Span,
		Type: Void,
		Kind: TypedExpressionKind{Tag: ExprWhile, While: &TypedWhileExpr{Condition: cond, Body: body}},
	}, nil
}
