/*
File   : lattice/evaluator/evaluator.go
*/

// Package evaluator tree-walks an AST and produces runtime Objects. It is
// the sole owner of every heap-allocated Environment, Function, and
// ReturnValue: all such entities are allocated through an Evaluator,
// tracked in its registry, and reclaimed by its mark-and-sweep collector
// once unreachable from the root environment.
package evaluator

import (
	"github.com/monkeylang/lattice/ast"
	"github.com/monkeylang/lattice/environment"
	"github.com/monkeylang/lattice/internal/gmlog"
	"github.com/monkeylang/lattice/object"
)

// Shared singletons for the value-typed booleans and null. There is
// exactly one true, one false, and one null in the universe of any given
// evaluation.
var (
	TRUE  = &object.Boolean{Value: true}
	FALSE = &object.Boolean{Value: false}
	NULL  = &object.Null{}
)

// Evaluator runs programs against its own root Environment. It is not
// safe for concurrent use: evaluation and garbage collection are
// synchronous and share no locks, because nothing in this package ever
// suspends mid-evaluation.
type Evaluator struct {
	root *environment.Environment
	reg  *registry
	log  *gmlog.Logger
}

// New constructs an Evaluator with a fresh, registered root environment.
func New() *Evaluator {
	e := &Evaluator{reg: newRegistry(), log: gmlog.Default()}
	e.root = environment.New()
	e.reg.register(e.root, KindEnvironment)
	return e
}

// SetLogger overrides the default stderr logger, used by the REPL to
// route diagnostics through its own colorized writer.
func (e *Evaluator) SetLogger(l *gmlog.Logger) { e.log = l }

// logError emits a structured diagnostic at the point an Error is raised,
// then returns the same Error unchanged so call sites can wrap a single
// expression: `return nil, e.logError(&Error{...})`.
func (e *Evaluator) logError(err *Error) *Error {
	e.log.Errorf("%v", err)
	return err
}

// RegistrySize reports how many heap entities the evaluator currently
// tracks, exposed for the GC-soundness tests.
func (e *Evaluator) RegistrySize() int { return e.reg.size() }

// Close frees every entity this evaluator has ever allocated, regardless
// of reachability, and empties the registry. A REPL session calls this on
// exit; the self-referential-closure test case calls it to confirm the
// cycle between a closure and its defining environment is reclaimed.
func (e *Evaluator) Close() {
	e.reg.clear()
}

// Eval evaluates program against the evaluator's root environment. A
// collection pass runs after every top-level statement; an early `return`
// at top level unwraps immediately, collects once more, and returns.
func (e *Evaluator) Eval(program *ast.Program) (object.Object, *Error) {
	var result object.Object = NULL

	for _, stmt := range program.Statements {
		val, err := e.evalStatement(stmt, e.root)
		if err != nil {
			return nil, err
		}
		result = val

		if returnValue, ok := result.(*object.ReturnValue); ok {
			inner := returnValue.Value
			e.gc()
			return inner, nil
		}
		e.gc()
	}

	return result, nil
}

func (e *Evaluator) gc() {
	reachable := trace(e.root)
	e.reg.sweep(reachable)
}

func (e *Evaluator) evalStatement(stmt ast.Statement, env *environment.Environment) (object.Object, *Error) {
	switch node := stmt.(type) {
	case *ast.ExpressionStatement:
		return e.evalExpression(node.Expression, env)
	case *ast.LetStatement:
		val, err := e.evalExpression(node.Value, env)
		if err != nil {
			return nil, err
		}
		env.Set(node.Name.Name, val)
		return NULL, nil
	case *ast.ReturnStatement:
		val, err := e.evalExpression(node.Value, env)
		if err != nil {
			return nil, err
		}
		rv := &object.ReturnValue{Value: val}
		e.reg.register(rv, KindReturnValue)
		return rv, nil
	case *ast.BlockStatement:
		return e.evalBlockStatement(node, env)
	default:
		return nil, e.logError(&Error{Kind: ErrAllocationFailed})
	}
}

// evalBlockStatement evaluates statements in order and, unlike Eval's
// top-level loop, never unwraps a ReturnValue it encounters. It
// propagates it outward unchanged so `return` inside a nested `if`
// escapes the whole enclosing function body, not just the innermost
// block.
func (e *Evaluator) evalBlockStatement(block *ast.BlockStatement, env *environment.Environment) (object.Object, *Error) {
	var result object.Object = NULL

	for _, stmt := range block.Statements {
		val, err := e.evalStatement(stmt, env)
		if err != nil {
			return nil, err
		}
		result = val

		if _, ok := result.(*object.ReturnValue); ok {
			return result, nil
		}
	}

	return result, nil
}

func (e *Evaluator) evalExpression(expr ast.Expression, env *environment.Environment) (object.Object, *Error) {
	switch node := expr.(type) {
	case *ast.IntegerLiteral:
		return &object.Integer{Value: node.Value}, nil
	case *ast.BooleanLiteral:
		return nativeBoolToObject(node.Value), nil
	case *ast.Identifier:
		if val, ok := env.Get(node.Name); ok {
			return val, nil
		}
		// Unresolved identifiers evaluate to Null rather than raising an
		// error, a deliberate, documented divergence from what a
		// production interpreter would do.
		return NULL, nil
	case *ast.PrefixExpression:
		right, err := e.evalExpression(node.Right, env)
		if err != nil {
			return nil, err
		}
		return e.evalPrefixExpression(node.Operator, right)
	case *ast.InfixExpression:
		left, err := e.evalExpression(node.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := e.evalExpression(node.Right, env)
		if err != nil {
			return nil, err
		}
		return e.evalInfixExpression(node.Operator, left, right)
	case *ast.IfExpression:
		return e.evalIfExpression(node, env)
	case *ast.FunctionLiteral:
		fn := &object.Function{Parameters: node.Parameters, Body: node.Body, Env: env}
		e.reg.register(fn, KindFunction)
		return fn, nil
	case *ast.CallExpression:
		return e.evalCallExpression(node, env)
	case *ast.BlockStatement:
		return e.evalBlockStatement(node, env)
	default:
		return nil, e.logError(&Error{Kind: ErrAllocationFailed})
	}
}

func nativeBoolToObject(b bool) *object.Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

func (e *Evaluator) evalPrefixExpression(operator string, right object.Object) (object.Object, *Error) {
	switch operator {
	case "!":
		return nativeBoolToObject(!object.Truthy(right)), nil
	case "-":
		intObj, ok := right.(*object.Integer)
		if !ok {
			return nil, e.logError(&Error{Kind: ErrUnknownOperator, Operator: operator, Right: right.Type()})
		}
		return &object.Integer{Value: -intObj.Value}, nil
	default:
		return nil, e.logError(&Error{Kind: ErrUnknownOperator, Operator: operator, Right: right.Type()})
	}
}

func (e *Evaluator) evalInfixExpression(operator string, left, right object.Object) (object.Object, *Error) {
	switch {
	case left.Type() == object.INTEGER_OBJ && right.Type() == object.INTEGER_OBJ:
		return e.evalIntegerInfixExpression(operator, left.(*object.Integer), right.(*object.Integer))
	case left.Type() == object.BOOLEAN_OBJ && right.Type() == object.BOOLEAN_OBJ:
		return e.evalBooleanInfixExpression(operator, left.(*object.Boolean), right.(*object.Boolean))
	case left.Type() != right.Type():
		return nil, e.logError(&Error{Kind: ErrTypeMismatch, Operator: operator, Left: left.Type(), Right: right.Type()})
	default:
		return nil, e.logError(&Error{Kind: ErrUnknownOperator, Operator: operator, Left: left.Type(), Right: right.Type()})
	}
}

func (e *Evaluator) evalIntegerInfixExpression(operator string, left, right *object.Integer) (object.Object, *Error) {
	switch operator {
	case "+":
		return &object.Integer{Value: left.Value + right.Value}, nil
	case "-":
		return &object.Integer{Value: left.Value - right.Value}, nil
	case "*":
		return &object.Integer{Value: left.Value * right.Value}, nil
	case "/":
		return &object.Integer{Value: left.Value / right.Value}, nil
	case "<":
		return nativeBoolToObject(left.Value < right.Value), nil
	case ">":
		return nativeBoolToObject(left.Value > right.Value), nil
	case "==":
		return nativeBoolToObject(left.Value == right.Value), nil
	case "!=":
		return nativeBoolToObject(left.Value != right.Value), nil
	default:
		return nil, e.logError(&Error{Kind: ErrUnknownOperator, Operator: operator, Left: left.Type(), Right: right.Type()})
	}
}

func (e *Evaluator) evalBooleanInfixExpression(operator string, left, right *object.Boolean) (object.Object, *Error) {
	switch operator {
	case "==":
		return nativeBoolToObject(left.Value == right.Value), nil
	case "!=":
		return nativeBoolToObject(left.Value != right.Value), nil
	default:
		return nil, e.logError(&Error{Kind: ErrUnknownOperator, Operator: operator, Left: left.Type(), Right: right.Type()})
	}
}

func (e *Evaluator) evalIfExpression(node *ast.IfExpression, env *environment.Environment) (object.Object, *Error) {
	condition, err := e.evalExpression(node.Condition, env)
	if err != nil {
		return nil, err
	}

	if object.Truthy(condition) {
		return e.evalBlockStatement(node.Consequence, env)
	}
	return e.evalBlockStatement(node.Alternative, env)
}

func (e *Evaluator) evalCallExpression(node *ast.CallExpression, env *environment.Environment) (object.Object, *Error) {
	callee, err := e.evalExpression(node.Function, env)
	if err != nil {
		return nil, err
	}

	fn, ok := callee.(*object.Function)
	if !ok {
		return nil, e.logError(&Error{Kind: ErrNotAFunction, Left: callee.Type()})
	}

	if len(node.Arguments) != len(fn.Parameters) {
		return nil, e.logError(&Error{Kind: ErrFunctionArgumentMismatch, Want: len(fn.Parameters), Got: len(node.Arguments)})
	}

	args := make([]object.Object, 0, len(node.Arguments))
	for _, argExpr := range node.Arguments {
		arg, err := e.evalExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	fnEnv, ok := fn.Env.(*environment.Environment)
	if !ok {
		return nil, e.logError(&Error{Kind: ErrAllocationFailed})
	}

	extended := environment.NewEnclosed(fnEnv)
	e.reg.register(extended, KindEnvironment)
	for i, param := range fn.Parameters {
		extended.Set(param.Name, args[i])
	}

	result, err := e.evalBlockStatement(fn.Body, extended)
	if err != nil {
		return nil, err
	}

	if returnValue, ok := result.(*object.ReturnValue); ok {
		return returnValue.Value, nil
	}
	return result, nil
}
