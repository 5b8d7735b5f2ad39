package journal

import (
	"fmt"
	"strings"
	"time"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"

	apperrors "github.com/NickTran11/masterbait/internal/platform/errors"
)

// Predicate reports whether an entry matches a filter.
type Predicate func(Entry) bool

func matchAll(Entry) bool { return true }

// comparisons maps the comparison functions the filter parser emits to a
// test on the three-way compare of entry value against literal.
var comparisons = map[string]func(int) bool{
	filtering.FunctionEquals:        func(c int) bool { return c == 0 },
	filtering.FunctionNotEquals:     func(c int) bool { return c != 0 },
	filtering.FunctionLessThan:      func(c int) bool { return c < 0 },
	filtering.FunctionLessEquals:    func(c int) bool { return c <= 0 },
	filtering.FunctionGreaterThan:   func(c int) bool { return c > 0 },
	filtering.FunctionGreaterEquals: func(c int) bool { return c >= 0 },
}

// Declarations returns the field declarations for journal filtering.
func Declarations() (*filtering.Declarations, error) {
	return filtering.NewDeclarations(
		filtering.DeclareStandardFunctions(),
		filtering.DeclareIdent("type", filtering.TypeString),
		filtering.DeclareIdent("level_id", filtering.TypeInt),
		filtering.DeclareIdent("ts", filtering.TypeTimestamp),
	)
}

// ParseFilter parses an AIP-160 filter expression into a predicate. An
// empty filter matches every entry.
func ParseFilter(filterStr string) (Predicate, error) {
	if strings.TrimSpace(filterStr) == "" {
		return matchAll, nil
	}
	decls, err := Declarations()
	if err != nil {
		return nil, fmt.Errorf("create declarations: %w", err)
	}
	filter, err := filtering.ParseFilterString(filterStr, decls)
	if err != nil {
		return nil, invalid(filterStr, fmt.Errorf("parse filter: %w", err))
	}
	p, err := compile(filter.CheckedExpr.GetExpr())
	if err != nil {
		return nil, invalid(filterStr, err)
	}
	return p, nil
}

func invalid(filterStr string, cause error) error {
	err := apperrors.Wrap(apperrors.CodeFilterInvalid, "invalid journal filter", cause)
	err.Metadata = map[string]string{"Filter": filterStr}
	return err
}

func compile(e *expr.Expr) (Predicate, error) {
	if e == nil {
		return matchAll, nil
	}
	call := e.GetCallExpr()
	if call == nil {
		return nil, fmt.Errorf("unsupported expression %T", e.GetExprKind())
	}
	args := call.GetArgs()

	switch fn := call.GetFunction(); fn {
	case filtering.FunctionNot:
		if len(args) != 1 {
			return nil, fmt.Errorf("NOT takes one operand")
		}
		inner, err := compile(args[0])
		if err != nil {
			return nil, err
		}
		return func(en Entry) bool { return !inner(en) }, nil
	case filtering.FunctionAnd, filtering.FunctionOr:
		if len(args) != 2 {
			return nil, fmt.Errorf("%s takes two operands", fn)
		}
		left, err := compile(args[0])
		if err != nil {
			return nil, err
		}
		right, err := compile(args[1])
		if err != nil {
			return nil, err
		}
		if fn == filtering.FunctionAnd {
			return func(en Entry) bool { return left(en) && right(en) }, nil
		}
		return func(en Entry) bool { return left(en) || right(en) }, nil
	default:
		test, ok := comparisons[fn]
		if !ok {
			return nil, fmt.Errorf("unsupported function %q", fn)
		}
		if len(args) != 2 {
			return nil, fmt.Errorf("%s takes two operands", fn)
		}
		return compileComparison(args[0], args[1], test)
	}
}

func compileComparison(lhs, rhs *expr.Expr, test func(int) bool) (Predicate, error) {
	ident := lhs.GetIdentExpr()
	if ident == nil {
		return nil, fmt.Errorf("left operand must be a field")
	}
	switch field := ident.GetName(); field {
	case "type":
		want, ok := stringLiteral(rhs)
		if !ok {
			return nil, fmt.Errorf("type must be compared with a string")
		}
		return func(en Entry) bool { return test(strings.Compare(string(en.Type), want)) }, nil
	case "level_id":
		lit, ok := rhs.GetConstExpr().GetConstantKind().(*expr.Constant_Int64Value)
		if !ok {
			return nil, fmt.Errorf("level_id must be compared with an integer")
		}
		want := lit.Int64Value
		return func(en Entry) bool { return test(compareInt(int64(en.LevelID), want)) }, nil
	case "ts":
		want, err := timestampLiteral(rhs)
		if err != nil {
			return nil, err
		}
		return func(en Entry) bool { return test(en.At.Compare(want)) }, nil
	default:
		return nil, fmt.Errorf("unknown field %q", field)
	}
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func stringLiteral(e *expr.Expr) (string, bool) {
	lit, ok := e.GetConstExpr().GetConstantKind().(*expr.Constant_StringValue)
	if !ok {
		return "", false
	}
	return lit.StringValue, true
}

// timestampLiteral reads timestamp("2026-01-01T09:00:00Z") or the bare
// RFC 3339 string.
func timestampLiteral(e *expr.Expr) (time.Time, error) {
	raw, ok := stringLiteral(e)
	if !ok {
		call := e.GetCallExpr()
		if call.GetFunction() != filtering.FunctionTimestamp || len(call.GetArgs()) != 1 {
			return time.Time{}, fmt.Errorf("ts must be compared with a timestamp")
		}
		if raw, ok = stringLiteral(call.GetArgs()[0]); !ok {
			return time.Time{}, fmt.Errorf("timestamp argument must be a string")
		}
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
	}
	return t, nil
}
