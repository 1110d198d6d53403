package script

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/phanxgames/tumble"
)

// exprVars are the globals a loop condition can read. Entity fields are
// zero when the loop runs without a target.
var exprVars = []string{
	"iteration", "elapsed",
	"x", "y", "rotation", "alpha", "scale_x", "scale_y",
}

const exprResult = "__res__"

// ExprCondition is a loop condition written as a tengo expression, for
// example "iteration < 3" or "elapsed < 2 && alpha > 0". The expression is
// compiled once and re-run every time the loop asks whether to continue.
type ExprCondition struct {
	src      string
	compiled *tengo.Compiled
	err      error
}

// NewExprCondition compiles expr. Unknown variable names are compile errors.
func NewExprCondition(expr string) (*ExprCondition, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("compile condition: empty expression")
	}

	s := tengo.NewScript([]byte(fmt.Sprintf("%s := (%s)", exprResult, expr)))
	for _, name := range exprVars {
		if err := s.Add(name, 0); err != nil {
			return nil, fmt.Errorf("compile condition %q: %w", expr, err)
		}
	}
	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile condition %q: %w", expr, err)
	}
	return &ExprCondition{src: expr, compiled: compiled}, nil
}

// String returns the source expression.
func (c *ExprCondition) String() string {
	return c.src
}

// Err returns the error of the most recent evaluation, if it failed.
func (c *ExprCondition) Err() error {
	return c.err
}

// Eval runs the expression against ctx and reports its truthiness. A runtime
// error evaluates to false and is kept for Err.
func (c *ExprCondition) Eval(ctx tumble.LoopContext) bool {
	c.err = c.eval(ctx)
	if c.err != nil {
		return false
	}
	return c.compiled.Get(exprResult).Bool()
}

func (c *ExprCondition) eval(ctx tumble.LoopContext) error {
	vals := [...]any{ctx.Iteration, ctx.Elapsed, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0}
	if e := ctx.Entity; e != nil {
		vals[2], vals[3] = e.X, e.Y
		vals[4], vals[5] = e.Rotation, e.Alpha
		vals[6], vals[7] = e.ScaleX, e.ScaleY
	}
	for i, name := range exprVars {
		if err := c.compiled.Set(name, vals[i]); err != nil {
			return fmt.Errorf("condition %q: set %s: %w", c.src, name, err)
		}
	}
	if err := c.compiled.Run(); err != nil {
		return fmt.Errorf("condition %q: %w", c.src, err)
	}
	return nil
}

// Condition adapts c to a tumble.Condition.
func (c *ExprCondition) Condition() tumble.Condition {
	return c.Eval
}
