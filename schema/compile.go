package schema

// Compile compiles every command of the table with the given grammar
// and returns the generated statements in command order. A failing
// command contributes no SQL and does not stop compilation of the
// commands after it; all failures are collected and returned together
// (a single error is returned as-is, several as an AggregateError).
//
// Compilation is a pure transformation: the table is not mutated, no
// I/O happens, and compiling the same inputs twice yields identical
// output. Distinct tables may be compiled concurrently.
func Compile(g Grammar, t *Table) ([]string, error) {
	var (
		stmts []string
		errs  []error
	)
	for _, cmd := range t.Commands {
		out, err := g.CompileCommand(t, cmd)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		stmts = append(stmts, out...)
	}
	return stmts, NewAggregateError(errs...)
}

// CompileTables compiles a batch of tables in order. As with Compile,
// a failure in one table's commands does not abort the batch; the
// statements of every successful command are returned alongside the
// collected errors.
func CompileTables(g Grammar, tables ...*Table) ([]string, error) {
	var (
		stmts []string
		errs  []error
	)
	for _, t := range tables {
		out, err := Compile(g, t)
		if err != nil {
			errs = append(errs, err)
		}
		stmts = append(stmts, out...)
	}
	return stmts, NewAggregateError(errs...)
}
