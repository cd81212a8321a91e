package procedures

import "proc-loader/core/proc"

// Chain runs procs in order, feeding each result to the next. All of them
// receive the same args. The first error stops the chain.
func Chain(procs ...proc.Procedure) proc.Func {
	return func(content any, args ...string) (any, error) {
		var err error
		for _, p := range procs {
			if p == nil {
				continue
			}
			if content, err = p.Execute(content, args...); err != nil {
				return nil, err
			}
		}
		return content, nil
	}
}
