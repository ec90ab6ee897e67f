// Copyright 2026 The unsizedhash Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dbg provides zero-cost-when-disabled debug logging for the hot
// paths in internal/arena and internal/swiss.
package dbg

import "fmt"

// Enabled gates all logging in this package. It is a plain var rather than
// a build tag so that tests can flip it; production code should leave it
// false, at which point Log and Assert do nothing interesting.
var Enabled = false

// Formatter is a fmt.Formatter implementation that just calls a function.
//
// Using this instead of building a string lets call sites defer the cost
// of formatting until (and unless) the log line is actually printed.
type Formatter func(s fmt.State)

func (f Formatter) Format(s fmt.State, verb rune) {
	if verb != 'v' {
		fmt.Fprintf(s, "%%%c(%T)", verb, f)
		return
	}
	f(s)
}

// Fprintf is like fmt.Sprintf, but the printing is delayed until the
// returned value is itself formatted with %v.
func Fprintf(format string, args ...any) Formatter {
	return Formatter(func(s fmt.State) { fmt.Fprintf(s, format, args...) })
}

// Dict pretty-prints the given entries as a dictionary, with an optional
// prefix.
func Dict(prefix any, kv ...any) Formatter {
	return Formatter(func(s fmt.State) {
		if len(kv)%2 != 0 {
			panic("dbg: length must be divisible by 2")
		}

		if prefix == nil {
			prefix = ""
		}

		first := true
		fmt.Fprintf(s, "%v{", prefix)
		for i := range len(kv) / 2 {
			k := kv[2*i]
			v := kv[2*i+1]
			if v == nil {
				continue
			}

			if !first {
				fmt.Fprint(s, ", ")
			}
			first = false
			fmt.Fprintf(s, "%v: %v", k, v)
		}
		fmt.Fprint(s, "}")
	})
}

// Log prints op and a lazily-formatted message when Enabled is true.
func Log(op, format string, args ...any) {
	if !Enabled {
		return
	}
	fmt.Printf("unsizedhash: %s: %v\n", op, Fprintf(format, args...))
}

// Assert panics with a formatted message if cond is false and Enabled is
// true. Like the teacher's debug assertions, this is meant for invariants
// that are too expensive to check outside of development builds.
func Assert(cond bool, format string, args ...any) {
	if !Enabled || cond {
		return
	}
	panic(fmt.Sprintf("unsizedhash: assertion failed: %v", Fprintf(format, args...)))
}
