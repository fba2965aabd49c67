package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/internal/intrinsics"
	"github.com/vela-lang/vela/internal/parser"
)

// runCapture parses and evaluates src, returning everything the program
// wrote to Console's stdout/stderr streams rather than its final
// expression value; snapshot tests care about the transcript, not the
// last result.
func runCapture(t *testing.T, src string) string {
	t.Helper()
	prog, errs, lexErrs := parser.Parse(src)
	require.Empty(t, lexErrs)
	require.Empty(t, errs)
	var out, errOut bytes.Buffer
	ip := New(&out, &errOut, strings.NewReader(""), intrinsics.Register)
	_, err := ip.Run(prog, src, "<test>")
	require.NoError(t, err)
	if errOut.Len() > 0 {
		return out.String() + "--- stderr ---\n" + errOut.String()
	}
	return out.String()
}

func TestSnapConsoleWriteLine(t *testing.T) {
	out := runCapture(t, `
		class Point {
			var x;
			var y;
			fn new(x, y) { this.x = x; this.y = y; }
			fn ToString() { return "(" + this.x + ", " + this.y + ")"; }
		}
		var p = new Point(3, 4);
		Console::WriteLine("point = " + p.ToString());
		Console::WriteLine("sum = " + (1 + 2));
	`)
	snaps.MatchSnapshot(t, "console_writeline_output", out)
}

func TestSnapEnumAndMatch(t *testing.T) {
	out := runCapture(t, `
		enum Direction { North, East, South, West }
		fn describe(d) {
			return match d {
				fn (x) => x == Direction::North : "going up",
				fn (x) => x == Direction::South : "going down",
				default: "going sideways"
			};
		}
		foreach (d in [Direction::North, Direction::East, Direction::South]) {
			Console::WriteLine(describe(d));
		}
	`)
	snaps.MatchSnapshot(t, "enum_match_output", out)
}

func TestSnapClassHierarchyAndArrays(t *testing.T) {
	out := runCapture(t, `
		class Animal {
			var name;
			fn new(name) { this.name = name; }
			fn Speak() { return this.name + " makes a sound"; }
		}
		class Dog : Animal {
			fn Speak() { return this.name + " barks"; }
		}
		var animals = [new Animal("Generic"), new Dog("Rex")];
		foreach (a in animals) {
			Console::WriteLine(a.Speak());
		}
		Console::WriteLine("count = " + animals.Count());
	`)
	snaps.MatchSnapshot(t, "class_hierarchy_output", out)
}
