// Package rt provides Runtime implementations for executing compiled
// units: an interactive console speaking the calc prompt protocol, and a
// preset table fed from TOML or YAML files for scripted runs.
package rt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Console implements the runtime primitives over plain streams: each read
// prompts on Out and consumes one line from In, each write prints the
// result line.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole wires a console runtime to the given streams. Either stream
// may be nil, which selects os.Stdin and os.Stdout.
func NewConsole(in io.Reader, out io.Writer) *Console {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Console{in: bufio.NewReader(in), out: out}
}

// Read prompts for name and parses one input line as a signed 32-bit
// integer. Surrounding whitespace is allowed, anything else on the line is
// not. The error text is what the user sees, capitalisation included.
func (c *Console) Read(name string) (int32, error) {
	fmt.Fprintf(c.out, "Enter a value for %s: ", name)
	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}
	text := strings.TrimSpace(line)
	v, perr := strconv.ParseInt(text, 10, 32)
	if perr != nil {
		return 0, fmt.Errorf("Invalid input: %s", text)
	}
	return int32(v), nil
}

// Write prints the result line.
func (c *Console) Write(v int32) {
	fmt.Fprintf(c.out, "The result is: %d\n", v)
}
