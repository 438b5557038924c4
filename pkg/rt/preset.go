package rt

import (
	"fmt"
	"io"
	"os"
)

// Preset serves variable values from a fixed table, for scripted runs and
// tests. Writes print the same result line the console runtime prints.
type Preset struct {
	Values map[string]int32
	Out    io.Writer // nil means os.Stdout
}

func (p *Preset) outputSink() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stdout
}

// Read looks name up in the table. A missing name fails the read; a unit
// cannot run on a partial table.
func (p *Preset) Read(name string) (int32, error) {
	v, ok := p.Values[name]
	if !ok {
		return 0, fmt.Errorf("no value provided for %s", name)
	}
	return v, nil
}

// Write prints the result line.
func (p *Preset) Write(v int32) {
	fmt.Fprintf(p.outputSink(), "The result is: %d\n", v)
}
