package rt

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestConsoleReadAndWrite(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("6\n2\n"), &out)

	a, err := c.Read("a")
	if err != nil {
		t.Fatalf("Read(a) failed: %v", err)
	}
	b, err := c.Read("b")
	if err != nil {
		t.Fatalf("Read(b) failed: %v", err)
	}
	c.Write(a * b)

	want := "Enter a value for a: Enter a value for b: The result is: 12\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestConsoleReadParsing(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int32
		wantErr string
	}{
		{name: "Plain", input: "42\n", want: 42},
		{name: "Negative", input: "-7\n", want: -7},
		{name: "Surrounding Whitespace", input: "  42 \n", want: 42},
		{name: "No Trailing Newline", input: "7", want: 7},
		{name: "Largest Value", input: "2147483647\n", want: math.MaxInt32},
		{name: "Smallest Value", input: "-2147483648\n", want: math.MinInt32},
		{name: "Out Of Range", input: "2147483648\n", wantErr: "Invalid input: 2147483648"},
		{name: "Letters", input: "abc\n", wantErr: "Invalid input: abc"},
		{name: "Trailing Garbage", input: "4 2\n", wantErr: "Invalid input: 4 2"},
		{name: "Empty Line", input: "\n", wantErr: "Invalid input: "},
		{name: "Immediate End Of Input", input: "", wantErr: "Invalid input: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConsole(strings.NewReader(tt.input), &bytes.Buffer{})
			v, err := c.Read("x")
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("Read() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Read() failed: %v", err)
			}
			if v != tt.want {
				t.Errorf("Read() = %d, want %d", v, tt.want)
			}
		})
	}
}
