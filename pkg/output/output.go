package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wamphlett/spotify-pattern-controller/pkg/palette"
)

// Driver defines an output capable of displaying a colour sequence.
type Driver interface {
	Connect() error
	Send(colours []palette.ColourHex) error
	Close() error
}

// Console writes patterns to a writer, stdout by default.
type Console struct {
	writer io.Writer
}

// NewConsole returns a console driver writing to stdout
func NewConsole() *Console {
	return &Console{writer: os.Stdout}
}

// NewConsoleWithWriter returns a console driver writing to the given writer
func NewConsoleWithWriter(writer io.Writer) *Console {
	return &Console{writer: writer}
}

func (c *Console) Connect() error {
	_, err := fmt.Fprintln(c.writer, "console driver: connected")
	return err
}

func (c *Console) Send(colours []palette.ColourHex) error {
	if _, err := fmt.Fprintln(c.writer, "console driver: sending pattern:"); err != nil {
		return err
	}
	_, err := fmt.Fprintln(c.writer, strings.Join(palette.Palette(colours).Strings(), ","))
	return err
}

func (c *Console) Close() error {
	_, err := fmt.Fprintln(c.writer, "console driver: closed")
	return err
}
