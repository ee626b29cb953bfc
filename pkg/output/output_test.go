package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wamphlett/spotify-pattern-controller/pkg/palette"
)

func TestConsoleDriver(t *testing.T) {
	var buf bytes.Buffer
	driver := NewConsoleWithWriter(&buf)

	require.NoError(t, driver.Connect())
	require.NoError(t, driver.Send([]palette.ColourHex{"#AA0000", "#00BB00"}))
	require.NoError(t, driver.Close())

	require.Equal(t,
		"console driver: connected\n"+
			"console driver: sending pattern:\n"+
			"#AA0000,#00BB00\n"+
			"console driver: closed\n",
		buf.String())
}
