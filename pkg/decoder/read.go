package decoder

import "github.com/aulos-player/aulos/pkg/input"

// Read performs one blocking read on behalf of a plugin, honoring the
// session's stop request. It returns the number of bytes read; zero
// stands for end-of-data, a source error, or a pending stop, all of
// which plugins treat the same way.
func Read(client Client, src input.Stream, p []byte) int {
	if len(p) == 0 {
		return 0
	}
	if client != nil && client.GetCommand() == CmdStop {
		return 0
	}
	n, err := src.Read(p)
	if err != nil && n <= 0 {
		return 0
	}
	return n
}
