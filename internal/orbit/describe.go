package orbit

import (
	"fmt"

	"github.com/iburimskiy/one137/internal/config"
)

// Describe is the text behind a shell link: principal quantum number and
// the physical orbit radius.
func Describe(shell int) string {
	if shell < 0 || shell >= ShellCount {
		return ""
	}
	n := shell + 1
	return fmt.Sprintf("Shell %d: n = %d, r = %.0f pm (%d² × Bohr radius)",
		n, n, config.OrbitRadii[shell], n)
}
