package arch

import "fmt"

// RegisterCount is the number of general purpose registers V0-VF.
const RegisterCount = 16

// Flag is the index of VF, the carry/borrow/collision flag register.
const Flag = 0xf

// RegisterName returns the name associated with the given register index.
// Returns "" if the index is not recognized.
func RegisterName(n int) string {
	if n < 0 || n >= RegisterCount {
		return ""
	}
	return fmt.Sprintf("V%X", n)
}
