package dbg

import (
	"fmt"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
)

// This converts mesh indices into random readable names. Triangle and
// vertex handles are small integers that all look alike in a debug dump;
// petnames are much easier to tell apart while stepping through mesh
// surgery. Names are memoized per kind, but since they are generated in
// order of demand they are nondeterministic between runs.

var memo map[string]string

func init() {
	memo = make(map[string]string)
	petname.NonDeterministicMode()
}

func name(key string) string {
	if r, ok := memo[key]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
	memo[key] = r
	return r
}

// Tri returns a readable name for a triangle index, stable within a run.
func Tri(i int) string {
	return name(fmt.Sprintf("T%d", i))
}

// Vert returns a readable name for a vertex index, stable within a run.
func Vert(i int) string {
	return name(fmt.Sprintf("V%d", i))
}
