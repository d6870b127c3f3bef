package sorting

import (
	"fmt"
	"path/filepath"
	"strings"
)

const restoreMarker = "__undo"

// UniqueDestination returns dir/name, or dir/<stem>__N<ext> with the lowest N
// starting at 1 that isn't taken.
func UniqueDestination(exists func(string) bool, dir, name string) string {
	dest := filepath.Join(dir, name)
	if !exists(dest) {
		return dest
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		dest = filepath.Join(dir, fmt.Sprintf("%s__%d%s", stem, i, ext))
		if !exists(dest) {
			return dest
		}
	}
}

// RestoreDestination returns where an undone file goes back to. An occupied
// original path gets the "__undo" marker on its stem, and if that is taken
// too the marked name is disambiguated like any other collision.
func RestoreDestination(exists func(string) bool, original string) string {
	if !exists(original) {
		return original
	}
	dir := filepath.Dir(original)
	name := filepath.Base(original)
	ext := filepath.Ext(name)
	marked := strings.TrimSuffix(name, ext) + restoreMarker + ext
	return UniqueDestination(exists, dir, marked)
}
