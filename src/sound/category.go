package sound

import (
	"errors"
	"fmt"
	"strings"
)

// Category is a destination folder bound to a single key.
type Category struct {
	Key    string `yaml:"key" json:"key" validate:"required,len=1"`
	Folder string `yaml:"folder" json:"folder" validate:"required"`
}

// Categories is an ordered set of categories, looked up by key.
type Categories []Category

// Lookup returns the category bound to key.
func (c Categories) Lookup(key string) (Category, bool) {
	for _, cat := range c {
		if cat.Key == key {
			return cat, true
		}
	}
	return Category{}, false
}

// Validate checks that keys and folders are unique and folders are plain names.
func (c Categories) Validate() error {
	if len(c) == 0 {
		return errors.New("at least one category is required")
	}
	keys := make(map[string]bool, len(c))
	folders := make(map[string]bool, len(c))
	for _, cat := range c {
		if keys[cat.Key] {
			return fmt.Errorf("duplicate category key %q", cat.Key)
		}
		if folders[cat.Folder] {
			return fmt.Errorf("duplicate category folder %q", cat.Folder)
		}
		if strings.ContainsAny(cat.Folder, `/\`) || cat.Folder == "." || cat.Folder == ".." {
			return fmt.Errorf("category folder %q must be a plain directory name", cat.Folder)
		}
		keys[cat.Key] = true
		folders[cat.Folder] = true
	}
	return nil
}
