/*
NAME
  locator.go

DESCRIPTION
  locator.go implements DirLocator, the default FileLocator (§6): a
  recursive directory walk collecting every file under a root whose
  extension matches.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package hrtf

import (
	"os"
	"path/filepath"
)

// DirLocator is the default FileLocator: Search walks the directory tree
// rooted at path and returns every regular file whose extension matches
// ext (case-sensitive, including the leading dot). A missing root is not
// an error; it simply yields no files, since a renderer's configured
// search paths commonly include directories that do not exist on every
// installation.
type DirLocator struct{}

// Search implements FileLocator.
func (DirLocator) Search(ext, path string) ([]string, error) {
	var out []string
	err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !info.IsDir() && filepath.Ext(p) == ext {
			out = append(out, p)
		}
		return nil
	})
	return out, err
}
