package hashutil

import (
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
)

// TreeChecksum hashes every regular file of fsys in lexical walk order,
// mixing in each file's path so renames change the sum. The result has the
// form "sha256:<hex>".
func TreeChecksum(fsys fs.FS) (string, error) {
	hash := sha256.New()
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		file, err := fsys.Open(p)
		if err != nil {
			return err
		}
		defer func() {
			_ = file.Close()
		}()

		fmt.Fprintf(hash, "%s\x00", p)
		_, err = io.Copy(hash, file)
		return err
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("sha256:%x", hash.Sum(nil)), nil
}
