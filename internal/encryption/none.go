package encryption

import (
	"fmt"
	"io"

	"dms-go/internal/dms"
)

// NoneEncryptor stores data as plaintext.
type NoneEncryptor struct{}

var _ dms.Encryptor = NoneEncryptor{}

func NewNoneEncryptor() NoneEncryptor {
	return NoneEncryptor{}
}

func (NoneEncryptor) Setup() error { return nil }

func (NoneEncryptor) IsConfigured() bool { return true }

func (NoneEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}

func (NoneEncryptor) Decrypt(r io.Reader, w io.Writer) error {
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}
