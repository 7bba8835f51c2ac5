package secure

import (
	"errors"

	"github.com/awnumar/memguard"

	"github.com/systmms/scope/pkg/scope"
)

// ErrDestroyed is returned by Open after Destroy.
var ErrDestroyed = errors.New("secure buffer destroyed")

// Borrow moves data into a locked buffer and returns an exit guard that
// destroys it. data is wiped by memguard as part of the move.
func Borrow(data []byte, opts ...scope.Option) (*memguard.LockedBuffer, *scope.Guard) {
	locked := memguard.NewBufferFromBytes(data)
	opts = append([]scope.Option{scope.WithName("secure.wipe")}, opts...)
	return locked, scope.Exit(func() { Wipe(locked) }, opts...)
}

// Wipe destroys a locked buffer. It is safe to call more than once and on nil.
func Wipe(locked *memguard.LockedBuffer) {
	if locked == nil || !locked.IsAlive() {
		return
	}
	locked.Destroy()
}

// SecureBuffer keeps sensitive data encrypted at rest in a memguard enclave.
// It is owned by a single scope and is not safe for concurrent use.
type SecureBuffer struct {
	enclave *memguard.Enclave
}

// NewSecureBuffer seals data into an enclave. memguard wipes data as part of
// sealing it.
func NewSecureBuffer(data []byte) *SecureBuffer {
	return &SecureBuffer{
		enclave: memguard.NewEnclave(data),
	}
}

// Open decrypts the enclave into a locked buffer. The returned exit guard
// destroys the plaintext; defer its Close right away.
func (s *SecureBuffer) Open(opts ...scope.Option) (*memguard.LockedBuffer, *scope.Guard, error) {
	if s.enclave == nil {
		return nil, nil, ErrDestroyed
	}

	locked, err := s.enclave.Open()
	if err != nil {
		return nil, nil, err
	}

	opts = append([]scope.Option{scope.WithName("secure.open")}, opts...)
	return locked, scope.Exit(func() { Wipe(locked) }, opts...), nil
}

// Size returns the plaintext length, or 0 after Destroy.
func (s *SecureBuffer) Size() int {
	if s.enclave == nil {
		return 0
	}
	return s.enclave.Size()
}

// Destroy drops the enclave so the buffer cannot be opened again.
// It is idempotent.
func (s *SecureBuffer) Destroy() {
	s.enclave = nil
}
