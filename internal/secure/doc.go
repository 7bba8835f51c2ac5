// Package secure keeps sensitive bytes in memguard buffers whose
// destruction is bound to a scope guard.
//
// # Usage
//
// Move sensitive bytes into a locked buffer and destroy it when the scope
// ends, whichever way it ends:
//
//	locked, guard := secure.Borrow([]byte("my-secret"))
//	defer guard.Close()
//
//	use(locked.Bytes())
//
// A SecureBuffer keeps the data encrypted at rest; Open decrypts it into a
// locked buffer and hands back the guard that wipes the plaintext:
//
//	buf := secure.NewSecureBuffer(data)
//	defer buf.Destroy()
//
//	locked, guard, err := buf.Open()
//	if err != nil {
//	    return err
//	}
//	defer guard.Close()
//
// # Platform Behavior
//
// Memory locking requires RLIMIT_MEMLOCK to be large enough on Linux. When
// mlock is unavailable memguard falls back to ordinary memory; the wipe on
// destruction still happens.
package secure
