package filesystem

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
)

// Exported variables.
var (
	ErrNoAuthMethods = errors.New("no SSH authentication methods available (tried SSH agent and default keys)")
)

// unexported constants.
const (
	dialTimeout = 15 * time.Second
)

// SFTPConnection holds an active SSH/SFTP connection.
type SFTPConnection struct {
	sshClient  io.Closer
	sftpClient *sftp.Client
	closer     io.Closer // closes sftpClient; separate so tests can fake it
	host       string
	port       int
	user       string
}

// Connect establishes an SSH connection and opens an SFTP session.
// It uses the SSH agent and default SSH keys for authentication.
func Connect(host string, port int, user string) (*SFTPConnection, error) {
	authMethods := getSSHAuthMethods()
	if len(authMethods) == 0 {
		return nil, ErrNoAuthMethods
	}

	config := &ssh.ClientConfig{
		User:            user,
		Auth:            authMethods,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // TODO: verify against ~/.ssh/known_hosts via x/crypto/ssh/knownhosts
		Timeout:         dialTimeout,
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))

	sshClient, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, fmt.Errorf("SSH connection failed: %w", err)
	}

	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		_ = sshClient.Close()
		return nil, fmt.Errorf("SFTP session creation failed: %w", err)
	}

	return &SFTPConnection{
		sshClient:  sshClient,
		sftpClient: sftpClient,
		closer:     sftpClient,
		host:       host,
		port:       port,
		user:       user,
	}, nil
}

// Client returns the underlying SFTP client.
func (c *SFTPConnection) Client() *sftp.Client {
	return c.sftpClient
}

// Close closes the SFTP session and then the SSH connection.
// Returns the first error encountered.
func (c *SFTPConnection) Close() error {
	var firstErr error

	if c.closer != nil {
		if err := c.closer.Close(); err != nil { //nolint:noinlineerr // Inline error check keeps the first-error bookkeeping compact
			firstErr = err
		}
	}

	if c.sshClient != nil {
		if err := c.sshClient.Close(); err != nil && firstErr == nil { //nolint:noinlineerr // Inline error check keeps the first-error bookkeeping compact
			firstErr = err
		}
	}

	return firstErr
}

// String returns user@host:port for display.
func (c *SFTPConnection) String() string {
	return fmt.Sprintf("%s@%s", c.user, net.JoinHostPort(c.host, strconv.Itoa(c.port)))
}

// getSSHAuthMethods returns SSH authentication methods in priority order:
// 1. SSH agent
// 2. Default SSH keys
func getSSHAuthMethods() []ssh.AuthMethod {
	var authMethods []ssh.AuthMethod

	if agentAuth := trySSHAgent(); agentAuth != nil {
		authMethods = append(authMethods, agentAuth)
	}

	authMethods = append(authMethods, tryDefaultSSHKeys()...)

	return authMethods
}

// trySSHAgent attempts to connect to the SSH agent.
func trySSHAgent() ssh.AuthMethod {
	socket := os.Getenv("SSH_AUTH_SOCK")
	if socket == "" {
		return nil
	}

	conn, err := net.Dial("unix", socket)
	if err != nil {
		return nil
	}

	agentClient := agent.NewClient(conn)

	return ssh.PublicKeysCallback(agentClient.Signers)
}

// tryDefaultSSHKeys loads unencrypted keys from the default locations.
func tryDefaultSSHKeys() []ssh.AuthMethod {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	sshDir := filepath.Join(homeDir, ".ssh")

	keyFiles := []string{
		filepath.Join(sshDir, "id_ed25519"),
		filepath.Join(sshDir, "id_rsa"),
		filepath.Join(sshDir, "id_ecdsa"),
	}

	var authMethods []ssh.AuthMethod

	for _, keyPath := range keyFiles {
		keyData, err := os.ReadFile(keyPath)
		if err != nil {
			continue
		}

		// Password-protected keys are not supported.
		signer, err := ssh.ParsePrivateKey(keyData)
		if err != nil {
			continue
		}

		authMethods = append(authMethods, ssh.PublicKeys(signer))
	}

	return authMethods
}
