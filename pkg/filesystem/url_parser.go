package filesystem

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Exported constants.
const (
	DefaultSFTPPort = 22
	SFTPScheme      = "sftp"
)

// Exported variables.
var (
	ErrMissingHost = errors.New("SFTP URL must include host")
	ErrMissingUser = errors.New("SFTP URL must include username (sftp://user@host/path)")
)

// ParsedPath represents either a local path or an SFTP URL.
type ParsedPath struct {
	IsRemote bool

	// For local paths
	LocalPath string

	// For SFTP paths
	Host string
	Port int
	User string
	Path string // Remote path
}

// ParsePath parses a path string, detecting whether it's a local path or SFTP URL.
// SFTP URLs have the format: sftp://user@host:port/path/to/dir
// Port is optional (defaults to 22)
// Examples:
//   - sftp://joe@myserver.com/home/joe/data
//   - sftp://joe@myserver.com:2222//var/log (absolute remote path)
//   - /local/path/to/files (local path)
//
// Local paths are never validated here; a missing local directory is simply
// an empty listing later on.
func ParsePath(p string) (*ParsedPath, error) {
	if strings.HasPrefix(p, SFTPScheme+"://") {
		return parseSFTPURL(p)
	}

	return &ParsedPath{
		IsRemote:  false,
		LocalPath: p,
	}, nil
}

// BasePath returns the path to hand to the filesystem the URL resolves to.
func (p *ParsedPath) BasePath() string {
	if p.IsRemote {
		return p.Path
	}

	return p.LocalPath
}

// String renders the path back in the form ParsePath accepts.
func (p *ParsedPath) String() string {
	if !p.IsRemote {
		return p.LocalPath
	}

	remotePath := "/" + p.Path
	if p.Path == "." {
		remotePath = ""
	}

	host := p.Host
	if p.Port != DefaultSFTPPort {
		host = fmt.Sprintf("%s:%d", p.Host, p.Port)
	}

	return fmt.Sprintf("%s://%s@%s%s", SFTPScheme, p.User, host, remotePath)
}

// parseSFTPURL parses an SFTP URL into its components.
//
//nolint:cyclop // Complexity from comprehensive SFTP URL validation (scheme, user, host, port, path)
func parseSFTPURL(sftpURL string) (*ParsedPath, error) {
	u, err := url.Parse(sftpURL) //nolint:varnamelen // u is idiomatic for URL
	if err != nil {
		return nil, fmt.Errorf("invalid SFTP URL: %w", err)
	}

	if u.User == nil || u.User.Username() == "" {
		return nil, ErrMissingUser
	}

	host := u.Hostname()
	if host == "" {
		return nil, ErrMissingHost
	}

	port := DefaultSFTPPort
	if portStr := u.Port(); portStr != "" {
		port, err = strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid port number: %w", err)
		}
	}

	// SFTP path convention:
	//   sftp://user@host/path  → relative to home directory (strip leading /)
	//   sftp://user@host//path → absolute path /path (strip one /)
	//   sftp://user@host       → home directory (.)
	remotePath := u.Path

	switch {
	case remotePath == "" || remotePath == "/":
		remotePath = "."
	case strings.HasPrefix(remotePath, "//"):
		remotePath = remotePath[1:]
	default:
		remotePath = strings.TrimPrefix(remotePath, "/")
	}

	return &ParsedPath{
		IsRemote: true,
		Host:     host,
		Port:     port,
		User:     u.User.Username(),
		Path:     remotePath,
	}, nil
}
